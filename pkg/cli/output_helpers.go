package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" && output != "csv" {
		return fmt.Errorf("unsupported output format %q: use 'table', 'json' or 'csv'", output)
	}
	return nil
}

// PrintJSON pretty-prints v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printListing renders metadata listings as a bordered-less table.
func printListing(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	var tableHeaders table.Row
	for _, h := range headers {
		tableHeaders = append(tableHeaders, h)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(tableHeaders)
	for _, row := range rows {
		var cells table.Row
		for _, cell := range row {
			cells = append(cells, cell)
		}
		t.AppendRow(cells)
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.Render()
}
