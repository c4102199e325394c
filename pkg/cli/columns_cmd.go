package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newColumnsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <catalog> <schema> <table>",
		Short: "Show the column schema of one table",
		Long:  "Fetch column names and declared types for a table via a schema-only query, without transferring row data.",
		Example: `  connectai columns Salesforce_Integraite Salesforce Account`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.client()
			if err != nil {
				return err
			}

			result, err := client.GetTableColumns(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, result.Schema)
			}

			rows := make([][]string, len(result.Schema))
			for i, col := range result.Schema {
				nullable := ""
				if col.Nullable != nil {
					nullable = strconv.FormatBool(*col.Nullable)
				}
				rows[i] = []string{strconv.Itoa(col.Ordinal), col.Name, col.DataType, nullable}
			}
			printListing(os.Stdout, []string{"#", "COLUMN", "TYPE", "NULLABLE"}, rows)
			return nil
		},
	}
}
