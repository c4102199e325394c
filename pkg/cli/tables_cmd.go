package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jerodj-cdata/connectai-go/pkg/connectai"
)

func newTablesCmd(s *settings) *cobra.Command {
	var (
		catalog   string
		schema    string
		table     string
		tableType string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables, optionally filtered by catalog, schema, name, and type",
		Example: `  # Tables of one schema
  connectai tables --catalog Salesforce_Integraite --schema Salesforce

  # Views only
  connectai tables --catalog Salesforce_Integraite --type VIEW`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.client()
			if err != nil {
				return err
			}

			tables, err := client.GetTables(cmd.Context(), connectai.TableFilter{
				Catalog: catalog,
				Schema:  schema,
				Table:   table,
				Type:    tableType,
			})
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, tables)
			}

			rows := make([][]string, len(tables))
			for i, tb := range tables {
				rows[i] = []string{tb.Catalog, tb.Schema, tb.Name, tb.Type}
			}
			printListing(os.Stdout, []string{"CATALOG", "SCHEMA", "TABLE", "TYPE"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "Filter by catalog name")
	cmd.Flags().StringVar(&schema, "schema", "", "Filter by schema name")
	cmd.Flags().StringVar(&table, "table", "", "Filter by table name")
	cmd.Flags().StringVar(&tableType, "type", "", "Filter by table type (e.g. TABLE, VIEW)")

	return cmd
}
