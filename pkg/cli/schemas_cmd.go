package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jerodj-cdata/connectai-go/pkg/connectai"
)

func newSchemasCmd(s *settings) *cobra.Command {
	var (
		catalog string
		schema  string
	)

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List schemas, optionally filtered by catalog and schema name",
		Example: `  # All schemas across every connection
  connectai schemas

  # Schemas of one connection
  connectai schemas --catalog Salesforce_Integraite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.client()
			if err != nil {
				return err
			}

			schemas, err := client.GetSchemas(cmd.Context(), connectai.SchemaFilter{
				Catalog: catalog,
				Schema:  schema,
			})
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, schemas)
			}

			rows := make([][]string, len(schemas))
			for i, sc := range schemas {
				rows[i] = []string{sc.Catalog, sc.Name}
			}
			printListing(os.Stdout, []string{"CATALOG", "SCHEMA"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "Filter by catalog name")
	cmd.Flags().StringVar(&schema, "schema", "", "Filter by schema name")

	return cmd
}
