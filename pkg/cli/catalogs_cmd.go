package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newCatalogsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List connected data sources",
		Example: `  # List every connection in the account
  connectai catalogs

  # JSON output for scripting
  connectai catalogs -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.client()
			if err != nil {
				return err
			}

			catalogs, err := client.GetCatalogs(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, catalogs)
			}

			rows := make([][]string, len(catalogs))
			for i, c := range catalogs {
				rows[i] = []string{c.Name}
			}
			printListing(os.Stdout, []string{"CATALOG"}, rows)
			return nil
		},
	}
}
