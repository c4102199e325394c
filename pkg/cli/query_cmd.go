package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerodj-cdata/connectai-go/pkg/connectai"
)

func newQueryCmd(s *settings) *cobra.Command {
	var (
		sql           string
		defaultSchema string
		schemaOnly    bool
		compact       bool
		params        []string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Execute a SQL statement against the federated SQL namespace",
		Example: `  # Inline SQL
  connectai query --sql "SELECT Name FROM Salesforce_Integraite.Salesforce.Account LIMIT 5"

  # SQL from stdin
  echo "SELECT 1" | connectai query

  # Compact row-per-object JSON, the token-frugal form for agents
  connectai query --sql "SELECT Name, AnnualRevenue FROM ... LIMIT 10" --compact

  # Parameterized execution with a default schema
  connectai query --sql "SELECT * FROM Account WHERE Id = @id" \
    --default-schema Salesforce --param id=001xx0000001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Read from stdin if no --sql flag
			if sql == "" {
				stat, _ := os.Stdin.Stat()
				if (stat.Mode() & os.ModeCharDevice) == 0 {
					data, err := io.ReadAll(os.Stdin)
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					sql = strings.TrimSpace(string(data))
				}
			}
			if sql == "" {
				return fmt.Errorf("provide SQL via --sql flag or stdin pipe")
			}

			parameters, err := parseParams(params)
			if err != nil {
				return err
			}

			client, err := s.client()
			if err != nil {
				return err
			}

			result, err := client.ExecuteQuery(cmd.Context(), sql, &connectai.QueryOptions{
				DefaultSchema: defaultSchema,
				SchemaOnly:    schemaOnly,
				Parameters:    parameters,
			})
			if err != nil {
				return err
			}

			if compact {
				out, err := connectai.FormatQueryResults(result, true)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, out)
				return nil
			}

			switch getOutputFormat(cmd) {
			case "json":
				return PrintJSON(os.Stdout, result)
			case "csv":
				return writeCSV(os.Stdout, result)
			default:
				out, err := connectai.FormatQueryResults(result, false)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, out)
				fmt.Fprintf(os.Stderr, "\n(%d rows)\n", len(result.Rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sql, "sql", "", "SQL statement to execute (reads stdin when omitted)")
	cmd.Flags().StringVar(&defaultSchema, "default-schema", "", "Schema for resolving unqualified table references")
	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "Return column metadata without row data")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit the compact row-per-object JSON projection")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Query parameter as name=value (repeatable)")

	return cmd
}

// parseParams turns repeated name=value flags into a parameters mapping.
// Values that parse as JSON scalars keep their type; everything else stays
// a string.
func parseParams(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	parameters := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", pair)
		}
		var typed interface{}
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			switch typed.(type) {
			case string, float64, bool, nil:
				parameters[name] = typed
				continue
			}
		}
		parameters[name] = value
	}
	return parameters, nil
}

func writeCSV(w io.Writer, result *connectai.QueryResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.ColumnNames()); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(result.Schema))
		for i := range result.Schema {
			if i < len(row) && row[i] != nil {
				record[i] = fmt.Sprint(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
