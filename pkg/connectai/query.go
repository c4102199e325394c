package connectai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Column describes one column of a query result's schema.
type Column struct {
	Name     string `json:"columnName"`
	DataType string `json:"dataTypeName"`
	Nullable *bool  `json:"nullable,omitempty"`
	Ordinal  int    `json:"-"`
}

// QueryResult is the canonical shape of an executed query: the ordered
// column schema plus the rows in service order. Row values are string,
// json.Number, bool, or nil. Never mutated after construction.
type QueryResult struct {
	Schema       []Column        `json:"schema"`
	Rows         [][]interface{} `json:"rows"`
	AffectedRows *int64          `json:"affectedRows,omitempty"`
}

// ColumnNames returns the schema's column names in order.
func (r *QueryResult) ColumnNames() []string {
	names := make([]string, len(r.Schema))
	for i, col := range r.Schema {
		names[i] = col.Name
	}
	return names
}

// QueryOptions are the recognized execution options. The zero value means
// plain execution with no default schema and no parameters.
type QueryOptions struct {
	// DefaultSchema resolves unqualified table references.
	DefaultSchema string
	// SchemaOnly requests column metadata without row data.
	SchemaOnly bool
	// Parameters are substituted by the service, not locally.
	Parameters map[string]interface{}
}

// queryRequest is the /query request body. All fields are always sent;
// the service treats a null defaultSchema as unset.
type queryRequest struct {
	Query         string                 `json:"query"`
	DefaultSchema *string                `json:"defaultSchema"`
	SchemaOnly    bool                   `json:"schemaOnly"`
	Parameters    map[string]interface{} `json:"parameters"`
}

// ExecuteQuery submits a SQL statement for execution. SQL correctness is
// entirely the service's responsibility; a malformed statement surfaces as
// a *RequestError. A response missing its schema section (or its rows
// section outside schema-only mode) is a *RequestError, not a silent
// default.
func (c *Client) ExecuteQuery(ctx context.Context, sql string, opts *QueryOptions) (*QueryResult, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, fmt.Errorf("sql statement must not be empty")
	}
	if opts == nil {
		opts = &QueryOptions{}
	}

	body := queryRequest{
		Query:      sql,
		SchemaOnly: opts.SchemaOnly,
		Parameters: opts.Parameters,
	}
	if body.Parameters == nil {
		body.Parameters = map[string]interface{}{}
	}
	if opts.DefaultSchema != "" {
		body.DefaultSchema = &opts.DefaultSchema
	}

	env, err := c.do(ctx, http.MethodPost, "/query", nil, body)
	if err != nil {
		return nil, err
	}
	result, err := c.firstResult(env, "/query")
	if err != nil {
		return nil, err
	}

	if result.Schema == nil {
		return nil, ErrRequest(http.StatusOK, "query response is missing its schema section")
	}
	if result.Rows == nil && !opts.SchemaOnly {
		return nil, ErrRequest(http.StatusOK, "query response is missing its rows section")
	}

	schema := make([]Column, len(result.Schema))
	copy(schema, result.Schema)
	for i := range schema {
		schema[i].Ordinal = i
	}

	rows := make([][]interface{}, 0, len(result.Rows))
	for _, raw := range result.Rows {
		row, err := decodeRow(raw, schema)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &QueryResult{
		Schema:       schema,
		Rows:         rows,
		AffectedRows: result.AffectedRows,
	}, nil
}

// GetTableColumns fetches the column schema of one table by issuing a
// schema-only SELECT * against it.
func (c *Client) GetTableColumns(ctx context.Context, catalog, schema, table string) (*QueryResult, error) {
	sql := fmt.Sprintf("SELECT * FROM %s.%s.%s", catalog, schema, table)
	return c.ExecuteQuery(ctx, sql, &QueryOptions{SchemaOnly: true})
}

// ExecuteQueryCompact executes a query and returns only the compact
// row-per-mapping projection, the low-token-cost output mode for consumers
// that do not need schema metadata.
func (c *Client) ExecuteQueryCompact(ctx context.Context, sql string) (CompactResult, error) {
	result, err := c.ExecuteQuery(ctx, sql, nil)
	if err != nil {
		return nil, err
	}
	return ToCompact(result), nil
}
