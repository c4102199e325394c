package connectai

import (
	"context"
	"net/http"
	"net/url"
)

// Catalog is one connected data source exposed through the unified SQL
// namespace.
type Catalog struct {
	Name string `json:"catalogName"`
}

// Schema is a namespace within a Catalog grouping related tables.
type Schema struct {
	Catalog string `json:"TABLE_CATALOG"`
	Name    string `json:"TABLE_SCHEMA"`
}

// Table is a queryable relation (base table or view) within a Schema.
type Table struct {
	Catalog string `json:"TABLE_CATALOG"`
	Schema  string `json:"TABLE_SCHEMA"`
	Name    string `json:"TABLE_NAME"`
	Type    string `json:"TABLE_TYPE"`
	Remarks string `json:"REMARKS,omitempty"`
}

// SchemaFilter narrows GetSchemas. Zero-valued fields mean no filter.
type SchemaFilter struct {
	Catalog string
	Schema  string
}

// TableFilter narrows GetTables. Zero-valued fields mean no filter.
type TableFilter struct {
	Catalog string
	Schema  string
	Table   string
	Type    string
}

// GetCatalogs lists every data source connected to the account.
func (c *Client) GetCatalogs(ctx context.Context) ([]Catalog, error) {
	result, err := c.getMetadata(ctx, "/catalogs", nil)
	if err != nil {
		return nil, err
	}

	catalogs := make([]Catalog, 0, len(result.Rows))
	for _, raw := range result.Rows {
		row, err := decodeRow(raw, nil)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, Catalog{Name: stringCell(row, 0)})
	}
	return catalogs, nil
}

// GetSchemas lists schemas, optionally narrowed by catalog and schema name.
// The service applies both filters server-side. An empty listing is not an
// error.
func (c *Client) GetSchemas(ctx context.Context, filter SchemaFilter) ([]Schema, error) {
	query := url.Values{}
	if filter.Catalog != "" {
		query.Set("catalogName", filter.Catalog)
	}
	if filter.Schema != "" {
		query.Set("schemaName", filter.Schema)
	}

	result, err := c.getMetadata(ctx, "/schemas", query)
	if err != nil {
		return nil, err
	}

	schemas := make([]Schema, 0, len(result.Rows))
	for _, raw := range result.Rows {
		row, err := decodeRow(raw, nil)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, Schema{
			Catalog: stringCell(row, 0),
			Name:    stringCell(row, 1),
		})
	}
	return schemas, nil
}

// GetTables lists tables, optionally narrowed by catalog, schema, table
// name, and table type. All four filters are accepted server-side as query
// parameters, so no rows are discarded client-side.
func (c *Client) GetTables(ctx context.Context, filter TableFilter) ([]Table, error) {
	query := url.Values{}
	if filter.Catalog != "" {
		query.Set("catalogName", filter.Catalog)
	}
	if filter.Schema != "" {
		query.Set("schemaName", filter.Schema)
	}
	if filter.Table != "" {
		query.Set("tableName", filter.Table)
	}
	if filter.Type != "" {
		query.Set("tableType", filter.Type)
	}

	result, err := c.getMetadata(ctx, "/tables", query)
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(result.Rows))
	for _, raw := range result.Rows {
		row, err := decodeRow(raw, nil)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{
			Catalog: stringCell(row, 0),
			Schema:  stringCell(row, 1),
			Name:    stringCell(row, 2),
			Type:    stringCell(row, 3),
			Remarks: stringCell(row, 4),
		})
	}
	return tables, nil
}

func (c *Client) getMetadata(ctx context.Context, path string, query url.Values) (*resultSet, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return c.firstResult(env, path)
}
