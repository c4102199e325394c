package connectai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerodj-cdata/connectai-go/internal/mockserver"
)

func accountColumns() []mockserver.ColumnFixture {
	return []mockserver.ColumnFixture{
		{Name: "Name", DataType: "VARCHAR"},
		{Name: "AnnualRevenue", DataType: "DOUBLE"},
	}
}

func TestExecuteQuery_DecodesSchemaAndRows(t *testing.T) {
	mock := &mockserver.Server{
		QueryColumns: accountColumns(),
		QueryRows: [][]interface{}{
			{"Acme Corp", 1250000.50},
			{"Globex", 98000},
			{"Initech", nil},
		},
	}
	c := newTestClient(t, mock)

	result, err := c.ExecuteQuery(context.Background(), "SELECT Name, AnnualRevenue FROM Salesforce_Integraite.Salesforce.Account", nil)
	require.NoError(t, err)

	require.Len(t, result.Schema, 2)
	assert.Equal(t, "Name", result.Schema[0].Name)
	assert.Equal(t, "VARCHAR", result.Schema[0].DataType)
	assert.Equal(t, 0, result.Schema[0].Ordinal)
	assert.Equal(t, 1, result.Schema[1].Ordinal)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "Acme Corp", result.Rows[0][0])
	assert.Equal(t, json.Number("1250000.5"), result.Rows[0][1])
	assert.Equal(t, json.Number("98000"), result.Rows[1][1])
	assert.Nil(t, result.Rows[2][1])
}

func TestExecuteQuery_ObjectRowsReorderedBySchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{
			"schema":[{"columnName":"Name","dataTypeName":"VARCHAR"},{"columnName":"Status","dataTypeName":"VARCHAR"}],
			"rows":[{"Status":"open","Name":"Ticket-1"}]
		}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, Email: "e", Token: "t"})
	require.NoError(t, err)

	result, err := c.ExecuteQuery(context.Background(), "SELECT Name, Status FROM Tickets", nil)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, []interface{}{"Ticket-1", "open"}, result.Rows[0])
}

func TestExecuteQuery_RequestBody(t *testing.T) {
	mock := &mockserver.Server{QueryColumns: accountColumns()}
	c := newTestClient(t, mock)

	_, err := c.ExecuteQuery(context.Background(), "SELECT * FROM Account", &QueryOptions{
		DefaultSchema: "Salesforce",
		Parameters:    map[string]interface{}{"limit": 10},
	})
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	body := reqs[0].Body
	require.NotNil(t, body)
	assert.Equal(t, "SELECT * FROM Account", body.Query)
	require.NotNil(t, body.DefaultSchema)
	assert.Equal(t, "Salesforce", *body.DefaultSchema)
	assert.False(t, body.SchemaOnly)
	assert.Equal(t, float64(10), body.Parameters["limit"])
}

func TestExecuteQuery_DefaultSchemaOmittedAsNull(t *testing.T) {
	mock := &mockserver.Server{QueryColumns: accountColumns()}
	c := newTestClient(t, mock)

	_, err := c.ExecuteQuery(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)

	body := mock.Requests()[0].Body
	require.NotNil(t, body)
	assert.Nil(t, body.DefaultSchema)
	assert.NotNil(t, body.Parameters)
}

func TestExecuteQuery_SchemaOnly(t *testing.T) {
	mock := &mockserver.Server{
		QueryColumns: accountColumns(),
		QueryRows:    [][]interface{}{{"should not be returned", 1}},
	}
	c := newTestClient(t, mock)

	result, err := c.ExecuteQuery(context.Background(), "SELECT * FROM Account", &QueryOptions{SchemaOnly: true})
	require.NoError(t, err)

	assert.Len(t, result.Schema, 2)
	assert.Empty(t, result.Rows)

	body := mock.Requests()[0].Body
	require.NotNil(t, body)
	assert.True(t, body.SchemaOnly)
}

func TestExecuteQuery_EmptySQL(t *testing.T) {
	mock := &mockserver.Server{}
	c := newTestClient(t, mock)

	_, err := c.ExecuteQuery(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
	assert.Empty(t, mock.Requests(), "empty SQL must be rejected before any network call")
}

func TestExecuteQuery_MissingSchemaSection(t *testing.T) {
	mock := &mockserver.Server{
		QueryFunc: func(mockserver.QueryRequest) (int, interface{}) {
			return http.StatusOK, map[string]interface{}{
				"results": []interface{}{map[string]interface{}{"rows": [][]interface{}{}}},
			}
		},
	}
	c := newTestClient(t, mock)

	_, err := c.ExecuteQuery(context.Background(), "SELECT 1", nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "schema")
}

func TestExecuteQuery_MissingRowsSection(t *testing.T) {
	mock := &mockserver.Server{
		QueryFunc: func(mockserver.QueryRequest) (int, interface{}) {
			return http.StatusOK, map[string]interface{}{
				"results": []interface{}{map[string]interface{}{"schema": []interface{}{}}},
			}
		},
	}
	c := newTestClient(t, mock)

	_, err := c.ExecuteQuery(context.Background(), "SELECT 1", nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "rows")
}

func TestExecuteQuery_HTTP500PreservesStatus(t *testing.T) {
	mock := &mockserver.Server{
		QueryFunc: func(mockserver.QueryRequest) (int, interface{}) {
			return http.StatusInternalServerError, map[string]interface{}{"error": "syntax error near FORM"}
		},
	}
	c := newTestClient(t, mock)

	result, err := c.ExecuteQuery(context.Background(), "SELECT * FORM Account", nil)
	require.Error(t, err)
	assert.Nil(t, result, "a failed call must not return a partial result")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Contains(t, reqErr.Message, "syntax error near FORM")
}

func TestGetTableColumns(t *testing.T) {
	nullable := true
	mock := &mockserver.Server{
		QueryColumns: []mockserver.ColumnFixture{
			{Name: "Id", DataType: "VARCHAR"},
			{Name: "Amount", DataType: "DECIMAL", Nullable: &nullable},
		},
		QueryRows: [][]interface{}{{"x", 1}},
	}
	c := newTestClient(t, mock)

	result, err := c.GetTableColumns(context.Background(), "Salesforce_Integraite", "Salesforce", "Opportunity")
	require.NoError(t, err)

	require.Len(t, result.Schema, 2)
	assert.Equal(t, "Amount", result.Schema[1].Name)
	require.NotNil(t, result.Schema[1].Nullable)
	assert.True(t, *result.Schema[1].Nullable)
	assert.Empty(t, result.Rows, "schema-only mode must not fabricate row data")

	body := mock.Requests()[0].Body
	require.NotNil(t, body)
	assert.True(t, body.SchemaOnly)
	assert.Equal(t, "SELECT * FROM Salesforce_Integraite.Salesforce.Opportunity", body.Query)
}

func TestExecuteQueryCompact_TenRowsTwoKeys(t *testing.T) {
	mock := &mockserver.Server{QueryColumns: accountColumns()}
	for i := 0; i < 10; i++ {
		mock.QueryRows = append(mock.QueryRows, []interface{}{"Account", i * 1000})
	}
	c := newTestClient(t, mock)

	compact, err := c.ExecuteQueryCompact(context.Background(), "SELECT Name, AnnualRevenue FROM Salesforce_Integraite.Salesforce.Account LIMIT 10")
	require.NoError(t, err)

	require.Len(t, compact, 10)
	for _, record := range compact {
		require.Len(t, record, 2)
		assert.Contains(t, record, "Name")
		assert.Contains(t, record, "AnnualRevenue")
	}
}
