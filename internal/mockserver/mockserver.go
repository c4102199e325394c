// Package mockserver is an in-process stand-in for the Connect AI API used
// by tests. It serves the four endpoints the client touches from
// configurable fixtures and applies the same query-parameter filters the
// real service applies server-side.
package mockserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// SchemaRow is one fixture row for the /schemas endpoint.
type SchemaRow struct {
	Catalog string
	Schema  string
}

// TableRow is one fixture row for the /tables endpoint.
type TableRow struct {
	Catalog string
	Schema  string
	Name    string
	Type    string
	Remarks string
}

// ColumnFixture is one column descriptor for the /query endpoint.
type ColumnFixture struct {
	Name     string
	DataType string
	Nullable *bool
}

// QueryRequest is the decoded /query request body handed to QueryFunc.
type QueryRequest struct {
	Query         string                 `json:"query"`
	DefaultSchema *string                `json:"defaultSchema"`
	SchemaOnly    bool                   `json:"schemaOnly"`
	Parameters    map[string]interface{} `json:"parameters"`
}

// RecordedRequest captures one request for test assertions.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Body          *QueryRequest
}

// Server holds the fixtures. Configure the exported fields, then mount
// Handler() on an httptest.Server.
type Server struct {
	// Email and Token, when both set, turn on Basic auth checking;
	// mismatches get a 401 with a JSON error body.
	Email string
	Token string

	Catalogs []string
	Schemas  []SchemaRow
	Tables   []TableRow

	// QueryColumns/QueryRows/AffectedRows answer /query when QueryFunc is
	// unset. SchemaOnly requests drop the rows.
	QueryColumns []ColumnFixture
	QueryRows    [][]interface{}
	AffectedRows *int64

	// QueryFunc, when set, fully controls the /query response: it returns
	// the HTTP status and the raw response body to encode.
	QueryFunc func(req QueryRequest) (int, interface{})

	mu       sync.Mutex
	requests []RecordedRequest
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Handler returns the chi router serving the mock API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.checkAuth)
	r.Get("/catalogs", s.handleCatalogs)
	r.Get("/schemas", s.handleSchemas)
	r.Get("/tables", s.handleTables)
	r.Post("/query", s.handleQuery)
	return r
}

func (s *Server) record(r *http.Request, body *QueryRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
}

func (s *Server) checkAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Email != "" && s.Token != "" {
			email, token, ok := r.BasicAuth()
			if !ok || email != s.Email || token != s.Token {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"error": "invalid credentials",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCatalogs(w http.ResponseWriter, r *http.Request) {
	s.record(r, nil)
	rows := make([][]interface{}, 0, len(s.Catalogs))
	for _, name := range s.Catalogs {
		rows = append(rows, []interface{}{name})
	}
	writeEnvelope(w, map[string]interface{}{"rows": rows})
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	s.record(r, nil)
	catalog := r.URL.Query().Get("catalogName")
	schema := r.URL.Query().Get("schemaName")

	rows := make([][]interface{}, 0, len(s.Schemas))
	for _, row := range s.Schemas {
		if catalog != "" && row.Catalog != catalog {
			continue
		}
		if schema != "" && row.Schema != schema {
			continue
		}
		rows = append(rows, []interface{}{row.Catalog, row.Schema})
	}
	writeEnvelope(w, map[string]interface{}{"rows": rows})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	s.record(r, nil)
	q := r.URL.Query()
	catalog := q.Get("catalogName")
	schema := q.Get("schemaName")
	table := q.Get("tableName")
	tableType := q.Get("tableType")

	rows := make([][]interface{}, 0, len(s.Tables))
	for _, row := range s.Tables {
		if catalog != "" && row.Catalog != catalog {
			continue
		}
		if schema != "" && row.Schema != schema {
			continue
		}
		if table != "" && row.Name != table {
			continue
		}
		if tableType != "" && row.Type != tableType {
			continue
		}
		rows = append(rows, []interface{}{row.Catalog, row.Schema, row.Name, row.Type, row.Remarks})
	}
	writeEnvelope(w, map[string]interface{}{"rows": rows})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.record(r, nil)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
		return
	}
	s.record(r, &req)

	if s.QueryFunc != nil {
		status, body := s.QueryFunc(req)
		writeJSON(w, status, body)
		return
	}

	schema := make([]map[string]interface{}, 0, len(s.QueryColumns))
	for _, col := range s.QueryColumns {
		entry := map[string]interface{}{
			"columnName":   col.Name,
			"dataTypeName": col.DataType,
		}
		if col.Nullable != nil {
			entry["nullable"] = *col.Nullable
		}
		schema = append(schema, entry)
	}

	rows := s.QueryRows
	if req.SchemaOnly {
		rows = [][]interface{}{}
	}
	if rows == nil {
		rows = [][]interface{}{}
	}

	result := map[string]interface{}{
		"schema": schema,
		"rows":   rows,
	}
	if s.AffectedRows != nil {
		result["affectedRows"] = *s.AffectedRows
	}
	writeEnvelope(w, result)
}

func writeEnvelope(w http.ResponseWriter, result map[string]interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": []interface{}{result},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
