package connectai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// decodeRow turns one raw response row into positional values. The service
// sends rows as positional arrays; the query endpoint may also send objects
// keyed by column name, which are re-ordered into schema order here.
// Numbers decode as json.Number so their textual form survives.
func decodeRow(raw json.RawMessage, columns []Column) ([]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrRequest(http.StatusOK, "response contains an empty row")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '[':
		var row []interface{}
		if err := dec.Decode(&row); err != nil {
			return nil, ErrRequest(http.StatusOK, "decode row: %v", err)
		}
		return row, nil
	case '{':
		if len(columns) == 0 {
			return nil, ErrRequest(http.StatusOK, "object row received without a column schema")
		}
		var fields map[string]interface{}
		if err := dec.Decode(&fields); err != nil {
			return nil, ErrRequest(http.StatusOK, "decode row: %v", err)
		}
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = fields[col.Name]
		}
		return row, nil
	default:
		return nil, ErrRequest(http.StatusOK, "row is neither an array nor an object")
	}
}

// stringCell returns the i-th cell of a row as a string, tolerating short
// rows and non-string cells.
func stringCell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}
