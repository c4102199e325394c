package connectai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// nullToken is how NULL cells render in table output. The wire protocol
// does not pin down null rendering, so an explicit SQL-style token is used
// rather than an empty cell.
const nullToken = "NULL"

// FormatQueryResults renders a QueryResult for human display. With compact
// false it produces a left-aligned textual table: a header row, a
// separator, and one line per row, each column as wide as its widest value.
// With compact true it produces the pretty-printed JSON form of the compact
// projection, keys in stable (sorted) order.
//
// Display only: the machine-facing return value of query execution is the
// QueryResult (or CompactResult) itself, never this string.
func FormatQueryResults(result *QueryResult, compact bool) (string, error) {
	if len(result.Rows) == 0 {
		return "No results found.", nil
	}

	if compact {
		data, err := json.MarshalIndent(ToCompact(result), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode compact results: %w", err)
		}
		return string(data), nil
	}

	headers := result.ColumnNames()

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
		for _, row := range result.Rows {
			if w := len(cellText(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	headerCells := make([]string, len(headers))
	for i, header := range headers {
		headerCells[i] = pad(header, widths[i])
	}
	b.WriteString(strings.Join(headerCells, " | "))
	b.WriteByte('\n')

	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	b.WriteString(strings.Join(separators, "-+-"))

	for _, row := range result.Rows {
		b.WriteByte('\n')
		cells := make([]string, len(headers))
		for i := range headers {
			cells[i] = pad(cellText(row, i), widths[i])
		}
		b.WriteString(strings.Join(cells, " | "))
	}

	return b.String(), nil
}

// cellText renders the i-th cell of a row for table display. Short rows
// yield empty cells, NULL gets its explicit token, and numbers keep the
// textual form they arrived with.
func cellText(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case nil:
		return nullToken
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
