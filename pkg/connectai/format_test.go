package connectai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQueryResults_Table(t *testing.T) {
	result := &QueryResult{
		Schema: []Column{
			{Name: "Name", DataType: "VARCHAR"},
			{Name: "Count", DataType: "INTEGER"},
		},
		Rows: [][]interface{}{
			{"open tickets", json.Number("42")},
			{"closed", json.Number("7")},
		},
	}

	out, err := FormatQueryResults(result, false)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Name         | Count",
		"-------------+------",
		"open tickets | 42   ",
		"closed       | 7    ",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestFormatQueryResults_NullRendersAsToken(t *testing.T) {
	result := &QueryResult{
		Schema: []Column{{Name: "Revenue", DataType: "DOUBLE"}},
		Rows:   [][]interface{}{{nil}},
	}

	out, err := FormatQueryResults(result, false)
	require.NoError(t, err)
	assert.Contains(t, out, "NULL")
}

func TestFormatQueryResults_HeaderWiderThanValues(t *testing.T) {
	result := &QueryResult{
		Schema: []Column{{Name: "AnnualRevenue", DataType: "DOUBLE"}},
		Rows:   [][]interface{}{{json.Number("5")}},
	}

	out, err := FormatQueryResults(result, false)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AnnualRevenue", lines[0])
	assert.Equal(t, strings.Repeat("-", len("AnnualRevenue")), lines[1])
	assert.Equal(t, len(lines[0]), len(lines[2]))
}

func TestFormatQueryResults_NoRows(t *testing.T) {
	result := &QueryResult{Schema: []Column{{Name: "A"}}, Rows: [][]interface{}{}}

	out, err := FormatQueryResults(result, false)
	require.NoError(t, err)
	assert.Equal(t, "No results found.", out)

	out, err = FormatQueryResults(result, true)
	require.NoError(t, err)
	assert.Equal(t, "No results found.", out)
}

func TestFormatQueryResults_Compact(t *testing.T) {
	result := &QueryResult{
		Schema: []Column{
			{Name: "Name", DataType: "VARCHAR"},
			{Name: "AnnualRevenue", DataType: "DOUBLE"},
		},
		Rows: [][]interface{}{
			{"Acme", json.Number("1250000.5")},
		},
	}

	out, err := FormatQueryResults(result, true)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Acme", decoded[0]["Name"])
	assert.Equal(t, 1250000.5, decoded[0]["AnnualRevenue"])
}

// Both renderings must carry every value of every row, in row order.
func TestFormatQueryResults_RoundTripPreservesValues(t *testing.T) {
	result := &QueryResult{
		Schema: []Column{
			{Name: "Status", DataType: "VARCHAR"},
			{Name: "Count", DataType: "INTEGER"},
			{Name: "Active", DataType: "BOOLEAN"},
		},
		Rows: [][]interface{}{
			{"solved", json.Number("118"), true},
			{"open", json.Number("42"), false},
		},
	}

	table, err := FormatQueryResults(result, false)
	require.NoError(t, err)
	compact, err := FormatQueryResults(result, true)
	require.NoError(t, err)

	for _, cell := range []string{"solved", "118", "true", "open", "42", "false"} {
		assert.Contains(t, table, cell)
		assert.Contains(t, compact, cell)
	}

	// Row order must survive the table rendering.
	assert.Less(t, strings.Index(table, "solved"), strings.Index(table, "open"))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(compact), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "solved", decoded[0]["Status"])
	assert.Equal(t, "open", decoded[1]["Status"])
}
