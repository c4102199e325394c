package connectai

// CompactResult is the minimal row-major projection of a QueryResult: one
// mapping per row, keyed by column name, with no schema envelope. It is
// derived on demand and never persisted.
type CompactResult []map[string]interface{}

// ToCompact zips every row of a QueryResult with the schema's column names,
// preserving row order. It is pure and deterministic. Duplicate column
// names are undefined in the wire protocol; each row's mapping keeps the
// last value for a repeated name. Rows shorter than the schema fill the
// trailing names with nil so every element carries the full key set.
func ToCompact(result *QueryResult) CompactResult {
	names := result.ColumnNames()

	compact := make(CompactResult, 0, len(result.Rows))
	for _, row := range result.Rows {
		record := make(map[string]interface{}, len(names))
		for i, name := range names {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = nil
			}
		}
		compact = append(compact, record)
	}
	return compact
}
