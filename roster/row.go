package roster

// Cell is one column of a roster row
type Cell struct {
	Key   string
	Value string
}

// Row is a roster record with cells in source order
type Row []Cell

// Get returns the value of the first cell whose key equals key exactly.
func (r Row) Get(key string) (string, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// RowFromPairs builds a Row from pairs given as key, value, key, value, ...
// A trailing key without a value is ignored.
func RowFromPairs(pairs ...string) Row {
	row := make(Row, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		row = append(row, Cell{Key: pairs[i], Value: pairs[i+1]})
	}
	return row
}
