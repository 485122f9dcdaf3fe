package core

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is a single row keyed by column name.
// Values are whatever the driver produced: int64, float64, string, []byte, bool or nil.
type Record map[string]any

// Get returns the value of a column and whether the column is present.
func (r Record) Get(column string) (any, bool) {
	v, ok := r[column]
	return v, ok
}

// IsNull reports whether the column is absent or holds NULL.
func (r Record) IsNull(column string) bool {
	v, ok := r[column]
	return !ok || v == nil
}

// Int64 returns the column as an int64.
// Integer and numeric-string values are converted; NULL and other types report false.
func (r Record) Int64(column string) (int64, bool) {
	switch v := r[column].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// String returns the column formatted as a string. NULL is reported as false.
func (r Record) String(column string) (string, bool) {
	switch v := r[column].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return fmt.Sprint(v), true
	}
}

// Columns returns the record's column names in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
