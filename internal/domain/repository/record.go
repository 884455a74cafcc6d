package repository

import (
	"strconv"
	"time"
)

// Record is one row keyed by column name.
type Record map[string]any

func (r Record) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func (r Record) String(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// NullString returns nil for SQL NULL or a missing column.
func (r Record) NullString(key string) *string {
	s, ok := r.String(key)
	if !ok {
		return nil
	}
	return &s
}

func (r Record) Time(key string) time.Time {
	t, _ := r[key].(time.Time)
	return t
}
