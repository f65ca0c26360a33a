// Package sqlutil holds small helpers shared by the SQLite index code.
package sqlutil

import (
	"database/sql"
	"strings"
)

// InClauseArgs expands items into "?" placeholders for an IN clause.
//
// An empty list yields "NULL" so that `IN (NULL)` matches nothing.
func InClauseArgs[T ~string](items []T) (placeholders string, args []any) {
	if len(items) == 0 {
		return "NULL", nil
	}
	args = make([]any, len(items))
	for i, item := range items {
		args[i] = string(item)
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", "), args
}

// ScanRows drains rows through scan and closes them.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
