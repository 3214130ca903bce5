package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// cond is one filter predicate on a table column. Multiple conditions combine
// with AND. Supported operators: equality and set-membership.
type cond struct {
	col string
	op  string
	val any
}

func eq(col string, v any) cond {
	return cond{col: col, op: "=", val: v}
}

func in(col string, vals []string) cond {
	return cond{col: col, op: "in", val: vals}
}

// buildWhere compiles conditions into a WHERE clause with numbered
// placeholders starting at $1, returning the clause (with leading space) and
// its arguments. Set-membership compiles to `col = ANY($n)` with pq.Array.
// No conditions yields an empty clause.
func buildWhere(conds ...cond) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for i, c := range conds {
		switch c.op {
		case "in":
			parts = append(parts, fmt.Sprintf("%s = ANY($%d)", c.col, i+1))
			args = append(args, pq.Array(c.val.([]string)))
		default:
			parts = append(parts, fmt.Sprintf("%s = $%d", c.col, i+1))
			args = append(args, c.val)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
