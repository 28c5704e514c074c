package repository

import (
	"fmt"
	"strings"

	"github.com/storefront/storefront/internal/model"
)

// assignments accumulates "column = $n" pairs for a partial UPDATE.
// Placeholder $1 is reserved for the row id.
type assignments struct {
	cols []string
	args []any
}

// setOptional records col when the field was present in the request.
func setOptional[T any](a *assignments, col string, o model.Optional[T]) {
	if !o.Set {
		return
	}
	a.cols = append(a.cols, col)
	a.args = append(a.args, o.Arg())
}

func (a *assignments) empty() bool {
	return len(a.cols) == 0
}

// build renders the UPDATE statement and its arguments.
func (a *assignments) build(table string, id int64, returning string) (string, []any) {
	sets := make([]string, len(a.cols))
	for i, col := range a.cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		table, strings.Join(sets, ", "), returning,
	)

	args := make([]any, 0, len(a.args)+1)
	args = append(args, id)
	args = append(args, a.args...)
	return query, args
}
