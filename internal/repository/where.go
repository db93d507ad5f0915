package repository

import (
	"fmt"
	"strings"
)

// where accumulates $n-numbered predicates for list queries.
type where struct {
	conditions []string
	args       []interface{}
}

func newWhere() *where {
	return &where{conditions: []string{"1=1"}}
}

// eq adds column = value when value is non-empty.
func (w *where) eq(column string, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// cmp adds column <op> value for an arbitrary value.
func (w *where) cmp(column, op string, value interface{}) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s %s $%d", column, op, len(w.args)))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// search ORs a case-insensitive substring match across columns.
func (w *where) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	w.args = append(w.args, "%"+likeEscaper.Replace(strings.ToLower(term))+"%")
	n := len(w.args)
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("LOWER(COALESCE(%s, '')) LIKE $%d ESCAPE '\\'", column, n)
	}
	w.conditions = append(w.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	return "WHERE " + strings.Join(w.conditions, " AND ")
}
