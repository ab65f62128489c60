package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder accumulates conditions with numbered pgx placeholders
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add appends a condition; every "?" in cond is replaced by the next $n placeholder
func (w *WhereBuilder) Add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, cond)
}

// SQL returns "WHERE a AND b" or an empty string
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(w.clauses)
}

// Args returns the collected arguments
func (w *WhereBuilder) Args() []any {
	return w.args
}

// Next returns the placeholder the next appended argument will take, and appends it
func (w *WhereBuilder) Next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}
