package postgres

import (
	"fmt"
	"strings"

	"github.com/martijn/usersvc/internal/core/repository"
)

// buildUserFilter renders f as a WHERE clause with positional placeholders.
func buildUserFilter(f repository.UserFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(cond, len(args)))
	}

	if f.Email != "" {
		add("email = $%d", f.Email)
	}
	if f.ExcludeID != "" {
		add("id <> $%d", f.ExcludeID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
