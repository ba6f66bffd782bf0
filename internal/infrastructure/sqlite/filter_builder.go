package sqlite

import (
	"strings"

	"github.com/martijn/usersvc/internal/core/repository"
)

// buildUserFilter builds a SQL WHERE clause from a UserFilter.
// An empty filter yields an empty clause.
func buildUserFilter(f repository.UserFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Email != "" {
		clauses = append(clauses, "email = ?")
		args = append(args, f.Email)
	}
	if f.ExcludeID != "" {
		clauses = append(clauses, "id != ?")
		args = append(args, f.ExcludeID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
