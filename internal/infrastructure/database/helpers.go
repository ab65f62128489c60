package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the repositories care about
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// sqlState extracts the SQLSTATE from pgx or lib/pq errors
func sqlState(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraint names are given, only those constraints match.
func IsUniqueViolation(err error, constraints ...string) bool {
	return matches(err, CodeUniqueViolation, constraints)
}

// IsForeignKeyViolation reports whether err references a missing row
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return matches(err, CodeForeignKeyViolation, constraints)
}

// IsCheckViolation reports whether err is a CHECK constraint failure
func IsCheckViolation(err error, constraints ...string) bool {
	return matches(err, CodeCheckViolation, constraints)
}

func matches(err error, want string, constraints []string) bool {
	code, constraint, ok := sqlState(err)
	if !ok || code != want {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if c == constraint {
			return true
		}
	}
	return false
}
