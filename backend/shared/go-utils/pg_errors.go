package utils

import (
	"errors"

	"github.com/jackc/pgconn"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for unique index hits.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
