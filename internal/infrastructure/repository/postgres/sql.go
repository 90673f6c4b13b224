package postgres

import (
	"database/sql"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const sqlStateUnnamedStatementMissing = "26000"

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch matches the error poolers in transaction mode return
// when a cached statement no longer fits the bound arguments.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if crerr.As(err, &pqErr) && string(pqErr.Code) == sqlStateUnnamedStatementMissing {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		strings.Contains(msg, "("+sqlStateUnnamedStatementMissing+")")
}

// isRetryable reports errors that a single retry on a fresh connection
// usually clears.
func isRetryable(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}
