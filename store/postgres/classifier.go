package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xraph/stepflow/store"
	"github.com/xraph/stepflow/workflow"
)

const backend = "postgres"

// SQLSTATE codes with a dedicated message.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeNotNullViolation     = "23502"
	CodeCheckViolation       = "23514"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeQueryCanceled        = "57014"
)

var _ workflow.Classifier = Classifier{}

// Violation is the subject recorded for a PostgreSQL error response.
type Violation struct {
	Code       string
	Table      string
	Column     string
	Constraint string
	Detail     string
}

// Classifier maps pgx and pgconn errors to classifications. The zero value
// is ready to use.
type Classifier struct{}

// Classify implements workflow.Classifier. Both pgx.ErrNoRows and
// sql.ErrNoRows are reported as postgres not-found errors.
func (Classifier) Classify(err error) (workflow.Classification, bool) {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		nf := store.NotFound{Backend: backend}
		return workflow.Classification{Message: nf.Message(), Subject: nf}, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		v := Violation{
			Code:       pgErr.Code,
			Table:      pgErr.TableName,
			Column:     pgErr.ColumnName,
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
		}
		return workflow.Classification{Message: message(pgErr), Subject: v}, true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		u := store.Unavailable{Backend: backend, Err: err}
		return workflow.Classification{Message: u.Message(), Subject: u}, true
	}
	if pgconn.Timeout(err) {
		u := store.Unavailable{Backend: backend, Timeout: true, Err: err}
		return workflow.Classification{Message: u.Message(), Subject: u}, true
	}

	return workflow.Classification{}, false
}

func message(e *pgconn.PgError) string {
	switch e.Code {
	case CodeUniqueViolation:
		if e.ConstraintName != "" {
			return fmt.Sprintf("already exists (%s)", e.ConstraintName)
		}
		return "already exists"
	case CodeForeignKeyViolation:
		return "references a missing record"
	case CodeNotNullViolation:
		if e.ColumnName != "" {
			return e.ColumnName + " is required"
		}
		return "a required value is missing"
	case CodeCheckViolation:
		return fmt.Sprintf("violates check %s", e.ConstraintName)
	case CodeSerializationFailure, CodeDeadlockDetected:
		return "conflicting concurrent update"
	case CodeQueryCanceled:
		return "query canceled"
	default:
		return e.Message
	}
}
