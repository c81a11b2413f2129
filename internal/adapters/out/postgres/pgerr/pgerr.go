// Package pgerr classifies PostgreSQL driver errors for the rest of the adapter layer.
package pgerr

import (
	"context"
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes of failures that a retry of the whole transaction may fix.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	QueryCanceled        = "57014"
	UniqueViolation      = "23505"
)

// Classify wraps err into errs.TransientError when it is a lock timeout, deadlock,
// serialization failure, statement cancellation or context deadline. Other errors
// are returned unchanged.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return errs.NewTransientErrorWithCause(operation, err)
	}
	return err
}

func IsTransient(err error) bool {
	if errors.Is(err, errs.ErrTransient) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case SerializationFailure, DeadlockDetected, LockNotAvailable, QueryCanceled:
			return true
		}
	}
	return false
}

// IsUniqueViolation recognizes both the raw driver error and its translation by
// gorm's TranslateError option.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}
