package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConnTimeout      = errors.New("connection timeout")
	ErrConnectExhausted = errors.New("could not connect to database")
)

type ErrRelationDoesNotExist struct {
	Details string
	Err     error
}

func (e *ErrRelationDoesNotExist) Error() string {
	return fmt.Sprintf("relation does not exist: %s", e.Details)
}

func (e *ErrRelationDoesNotExist) Unwrap() error {
	return e.Err
}

type ErrConstraintViolation struct {
	Code    string
	Details string
	Err     error
}

func (e *ErrConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation (%s): %s", e.Code, e.Details)
}

func (e *ErrConstraintViolation) Unwrap() error {
	return e.Err
}

// ErrBadCopyData is returned when COPY rejects the streamed CSV, typically a
// column count or type mismatch between the buffer and the scratch table.
type ErrBadCopyData struct {
	Details string
	Err     error
}

func (e *ErrBadCopyData) Error() string {
	return fmt.Sprintf("invalid copy data: %s", e.Details)
}

func (e *ErrBadCopyData) Unwrap() error {
	return e.Err
}

// MapError converts driver errors into the package's error types. Unknown
// errors are returned unchanged; nil stays nil.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrConnTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UndefinedTable:
			return &ErrRelationDoesNotExist{Details: pgErr.Message, Err: err}
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return &ErrConstraintViolation{Code: pgErr.Code, Details: detail(pgErr), Err: err}
		case pgErr.Code == pgerrcode.BadCopyFileFormat,
			pgErr.Code == pgerrcode.InvalidTextRepresentation,
			pgErr.Code == pgerrcode.InvalidParameterValue:
			return &ErrBadCopyData{Details: detail(pgErr), Err: err}
		}
	}

	return err
}

func detail(pgErr *pgconn.PgError) string {
	parts := []string{pgErr.Message}
	if pgErr.Detail != "" {
		parts = append(parts, pgErr.Detail)
	}
	if pgErr.Where != "" {
		parts = append(parts, pgErr.Where)
	}
	return strings.Join(parts, "; ")
}
