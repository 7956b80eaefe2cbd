package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/tablegen/internal/errs"
)

// PostgreSQL SQLSTATE error codes
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrUndefinedTable        = "42P01"
	pgErrInsufficientPrivilege = "42501"
	pgErrInvalidPassword       = "28P01"
	pgErrInvalidAuthorization  = "28000"
)

// mapError translates pgx / pgconn native errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	// Context cancellation / deadline exceeded
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindInterrupted, msg, err)
	}

	// No rows
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	// Postgres server-side error (SQLSTATE codes)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.ErrKindQueryFailed
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08":
			// Class 08: connection exceptions
			kind = errs.ErrKindConnectionFailed
		case pgErr.Code == pgErrUndefinedTable:
			kind = errs.ErrKindNotFound
		case pgErr.Code == pgErrInsufficientPrivilege,
			pgErr.Code == pgErrInvalidPassword,
			pgErr.Code == pgErrInvalidAuthorization:
			kind = errs.ErrKindPermissionDenied
		}
		return &errs.Error{
			Kind:    kind,
			Message: fmt.Sprintf("%s: %s", msg, pgErr.Message),
			Cause:   err,
		}
	}

	// Fallthrough: connection-level errors (TLS, network, auth)
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
