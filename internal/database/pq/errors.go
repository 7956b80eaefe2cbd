package pq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/koustreak/tablegen/internal/errs"
)

// mapError translates lib/pq errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindInterrupted, msg, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		kind := errs.ErrKindQueryFailed
		switch {
		case pqErr.Code.Class() == "08":
			kind = errs.ErrKindConnectionFailed
		case pqErr.Code == "42P01":
			kind = errs.ErrKindNotFound
		case pqErr.Code == "42501", pqErr.Code == "28P01", pqErr.Code == "28000":
			kind = errs.ErrKindPermissionDenied
		}
		return &errs.Error{
			Kind:    kind,
			Message: fmt.Sprintf("%s: %s", msg, pqErr.Message),
			Cause:   err,
		}
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
