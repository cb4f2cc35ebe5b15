package service

import (
	"errors"

	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// storeError converts a store error into a coded domain error. what names the
// entity for not-found messages. Errors without a store sentinel pass through.
func storeError(err error, what string) error {
	if err == nil {
		return nil
	}

	var se *store.Error
	if !errors.As(err, &se) {
		return err
	}

	msg := se.Message
	switch {
	case errors.Is(err, store.ErrNotFound):
		if se.Message == store.ErrNotFound.Message {
			msg = what + " not found"
		}
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(msg).WithCause(err)
	case errors.Is(err, store.ErrInvalidReference):
		return domainerrors.Validation(msg).WithCause(err)
	case errors.Is(err, store.ErrInUse):
		return domainerrors.Conflict(msg).WithCause(err)
	default:
		return err
	}
}
