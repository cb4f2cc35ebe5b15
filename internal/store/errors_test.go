package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
	}

	assert.Equal(t, "not found", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := store.ErrInUse.WithCause(cause)

	assert.Contains(t, err.Error(), "still referenced")
	assert.Contains(t, err.Error(), "underlying error")
	assert.ErrorIs(t, err, cause)
}

func TestError_HTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, store.ErrNotFound.HTTPCode())
	assert.Equal(t, http.StatusConflict, store.ErrAlreadyExists.HTTPCode())
	assert.Equal(t, http.StatusBadRequest, store.ErrInvalidReference.HTTPCode())
	assert.Equal(t, http.StatusConflict, store.ErrInUse.HTTPCode())
}

func TestError_DerivedMatchesSentinel(t *testing.T) {
	err := store.ErrNotFound.WithMessage("cook 7 not found")
	wrapped := fmt.Errorf("get cook: %w", err)

	assert.ErrorIs(t, wrapped, store.ErrNotFound)
	assert.NotErrorIs(t, wrapped, store.ErrAlreadyExists)
	assert.Equal(t, "cook 7 not found", err.Error())

	// Sentinels with the same status stay distinct.
	assert.NotErrorIs(t, store.ErrInUse, store.ErrAlreadyExists)
}
