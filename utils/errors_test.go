package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")

	withCause := NewAppError(http.StatusServiceUnavailable, "gateway unreachable", cause)
	assert.Equal(t, "gateway unreachable: connection refused", withCause.Error())
	assert.Equal(t, cause, withCause.Unwrap())

	bare := NewAppError(http.StatusBadRequest, "invalid input", nil)
	assert.Equal(t, "invalid input", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestGetAppError(t *testing.T) {
	appErr := NotFoundError("order not found", nil)
	assert.Equal(t, appErr, GetAppError(appErr))
	assert.Nil(t, GetAppError(errors.New("plain error")))
	assert.Nil(t, GetAppError(nil))
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFoundError(NotFoundError("missing", nil)))
	assert.False(t, IsNotFoundError(ConflictAppError("taken", nil)))

	assert.True(t, IsConflictError(ConflictAppError("taken", nil)))
	assert.False(t, IsConflictError(BadRequestError("bad", nil)))
	assert.False(t, IsConflictError(errors.New("plain error")))
}

func TestWrapError(t *testing.T) {
	cause := errors.New("no such row")
	wrapped := WrapError(cause, "failed to fetch cart items")
	assert.EqualError(t, wrapped, "failed to fetch cart items: no such row")
	assert.True(t, errors.Is(wrapped, cause))

	assert.Nil(t, WrapError(nil, "ignored"))
}
