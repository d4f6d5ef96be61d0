package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cowork/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("seater is required")), code: http.StatusBadRequest, message: "seater is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid date range"), code: http.StatusBadRequest, message: "invalid date range"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "forbidden", err: failure.Forbidden("KYC not verified"), code: http.StatusForbidden, message: "KYC not verified"},
		{name: "not found", err: failure.NotFound("space"), code: http.StatusNotFound, message: "space"},
		{name: "conflict", err: failure.Conflict("space already booked"), code: http.StatusConflict, message: "space already booked"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("Refund"), code: http.StatusNotImplemented, message: "Refund"},
		{name: "bad gateway", err: failure.BadGateway("invoice service unavailable"), code: http.StatusBadGateway, message: "invoice service unavailable"},
		{name: "page param", err: failure.InvalidPageParam, code: http.StatusBadRequest, message: "invalid page parameter"},
		{name: "restricted", err: failure.ResourceRestrictedError, code: http.StatusForbidden, message: "You don't have permission to access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.True(t, failure.IsCode(tt.err, tt.code))
		})
	}
}

func TestNilPassThrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("confirm booking: %w", failure.Conflict("already confirmed"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.True(t, failure.IsCode(wrapped, http.StatusConflict))
	assert.False(t, failure.IsCode(wrapped, http.StatusNotFound))

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.False(t, failure.IsCode(errors.New("plain"), http.StatusInternalServerError))
}

func TestFromUniqueViolation(t *testing.T) {
	duplicate := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})

	err := failure.FromUniqueViolation(duplicate, "email already registered")
	assert.EqualError(t, err, "email already registered")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	fk := &pq.Error{Code: "23503"}
	assert.Same(t, fk, failure.FromUniqueViolation(fk, "ignored"))

	other := errors.New("connection reset")
	assert.Equal(t, other, failure.FromUniqueViolation(other, "ignored"))
	assert.NoError(t, failure.FromUniqueViolation(nil, "ignored"))
}
