package failure

import (
	"errors"
	"net/http"

	"cowork/shared/constant"

	"github.com/lib/pq"
)

// Failure is an error that carries the HTTP status it should be answered with.
// Anything that is not a Failure is answered with 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

// BadRequest wraps a validation error; nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the entity name, e.g. "space" or "meeting room".
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

// Conflict covers double bookings, duplicate accounts and illegal status transitions.
func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// InternalError wraps an unexpected error; nil stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func Unimplemented(methodName string) error {
	return newFailure(http.StatusNotImplemented, methodName)
}

// BadGateway reports a failing upstream service.
func BadGateway(msg string) error {
	return newFailure(http.StatusBadGateway, msg)
}

// FromUniqueViolation turns a postgres unique violation into a conflict, other errors are returned untouched.
func FromUniqueViolation(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return Conflict(message)
	}

	return err
}

// IsCode reports whether err is a Failure carrying the given status code.
func IsCode(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}

func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
