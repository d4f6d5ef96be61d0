package response

import (
	"encoding/json"
	"net/http"

	"cowork/shared/constant"
	"cowork/shared/failure"
	"cowork/shared/logger"
)

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Data[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

type Error struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Error   *string `json:"error,omitempty"`
}

// WithMessage sends a successful or failed response carrying only a message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: code < http.StatusBadRequest, Message: message})
}

// WithJSON sends a successful response containing a JSON payload
func WithJSON(writer http.ResponseWriter, code int, message string, jsonPayload interface{}) {
	response(writer, code, Data[any]{Success: true, Message: message, Data: &jsonPayload})
}

// WithError sends a failed response. Internal errors keep their detail in the error field.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		response(writer, code, Error{Message: constant.ResponseErrorInternal, Error: &errMsg})

		return
	}

	response(writer, code, Error{Message: errMsg})
}

// WithFile streams raw bytes such as a PDF download
func WithFile(writer http.ResponseWriter, contentType, filename string, content []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.Header().Set("Content-Disposition", "attachment; filename="+filename)
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(content); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
