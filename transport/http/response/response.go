package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"litrato/shared/constant"
	"litrato/shared/failure"
	"litrato/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// conflicting is implemented by errors that know which records blocked a
// write.
type conflicting interface {
	Message() string
	IDs() []string
}

// WithError sends a response with an error message. Conflicts are answered
// through WithConflict.
func WithError(writer http.ResponseWriter, err error) {
	var conflict conflicting
	if errors.As(err, &conflict) {
		WithConflict(writer, conflict.Message(), conflict.IDs())

		return
	}

	code := failure.GetCode(err)
	errMsg := err.Error()

	response(writer, code, Error{Error: &errMsg})
}

type Conflict struct {
	Message   string   `json:"message"`
	Conflicts []string `json:"conflicts"`
}

// WithErrorMessage sends the failure text under "message" with the status
// derived from the error. Errors that carry no failure answer with a generic
// 500 text.
func WithErrorMessage(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		WithMessage(writer, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return
	}

	WithMessage(writer, fail.Code, fail.Message)
}

// WithConflict sends a 409 listing the identifiers of the blocking records
func WithConflict(writer http.ResponseWriter, message string, ids []string) {
	if ids == nil {
		ids = []string{}
	}

	response(writer, http.StatusConflict, Conflict{Message: message, Conflicts: ids})
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
