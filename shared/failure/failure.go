package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows the HTTP status it should be answered with.
// Its message reaches the client unchanged.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest keeps the message of err. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict reports a write that lost against existing data, such as an
// overlapping booking.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// GetCode digs a Failure out of a wrapped chain. Anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
