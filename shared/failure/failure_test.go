package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"litrato/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"bad request", failure.BadRequest(errors.New("event_end must be after event_start")), http.StatusBadRequest, "event_end must be after event_start"},
		{"bad request from string", failure.BadRequestFromString("hours must be positive"), http.StatusBadRequest, "hours must be positive"},
		{"unauthorized", failure.Unauthorized("token has expired"), http.StatusUnauthorized, "token has expired"},
		{"not found", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"conflict", failure.Conflict("the slot overlaps booking b7"), http.StatusConflict, "the slot overlaps booking b7"},
		{"forbidden", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("accept request r1: %w", failure.Conflict("overlap"))
	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
	assert.Equal(t, http.StatusTeapot, failure.GetCode(failure.New(http.StatusTeapot, "short and stout")))
}
