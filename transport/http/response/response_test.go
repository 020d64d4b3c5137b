package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litrato/shared/failure"
	"litrato/transport/http/response"
)

type blocked struct {
	ids []string
}

func (b blocked) Error() string { return "blocked" }
func (b blocked) Message() string { return "slot taken" }
func (b blocked) IDs() []string { return b.ids }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	t.Run("failure keeps its code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		response.WithError(rec, failure.NotFound("package"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "package")
	})

	t.Run("wrapped conflict lists the blocking ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		response.WithError(rec, fmt.Errorf("create: %w", blocked{ids: []string{"b1", "r2"}}))

		assert.Equal(t, http.StatusConflict, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "slot taken", body["message"])
		assert.Equal(t, []any{"b1", "r2"}, body["conflicts"])
	})
}

func TestWithErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithErrorMessage(rec, fmt.Errorf("day: %w", failure.BadRequestFromString("Invalid date supplied")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid date supplied", decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	response.WithErrorMessage(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decode(t, rec)["message"])
}

func TestWithConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithConflict(rec, "slot taken", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []any{}, decode(t, rec)["conflicts"])
}
