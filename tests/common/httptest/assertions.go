//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorEnvelope mirrors httperr.Response for decoding.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the envelope message contains
// expectedErrorMsg. An empty expectedErrorMsg only checks the envelope shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var env errorEnvelope
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "failed to decode error body: %s", w.Body.String()) {
		return
	}
	assert.NotEmpty(t, env.Error.Message, "error envelope has no message")
	if expectedErrorMsg != "" {
		assert.Contains(t, env.Error.Message, expectedErrorMsg)
	}
}

// AssertConflictResponse checks for a 409 whose detail lists exactly the given
// reservations, in order.
func AssertConflictResponse(t *testing.T, w *httptest.ResponseRecorder, wantIDs ...uuid.UUID) {
	t.Helper()

	require.Equal(t, http.StatusConflict, w.Code, "unexpected status, body: %s", w.Body.String())

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var detail struct {
		Conflicts []struct {
			ID uuid.UUID `json:"id"`
		} `json:"conflicts"`
	}
	require.NotEmpty(t, env.Detail, "conflict response carries no detail")
	require.NoError(t, json.Unmarshal(env.Detail, &detail))

	got := make([]uuid.UUID, 0, len(detail.Conflicts))
	for _, c := range detail.Conflicts {
		got = append(got, c.ID)
	}
	assert.Equal(t, wantIDs, got)
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}
