//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"meeting-room-booking/internal/domain/authz"
	"meeting-room-booking/internal/domain/user"
	"meeting-room-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.ErrorHandler())
	r.NoRoute(middleware.NoRoute)
	return r
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger(t *testing.T) {
	t.Run("generates an id and logs the caller after auth", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)
		actorID := uuid.New()
		r.GET("/rooms/:id", func(c *gin.Context) {
			middleware.SetAuthContext(c, authz.Context{UserID: actorID, Role: user.RoleManager})
			c.Status(http.StatusNoContent)
		})

		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, nethttptest.NewRequest(http.MethodGet, "/rooms/abc", nil))

		requestID := w.Header().Get(middleware.HeaderRequestID)
		require.NotEmpty(t, requestID)

		entry := lastLogLine(t, &buf)
		assert.Equal(t, "request completed", entry["msg"])
		assert.Equal(t, requestID, entry["request_id"])
		assert.Equal(t, "/rooms/:id", entry["route"])
		assert.Equal(t, "abc", entry["resource_id"])
		assert.Equal(t, actorID.String(), entry["user_id"])
		assert.Equal(t, "manager", entry["role"])
		assert.EqualValues(t, http.StatusNoContent, entry["status"])
	})

	t.Run("propagates an inbound request id", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)
		r.GET("/ping", func(c *gin.Context) {
			assert.Equal(t, "trace-42", middleware.GetRequestID(c))
			c.Status(http.StatusOK)
		})

		req := nethttptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderRequestID, "trace-42")
		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-42", w.Header().Get(middleware.HeaderRequestID))
		assert.Equal(t, "INFO", lastLogLine(t, &buf)["level"])
	})

	t.Run("panics become a logged 500 envelope", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)
		r.GET("/boom", func(*gin.Context) { panic("boom") })

		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, nethttptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
		entry := lastLogLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.EqualValues(t, http.StatusInternalServerError, entry["status"])
	})

	t.Run("unknown routes use the error envelope", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)

		w := nethttptest.NewRecorder()
		r.ServeHTTP(w, nethttptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Route not found"}}`, w.Body.String())
		assert.Equal(t, "WARN", lastLogLine(t, &buf)["level"])
	})
}
