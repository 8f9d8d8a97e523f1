package apperr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/logging"
)

func TestToHTTPStatus(t *testing.T) {
	cases := map[error]int{
		ErrInvalid("x"):                            http.StatusBadRequest,
		ErrNotFound("x"):                           http.StatusNotFound,
		ErrForbidden("x"):                          http.StatusForbidden,
		ErrUnauthorized("x"):                       http.StatusUnauthorized,
		ErrConflict("x"):                           http.StatusConflict,
		ErrInternal("x"):                           http.StatusInternalServerError,
		errors.New("boom"):                         http.StatusInternalServerError,
		fmt.Errorf("wrapped: %w", ErrNotFound("x")): http.StatusNotFound,
	}
	for err, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(err), err.Error())
	}
}

func TestAbort_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Abort(c, errors.New("dial tcp: secret dsn")) })
	r.GET("/y", func(c *gin.Context) { Abort(c, NotFoundf("item %d not found", 3)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/y", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeNotFound, body.Error.Code)
	assert.Equal(t, "item 3 not found", body.Error.Message)
}

func TestAbort_LogsWithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(logging.Middleware(logger))
	r.GET("/x", func(c *gin.Context) { Abort(c, errors.New("boom")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(logging.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var failed map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		if rec["msg"] == "request failed" {
			failed = rec
		}
	}
	require.NotNil(t, failed, buf.String())
	assert.Equal(t, "req-42", failed["request_id"])
	assert.Equal(t, "/x", failed["path"])
	assert.Equal(t, "boom", failed["err"])
}
