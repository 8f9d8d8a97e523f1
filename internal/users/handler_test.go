package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/dbtest"
	"shareit-backend/internal/platform/validation"
)

func TestHandler_Users(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	r := gin.New()
	RegisterRoutes(r, NewService(dbtest.Open(t)))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "/users/1", w.Header().Get("Location"))

	w = post(`{"name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body apperr.ErrorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeConflict, body.Error.Code)

	w = post(`{"name":"  ","email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(`{"name":"Bob","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
