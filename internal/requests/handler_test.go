package requests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/auth"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/dbtest"
	"shareit-backend/internal/platform/validation"
)

func TestHandler_Requests(t *testing.T) {
	conn := dbtest.Open(t)
	alice := dbtest.Exec(t, conn, `INSERT INTO users (name, email) VALUES ('Alice', 'alice@example.com')`)
	bob := dbtest.Exec(t, conn, `INSERT INTO users (name, email) VALUES ('Bob', 'bob@example.com')`)

	gin.SetMode(gin.TestMode)
	validation.Register()
	r := gin.New()
	RegisterRoutes(r.Group("/", auth.RequireUser(auth.Options{})), NewService(conn, clock.NewManual(t0)))

	do := func(method, path string, user int64, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(auth.DefaultUserHeader, strconv.FormatInt(user, 10))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/requests", alice, `{"description":"need a ladder"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created RequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, alice, created.RequestorID)

	w = do(http.MethodPost, "/requests", alice, `{"description":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodGet, "/requests/all?from=0&size=5", bob, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []RequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	w = do(http.MethodGet, "/requests/all", alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(http.MethodGet, "/requests/"+strconv.FormatInt(created.ID, 10), bob, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodGet, "/requests/999", bob, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
