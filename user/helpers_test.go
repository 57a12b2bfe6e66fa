package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
	"github.com/yatube/backend/user/auth"
	userhttp "github.com/yatube/backend/user/http"
)

var testJwtKey = []byte("test")

func newTestUserSrvc(t *testing.T) *user.UserSrvc {
	t.Helper()
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return user.NewUserService(sqliterepo.NewUserRepo(db))
}

func newUserHttpHandler(t *testing.T) http.Handler {
	t.Helper()
	userHandler := userhttp.NewUserHttpHandler(newTestUserSrvc(t), testJwtKey)
	r := chi.NewRouter()
	r.Use(auth.GetJwtAuthMiddleware(testJwtKey))
	userHandler.RegisterRoutes(r)
	return r
}

func newJsonReq(method, path string, body map[string]interface{}) (*http.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func register(t *testing.T, handler http.Handler, userData map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, err := newJsonReq(http.MethodPost, "/auth/signup", userData)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// login performs a user login request and returns the response
func login(t *testing.T, handler http.Handler, loginData map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, err := newJsonReq(http.MethodPost, "/auth/login", loginData)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func authCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.AuthCookieName {
			return cookie
		}
	}
	return nil
}

// registerAndLogin creates a user and returns its auth token
func registerAndLogin(t *testing.T, handler http.Handler, username string) string {
	t.Helper()
	w := register(t, handler, map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "Registration failed: %s", w.Body.String())

	w = login(t, handler, map[string]interface{}{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "Login failed: %s", w.Body.String())

	cookie := authCookie(w)
	require.NotNil(t, cookie, "No auth_token cookie found in response")
	return cookie.Value
}

func assertErrorInHttpResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	// Check the response status code is not OK
	assert.NotEqual(t, http.StatusOK, w.Code, "Expected error status code")

	// Parse the error response
	var errorResponse struct {
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	require.NoError(t, err, "Failed to unmarshal error response body")

	// Check error response fields
	assert.Equal(t, "error", errorResponse.Status, "Expected status to be 'error'")
	assert.Equal(t, expectedCode, errorResponse.Code, "Incorrect error code")
	assert.NotEmpty(t, errorResponse.Message, "Expected non-empty error message")
}
