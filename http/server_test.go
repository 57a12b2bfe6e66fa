package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yhttp "github.com/yatube/backend/http"
	"github.com/yatube/backend/post"
	posthttp "github.com/yatube/backend/post/http"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
	userhttp "github.com/yatube/backend/user/http"
)

var testJwtKey = []byte("test")

func newTestServer(t *testing.T, mediaDir string) (*yhttp.HttpServer, *post.PostSrvc, *user.UserSrvc) {
	t.Helper()
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userSrvc := user.NewUserService(sqliterepo.NewUserRepo(db))
	postSrvc := post.NewPostService(
		sqliterepo.NewPostRepo(db),
		sqliterepo.NewGroupRepo(db),
		userSrvc,
		nil,
		nil,
		post.DefaultSrvcConfig(),
	)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := yhttp.NewHttpServer(log, yhttp.Options{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		JwtKey:         testJwtKey,
		MediaDir:       mediaDir,
		MediaPath:      "/media/",
	},
		userhttp.NewUserHttpHandler(userSrvc, testJwtKey),
		posthttp.NewPostHttpHandler(postSrvc, 0),
	)
	return server, postSrvc, userSrvc
}

func serve(server *yhttp.HttpServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	server, _, _ := newTestServer(t, "")
	w := serve(server, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	server, _, _ := newTestServer(t, "")

	w := serve(server, httptest.NewRequest(http.MethodGet, "/unexisting_page/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Status string `json:"status"`
		Code   string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "not_found", resp.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	server, _, _ := newTestServer(t, "")
	w := serve(server, httptest.NewRequest(http.MethodDelete, "/create/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "method_not_allowed")
}

func TestRoutesWithAndWithoutTrailingSlash(t *testing.T) {
	server, _, _ := newTestServer(t, "")

	for _, path := range []string{"/", "/groups", "/groups/"} {
		w := serve(server, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := serve(server, httptest.NewRequest(http.MethodGet, "/create/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))
}

func TestSignupLoginAndPost(t *testing.T) {
	server, postSrvc, _ := newTestServer(t, "")

	signup := `{"username":"auth","email":"auth@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup/", strings.NewReader(signup))
	req.Header.Set("Content-Type", "application/json")
	w := serve(server, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/auth/login/",
		strings.NewReader(`{"username":"auth","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(server, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(`{"text":"Первый пост"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w = serve(server, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/profile/auth/", w.Header().Get("Location"))

	page, err := postSrvc.ListIndex(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
}

func TestCorsPreflight(t *testing.T) {
	server, _, _ := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/create/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := serve(server, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestGzipResponses(t *testing.T) {
	server, postSrvc, userSrvc := newTestServer(t, "")

	u, err := userSrvc.CreateUser(t.Context(), user.CreateUserParams{
		Username: "auth",
		Email:    "auth@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err := postSrvc.CreatePost(t.Context(), post.CreatePostParams{
			AuthorUUID: u.UUID,
			Text:       strings.Repeat("Тестовый пост ", 20),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := serve(server, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	w = serve(server, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "Тестовый пост")
}

func TestServesLocalMedia(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "a.txt"), []byte("hello"), 0o644))

	server, _, _ := newTestServer(t, dir)

	w := serve(server, httptest.NewRequest(http.MethodGet, "/media/posts/a.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())

	w = serve(server, httptest.NewRequest(http.MethodGet, "/media/posts/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoMediaRouteWithoutDir(t *testing.T) {
	server, _, _ := newTestServer(t, "")
	w := serve(server, httptest.NewRequest(http.MethodGet, "/media/posts/a.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
