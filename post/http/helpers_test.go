package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/post"
	posthttp "github.com/yatube/backend/post/http"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
	"github.com/yatube/backend/user/auth"
)

var testJwtKey = []byte("test")

type memImages struct{}

func (memImages) PutImage(ctx context.Context, key string, contentType string, content []byte) (string, error) {
	return "/media/" + key, nil
}

type testEnv struct {
	handler  http.Handler
	postSrvc *post.PostSrvc
	userSrvc *user.UserSrvc
}

func newTestEnv(t *testing.T, indexCacheTTL time.Duration) *testEnv {
	t.Helper()
	return newTestEnvWithPosts(t, indexCacheTTL, func(r post.PostRepo) post.PostRepo { return r })
}

// newTestEnvWithPosts lets a test wrap the post repo.
func newTestEnvWithPosts(t *testing.T, indexCacheTTL time.Duration, wrap func(post.PostRepo) post.PostRepo) *testEnv {
	t.Helper()
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userSrvc := user.NewUserService(sqliterepo.NewUserRepo(db))
	postSrvc := post.NewPostService(
		wrap(sqliterepo.NewPostRepo(db)),
		sqliterepo.NewGroupRepo(db),
		userSrvc,
		memImages{},
		nil,
		post.DefaultSrvcConfig(),
	)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(auth.GetJwtAuthMiddleware(testJwtKey))
	r.NotFound(httpjson.WriteNotFound)
	posthttp.NewPostHttpHandler(postSrvc, indexCacheTTL).RegisterRoutes(r)

	return &testEnv{handler: r, postSrvc: postSrvc, userSrvc: userSrvc}
}

func (e *testEnv) createUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := e.userSrvc.CreateUser(context.Background(), user.CreateUserParams{
		Username: username,
		Email:    uuid.NewString() + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createGroup(t *testing.T, title, slug string) *post.Group {
	t.Helper()
	g, err := e.postSrvc.CreateGroup(context.Background(), post.CreateGroupParams{
		Title:       title,
		Slug:        slug,
		Description: "Тестовое описание",
	})
	require.NoError(t, err)
	return g
}

func (e *testEnv) createPost(t *testing.T, author *user.User, text string, groupID *int64) *post.Post {
	t.Helper()
	p, err := e.postSrvc.CreatePost(context.Background(), post.CreatePostParams{
		AuthorUUID: author.UUID,
		Text:       text,
		GroupID:    groupID,
	})
	require.NoError(t, err)
	return p
}

// client sends requests as one user, or anonymously when u is nil.
type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (e *testEnv) client(t *testing.T, u *user.User) *client {
	t.Helper()
	c := &client{t: t, handler: e.handler}
	if u != nil {
		token, err := auth.GenerateJWT(u.Username, u.Email, u.UUID, testJwtKey)
		require.NoError(t, err)
		c.token = token
	}
	return c
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: c.token})
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postJson(path string, body map[string]any) *httptest.ResponseRecorder {
	c.t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) postMultipart(path string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "small.gif")
		require.NoError(c.t, err)
		_, err = fw.Write(image)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	env := decode(t, w)
	require.Equal(t, "success", env.Status, "body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

type pageData struct {
	PageObj posthttp.PageObj `json:"page_obj"`
}

func postIDs(page posthttp.PageObj) []int64 {
	ids := make([]int64, 0, len(page.ObjectList))
	for _, p := range page.ObjectList {
		ids = append(ids, p.ID)
	}
	return ids
}

// smallGif is a 2x1 gif.
var smallGif = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func userParams(username string, firstname, lastname *string) user.CreateUserParams {
	return user.CreateUserParams{
		Username:  username,
		Email:     username + "@example.com",
		Firstname: firstname,
		Lastname:  lastname,
		Password:  "password123",
	}
}
