package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/backend/post"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
)

func TestIndexCacheDoesNotGrowWithRequestedPages(t *testing.T) {
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := user.NewUserService(sqliterepo.NewUserRepo(db))
	srvc := post.NewPostService(sqliterepo.NewPostRepo(db), sqliterepo.NewGroupRepo(db), users, nil, nil, post.DefaultSrvcConfig())
	author, err := users.CreateUser(context.Background(), user.CreateUserParams{
		Username: "auth",
		Email:    "auth@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	_, err = srvc.CreatePost(context.Background(), post.CreatePostParams{AuthorUUID: author.UUID, Text: "Пост"})
	require.NoError(t, err)

	h := NewPostHttpHandler(srvc, time.Minute)
	get := func(path string) {
		w := httptest.NewRecorder()
		h.Index(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
	}

	get("/")
	assert.Equal(t, 1, h.indexCache.ItemCount())

	for _, path := range []string{"/?page=999", "/?page=-5", "/?page=0", "/?page=abc", "/?page=123456789"} {
		get(path)
	}
	assert.Equal(t, 1, h.indexCache.ItemCount())
	_, found := h.indexCache.Get(indexCacheKey(1))
	assert.True(t, found)
}
