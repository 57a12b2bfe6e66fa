package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"github.com/yatube/backend/post"
	"golang.org/x/sync/singleflight"
)

const DefaultIndexCacheTTL = 20 * time.Second

type PostHttpHandler struct {
	postSrvc *post.PostSrvc

	// index pages are cached and the whole cache is dropped on every write
	indexCache    *cache.Cache
	indexCacheTTL time.Duration
	sfGroup       singleflight.Group

	maxUploadBytes int64
}

// NewPostHttpHandler caches index pages for indexCacheTTL. A zero ttl
// disables the cache.
func NewPostHttpHandler(postSrvc *post.PostSrvc, indexCacheTTL time.Duration) *PostHttpHandler {
	return &PostHttpHandler{
		postSrvc:       postSrvc,
		indexCache:     cache.New(indexCacheTTL, time.Minute),
		indexCacheTTL:  indexCacheTTL,
		maxUploadBytes: 10 << 20,
	}
}

// RegisterRoutes expects the jwt middleware to already be installed on r.
// Trailing slashes are expected to be stripped before routing.
func (h *PostHttpHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/group/{slug}", h.GroupList)
	r.Get("/profile/{username}", h.Profile)
	r.Get("/posts/{post_id}", h.PostDetail)
	r.Get("/create", h.CreateForm)
	r.Post("/create", h.Create)
	r.Get("/posts/{post_id}/edit", h.EditForm)
	r.Post("/posts/{post_id}/edit", h.Edit)
	r.Get("/groups", h.ListGroups)
}
