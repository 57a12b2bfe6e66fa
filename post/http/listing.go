package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
)

type indexResponse struct {
	PageObj PageObj `json:"page_obj"`
}

func indexCacheKey(page int) string {
	return fmt.Sprintf("index:%d", page)
}

// Index lists all posts, newest first.
func (h *PostHttpHandler) Index(w http.ResponseWriter, r *http.Request) {
	pageNum := post.ParsePageNumber(r.URL.Query().Get("page"))

	if h.indexCacheTTL > 0 {
		if cached, found := h.indexCache.Get(indexCacheKey(pageNum)); found {
			if resp, ok := cached.(*indexResponse); ok {
				httpjson.WriteSuccessJson(w, resp)
				return
			}
		}
	}

	page, err := h.postSrvc.ListIndex(r.Context(), pageNum)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	resp := &indexResponse{PageObj: mapPage(page)}
	if h.indexCacheTTL > 0 {
		// keyed by the resolved page so out of range numbers add no entries
		h.indexCache.Set(indexCacheKey(page.Number), resp, cache.DefaultExpiration)
	}
	httpjson.WriteSuccessJson(w, resp)
}

func (h *PostHttpHandler) GroupList(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pageNum := post.ParsePageNumber(r.URL.Query().Get("page"))

	group, page, err := h.postSrvc.ListGroupPosts(r.Context(), slug, pageNum)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	type groupListResponse struct {
		Group   *Group  `json:"group"`
		PageObj PageObj `json:"page_obj"`
	}
	httpjson.WriteSuccessJson(w, groupListResponse{
		Group:   mapGroup(group),
		PageObj: mapPage(page),
	})
}

func (h *PostHttpHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	pageNum := post.ParsePageNumber(r.URL.Query().Get("page"))

	author, page, err := h.postSrvc.ListProfilePosts(r.Context(), username, pageNum)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	type profileResponse struct {
		Author     Author  `json:"author"`
		PageObj    PageObj `json:"page_obj"`
		PostsCount int     `json:"posts_count"`
	}
	httpjson.WriteSuccessJson(w, profileResponse{
		Author:     mapAuthor(*author),
		PageObj:    mapPage(page),
		PostsCount: page.Count,
	})
}

func (h *PostHttpHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.postSrvc.ListGroups(r.Context())
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	res := make([]Group, 0, len(groups))
	for i := range groups {
		res = append(res, *mapGroup(&groups[i]))
	}
	httpjson.WriteSuccessJson(w, res)
}
