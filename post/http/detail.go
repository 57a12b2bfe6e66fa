package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
)

type postDetailResponse struct {
	Post       Post `json:"post"`
	PostsCount int  `json:"posts_count"`
}

// postIDParam returns false for ids that can not name a post; those
// routes do not exist.
func postIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "post_id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func (h *PostHttpHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		httpjson.WriteNotFound(w, r)
		return
	}

	// concurrent requests for the same post share one lookup, which must
	// outlive the request that started it
	ctx := context.WithoutCancel(r.Context())
	result, err, _ := h.sfGroup.Do(fmt.Sprintf("post_detail:%d", postID), func() (interface{}, error) {
		p, err := h.postSrvc.GetPost(ctx, postID)
		if err != nil {
			return nil, err
		}
		count, err := h.postSrvc.CountAuthorPosts(ctx, p.Author.UUID)
		if err != nil {
			return nil, err
		}
		return &postDetailResponse{Post: mapPost(p), PostsCount: count}, nil
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, result)
}
