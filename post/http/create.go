package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
)

type postFormResponse struct {
	Form   Form   `json:"form"`
	IsEdit bool   `json:"is_edit"`
	PostID *int64 `json:"post_id,omitempty"`
}

func (h *PostHttpHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := requireUser(w, r); !ok {
		return
	}

	groups, err := h.postSrvc.ListGroups(r.Context())
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, postFormResponse{
		Form: newPostForm(groups, h.postSrvc.Limits(), nil),
	})
}

func (h *PostHttpHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, userUUID, ok := requireUser(w, r)
	if !ok {
		return
	}
	log := logger.FromContext(r.Context())

	in, err := h.parsePostInput(w, r)
	if err != nil {
		h.handleInputError(w, r, err)
		return
	}

	created, err := h.postSrvc.CreatePost(r.Context(), post.CreatePostParams{
		AuthorUUID: userUUID,
		Text:       in.Text,
		GroupID:    in.GroupID,
		Image:      in.Image,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	h.indexCache.Flush()
	log.Info("post created", "post_id", created.ID, "username", created.Author.Username)

	w.Header().Set("Location", profilePath(created.Author.Username))
	httpjson.WriteCreatedJson(w, mapPost(created))
}

func (h *PostHttpHandler) handleInputError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadRequest) {
		logger.FromContext(r.Context()).Debug("malformed post form", "error", err)
		httpjson.WriteBadRequest(w)
		return
	}
	httpjson.HandleError(logger.FromContext(r.Context()), w, err)
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}
