package http

import (
	"errors"
	"net/http"

	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
)

func (h *PostHttpHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		httpjson.WriteNotFound(w, r)
		return
	}
	_, userUUID, ok := requireUser(w, r)
	if !ok {
		return
	}
	log := logger.FromContext(r.Context())

	p, err := h.postSrvc.GetPostForEdit(r.Context(), postID, userUUID)
	if err != nil {
		h.handleEditError(w, r, postID, err)
		return
	}

	groups, err := h.postSrvc.ListGroups(r.Context())
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, postFormResponse{
		Form:   newPostForm(groups, h.postSrvc.Limits(), p),
		IsEdit: true,
		PostID: &p.ID,
	})
}

func (h *PostHttpHandler) Edit(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		httpjson.WriteNotFound(w, r)
		return
	}
	_, userUUID, ok := requireUser(w, r)
	if !ok {
		return
	}

	in, err := h.parsePostInput(w, r)
	if err != nil {
		h.handleInputError(w, r, err)
		return
	}

	edited, err := h.postSrvc.EditPost(r.Context(), post.EditPostParams{
		PostID:     postID,
		EditorUUID: userUUID,
		Text:       in.Text,
		GroupID:    in.GroupID,
		Image:      in.Image,
	})
	if err != nil {
		h.handleEditError(w, r, postID, err)
		return
	}

	h.indexCache.Flush()
	logger.FromContext(r.Context()).Info("post edited", "post_id", edited.ID)

	w.Header().Set("Location", postPath(edited.ID))
	httpjson.WriteSuccessJson(w, mapPost(edited))
}

// handleEditError sends someone else's post's visitors back to the post.
func (h *PostHttpHandler) handleEditError(w http.ResponseWriter, r *http.Request, postID int64, err error) {
	if errors.Is(err, post.ErrNotPostAuthor) {
		w.Header().Set("Location", postPath(postID))
	}
	httpjson.HandleError(logger.FromContext(r.Context()), w, err)
}
