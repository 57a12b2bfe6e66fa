package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type EditPostParams struct {
	PostID     int64
	EditorUUID uuid.UUID
	Text       string
	GroupID    *int64
	Image      []byte // replaces the current image when set
}

// GetPostForEdit returns the post if editor is allowed to change it.
func (s *PostSrvc) GetPostForEdit(ctx context.Context, postID int64, editor uuid.UUID) (*Post, error) {
	rec, err := s.getRecord(ctx, postID)
	if err != nil {
		return nil, err
	}
	if rec.AuthorUUID != editor {
		return nil, newErrNotPostAuthor()
	}
	return s.resolve(ctx, *rec, map[string]Author{}, map[int64]*Group{})
}

func (s *PostSrvc) EditPost(ctx context.Context, p EditPostParams) (res *Post, err error) {
	ctx, span := startSpan(ctx, "post.EditPost")
	defer func() { endSpan(span, err) }()

	rec, err := s.getRecord(ctx, p.PostID)
	if err != nil {
		return nil, err
	}
	if rec.AuthorUUID != p.EditorUUID {
		return nil, newErrNotPostAuthor()
	}

	text, _, err := s.cleanInput(ctx, p.Text, p.GroupID)
	if err != nil {
		return nil, err
	}

	newImageURL := ""
	if len(p.Image) > 0 {
		newImageURL, err = s.storeImage(ctx, p.Image)
		if err != nil {
			return nil, err
		}
		rec.ImageURL = newImageURL
	}

	rec.Text = text
	rec.GroupID = p.GroupID

	err = s.posts.UpdatePost(ctx, *rec)
	if err != nil {
		if newImageURL != "" {
			logOrphanedImage(ctx, newImageURL, err)
		}
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to update post %d: %w", rec.ID, err))
	}

	res, err = s.resolve(ctx, *rec, map[string]Author{}, map[int64]*Group{})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, res, true)

	return res, nil
}

func (s *PostSrvc) getRecord(ctx context.Context, postID int64) (*PostRecord, error) {
	rec, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to get post %d: %w", postID, err))
	}
	if rec == nil {
		return nil, newErrPostNotFound()
	}
	return rec, nil
}
