package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreatePostParams struct {
	AuthorUUID uuid.UUID
	Text       string
	GroupID    *int64
	Image      []byte // optional
}

func (s *PostSrvc) CreatePost(ctx context.Context, p CreatePostParams) (res *Post, err error) {
	ctx, span := startSpan(ctx, "post.CreatePost")
	defer func() { endSpan(span, err) }()

	author, err := s.users.GetUserByUUID(ctx, p.AuthorUUID)
	if err != nil {
		return nil, err
	}

	text, group, err := s.cleanInput(ctx, p.Text, p.GroupID)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if len(p.Image) > 0 {
		imageURL, err = s.storeImage(ctx, p.Image)
		if err != nil {
			return nil, err
		}
	}

	rec := PostRecord{
		Text:       text,
		PubDate:    time.Now().UTC().Truncate(time.Microsecond),
		AuthorUUID: author.UUID,
		GroupID:    p.GroupID,
		ImageURL:   imageURL,
	}

	rec.ID, err = s.posts.InsertPost(ctx, rec)
	if err != nil {
		if imageURL != "" {
			logOrphanedImage(ctx, imageURL, err)
		}
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to insert post: %w", err))
	}

	res = &Post{
		ID:       rec.ID,
		Text:     rec.Text,
		PubDate:  rec.PubDate,
		Author:   authorFromUser(author),
		Group:    group,
		ImageURL: rec.ImageURL,
	}
	s.publish(ctx, res, false)

	return res, nil
}

// cleanInput applies the post form rules to the submitted fields.
func (s *PostSrvc) cleanInput(ctx context.Context, text string, groupID *int64) (string, *Group, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, newErrTextRequired()
	}

	text, err := ValidateText(text, s.limits)
	if err != nil {
		return "", nil, err
	}

	if groupID == nil {
		return text, nil, nil
	}

	group, err := s.groups.GetGroupByID(ctx, *groupID)
	if err != nil {
		return "", nil, newErrInternalSE().SetDebug(
			fmt.Errorf("failed to get group %d: %w", *groupID, err))
	}
	if group == nil {
		return "", nil, newErrInvalidGroupChoice()
	}

	return text, group, nil
}
