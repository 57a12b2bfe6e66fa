package post

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yatube/backend/user"
)

type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
}

// Author is the part of a user that is shown next to a post.
type Author struct {
	UUID     uuid.UUID
	Username string
	FullName string
}

type Post struct {
	ID       int64
	Text     string
	PubDate  time.Time
	Author   Author
	Group    *Group
	ImageURL string
}

// PostRecord is a posts table row.
type PostRecord struct {
	ID         int64
	Text       string
	PubDate    time.Time
	AuthorUUID uuid.UUID
	GroupID    *int64
	ImageURL   string
}

// PostFilter narrows a listing. Nil fields do not filter.
type PostFilter struct {
	GroupID    *int64
	AuthorUUID *uuid.UUID
}

// PostRepo persists posts. Listings are ordered newest first.
// GetPost returns (nil, nil) when the post does not exist.
type PostRepo interface {
	InsertPost(ctx context.Context, post PostRecord) (int64, error)
	UpdatePost(ctx context.Context, post PostRecord) error
	GetPost(ctx context.Context, id int64) (*PostRecord, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]PostRecord, error)
	CountPosts(ctx context.Context, filter PostFilter) (int, error)
}

// GroupRepo persists groups. Getters return (nil, nil) when nothing matches.
type GroupRepo interface {
	InsertGroup(ctx context.Context, group Group) (int64, error)
	GetGroupByID(ctx context.Context, id int64) (*Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
}

// UserGetter is satisfied by *user.UserSrvc.
type UserGetter interface {
	GetUserByUUID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
}

// ImageStore keeps uploaded post images and returns their public URL.
type ImageStore interface {
	PutImage(ctx context.Context, key string, contentType string, content []byte) (string, error)
}

type EventPublisher interface {
	PublishPostCreated(ctx context.Context, post *Post) error
	PublishPostEdited(ctx context.Context, post *Post) error
}

func authorFromUser(u *user.User) Author {
	return Author{
		UUID:     u.UUID,
		Username: u.Username,
		FullName: u.FullName(),
	}
}
