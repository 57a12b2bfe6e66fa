package post

import (
	"context"
	"fmt"

	"github.com/yatube/backend/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/yatube/backend/post")

type PostSrvc struct {
	posts  PostRepo
	groups GroupRepo
	users  UserGetter

	images ImageStore     // optional
	events EventPublisher // optional

	limits        Limits
	pageSize      int
	maxImageWidth uint
}

type SrvcConfig struct {
	Limits        Limits
	PageSize      int
	MaxImageWidth uint
}

func DefaultSrvcConfig() SrvcConfig {
	return SrvcConfig{
		Limits:        DefaultLimits(),
		PageSize:      DefaultPageSize,
		MaxImageWidth: DefaultMaxImageWidth,
	}
}

// NewPostService wires the post service. images and events may be nil:
// uploads are then rejected and no events are published.
func NewPostService(
	posts PostRepo,
	groups GroupRepo,
	users UserGetter,
	images ImageStore,
	events EventPublisher,
	cfg SrvcConfig,
) *PostSrvc {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	return &PostSrvc{
		posts:         posts,
		groups:        groups,
		users:         users,
		images:        images,
		events:        events,
		limits:        cfg.Limits,
		pageSize:      cfg.PageSize,
		maxImageWidth: cfg.MaxImageWidth,
	}
}

func (s *PostSrvc) Limits() Limits {
	return s.limits
}

func (s *PostSrvc) PageSize() int {
	return s.pageSize
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// resolve turns a stored row into a post with its author and group.
// authors and groups cache lookups within one listing.
func (s *PostSrvc) resolve(
	ctx context.Context,
	rec PostRecord,
	authors map[string]Author,
	groups map[int64]*Group,
) (*Post, error) {
	author, ok := authors[rec.AuthorUUID.String()]
	if !ok {
		u, err := s.users.GetUserByUUID(ctx, rec.AuthorUUID)
		if err != nil {
			return nil, err
		}
		author = authorFromUser(u)
		authors[rec.AuthorUUID.String()] = author
	}

	var group *Group
	if rec.GroupID != nil {
		var ok bool
		group, ok = groups[*rec.GroupID]
		if !ok {
			g, err := s.groups.GetGroupByID(ctx, *rec.GroupID)
			if err != nil {
				return nil, newErrInternalSE().SetDebug(
					fmt.Errorf("failed to get group %d: %w", *rec.GroupID, err))
			}
			group = g
			groups[*rec.GroupID] = g
		}
	}

	return &Post{
		ID:       rec.ID,
		Text:     rec.Text,
		PubDate:  rec.PubDate,
		Author:   author,
		Group:    group,
		ImageURL: rec.ImageURL,
	}, nil
}

func (s *PostSrvc) listPage(ctx context.Context, filter PostFilter, requested int) (*Page, error) {
	count, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to count posts: %w", err))
	}

	number, numPages, offset := pageBounds(requested, count, s.pageSize)

	rows, err := s.posts.ListPosts(ctx, filter, s.pageSize, offset)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to list posts: %w", err))
	}

	authors := make(map[string]Author)
	groups := make(map[int64]*Group)
	posts := make([]*Post, 0, len(rows))
	for _, row := range rows {
		p, err := s.resolve(ctx, row, authors, groups)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return &Page{
		Posts:       posts,
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}

func (s *PostSrvc) publish(ctx context.Context, post *Post, edited bool) {
	if s.events == nil {
		return
	}
	var err error
	if edited {
		err = s.events.PublishPostEdited(ctx, post)
	} else {
		err = s.events.PublishPostCreated(ctx, post)
	}
	if err != nil {
		logger.FromContext(ctx).Warn("failed to publish post event",
			"post_id", post.ID, "edited", edited, "error", err)
	}
}
