package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (s *PostSrvc) GetPost(ctx context.Context, id int64) (res *Post, err error) {
	ctx, span := startSpan(ctx, "post.GetPost")
	defer func() { endSpan(span, err) }()

	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, *rec, map[string]Author{}, map[int64]*Group{})
}

// ListIndex lists all posts, newest first.
func (s *PostSrvc) ListIndex(ctx context.Context, page int) (res *Page, err error) {
	ctx, span := startSpan(ctx, "post.ListIndex")
	defer func() { endSpan(span, err) }()

	return s.listPage(ctx, PostFilter{}, page)
}

func (s *PostSrvc) ListGroupPosts(ctx context.Context, slug string, page int) (g *Group, res *Page, err error) {
	ctx, span := startSpan(ctx, "post.ListGroupPosts")
	defer func() { endSpan(span, err) }()

	g, err = s.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	res, err = s.listPage(ctx, PostFilter{GroupID: &g.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return g, res, nil
}

// ListProfilePosts lists the posts of username. Page.Count is the
// author's total number of posts.
func (s *PostSrvc) ListProfilePosts(ctx context.Context, username string, page int) (a *Author, res *Page, err error) {
	ctx, span := startSpan(ctx, "post.ListProfilePosts")
	defer func() { endSpan(span, err) }()

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	author := authorFromUser(u)

	res, err = s.listPage(ctx, PostFilter{AuthorUUID: &author.UUID}, page)
	if err != nil {
		return nil, nil, err
	}
	return &author, res, nil
}

func (s *PostSrvc) CountAuthorPosts(ctx context.Context, authorUUID uuid.UUID) (int, error) {
	count, err := s.posts.CountPosts(ctx, PostFilter{AuthorUUID: &authorUUID})
	if err != nil {
		return 0, newErrInternalSE().SetDebug(
			fmt.Errorf("failed to count posts of %s: %w", authorUUID, err))
	}
	return count, nil
}
