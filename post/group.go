package post

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

func (s *PostSrvc) ListGroups(ctx context.Context) ([]Group, error) {
	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to list groups: %w", err))
	}
	return groups, nil
}

func (s *PostSrvc) GetGroupBySlug(ctx context.Context, slug string) (*Group, error) {
	g, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to get group %q: %w", slug, err))
	}
	if g == nil {
		return nil, newErrGroupNotFound()
	}
	return g, nil
}

type CreateGroupParams struct {
	Title       string
	Slug        string
	Description string
}

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const maxGroupTitleLength = 200

func (s *PostSrvc) CreateGroup(ctx context.Context, p CreateGroupParams) (*Group, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, newErrInvalidGroup("Укажите название группы.", "title")
	}
	if utf8.RuneCountInString(title) > maxGroupTitleLength {
		return nil, newErrInvalidGroup(
			fmt.Sprintf("Название группы не может быть длиннее %d символов.", maxGroupTitleLength), "title")
	}
	if !slugRegexp.MatchString(p.Slug) {
		return nil, newErrInvalidGroup(
			"Адрес группы может содержать только латинские буквы, цифры, дефис и подчёркивание.", "slug")
	}

	existing, err := s.groups.GetGroupBySlug(ctx, p.Slug)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to look up slug: %w", err))
	}
	if existing != nil {
		return nil, newErrGroupSlugExists()
	}

	g := Group{
		Title:       title,
		Slug:        p.Slug,
		Description: p.Description,
	}
	g.ID, err = s.groups.InsertGroup(ctx, g)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to insert group: %w", err))
	}
	return &g, nil
}
