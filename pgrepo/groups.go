package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/backend/post"
)

type pgGroupRepo struct {
	pool *pgxpool.Pool
}

func NewPgGroupRepo(pool *pgxpool.Pool) *pgGroupRepo {
	return &pgGroupRepo{pool: pool}
}

func (r *pgGroupRepo) InsertGroup(ctx context.Context, g post.Group) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO post_groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		g.Title, g.Slug, g.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert group: %w", err)
	}
	return id, nil
}

func (r *pgGroupRepo) GetGroupByID(ctx context.Context, id int64) (*post.Group, error) {
	return r.getGroup(ctx, `SELECT id, title, slug, description FROM post_groups WHERE id = $1`, id)
}

func (r *pgGroupRepo) GetGroupBySlug(ctx context.Context, slug string) (*post.Group, error) {
	return r.getGroup(ctx, `SELECT id, title, slug, description FROM post_groups WHERE slug = $1`, slug)
}

func (r *pgGroupRepo) getGroup(ctx context.Context, query string, arg any) (*post.Group, error) {
	var g post.Group
	err := r.pool.QueryRow(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group: %w", err)
	}
	return &g, nil
}

func (r *pgGroupRepo) ListGroups(ctx context.Context) ([]post.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, slug, description
		FROM post_groups
		ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []post.Group{}
	for rows.Next() {
		var g post.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
