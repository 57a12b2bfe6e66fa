package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yatube/backend/post"
)

type groupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *groupRepo {
	return &groupRepo{db: db}
}

func (r *groupRepo) InsertGroup(ctx context.Context, g post.Group) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO post_groups (title, slug, description) VALUES (?, ?, ?)`,
		g.Title, g.Slug, g.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert group: %w", err)
	}
	return res.LastInsertId()
}

func (r *groupRepo) GetGroupByID(ctx context.Context, id int64) (*post.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, description FROM post_groups WHERE id = ?`, id)
	return scanGroup(row)
}

func (r *groupRepo) GetGroupBySlug(ctx context.Context, slug string) (*post.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, description FROM post_groups WHERE slug = ?`, slug)
	return scanGroup(row)
}

func (r *groupRepo) ListGroups(ctx context.Context) ([]post.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, slug, description FROM post_groups ORDER BY title, id`)
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

func scanGroup(row *sql.Row) (*post.Group, error) {
	var g post.Group
	err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	return &g, nil
}
