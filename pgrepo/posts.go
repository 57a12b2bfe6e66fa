package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
)

type pgPostRepo struct {
	pool *pgxpool.Pool
}

func NewPgPostRepo(pool *pgxpool.Pool) *pgPostRepo {
	return &pgPostRepo{pool: pool}
}

func (r *pgPostRepo) InsertPost(ctx context.Context, p post.PostRecord) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("inserting post", "author_uuid", p.AuthorUUID)

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (text, pub_date, author_uuid, group_id, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Text, p.PubDate, p.AuthorUUID, p.GroupID, p.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (r *pgPostRepo) UpdatePost(ctx context.Context, p post.PostRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET text = $1, group_id = $2, image_url = $3
		WHERE id = $4`,
		p.Text, p.GroupID, p.ImageURL, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %d does not exist", p.ID)
	}
	return nil
}

const postColumns = `id, text, pub_date, author_uuid, group_id, image_url`

func (r *pgPostRepo) GetPost(ctx context.Context, id int64) (*post.PostRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgPostRepo) ListPosts(ctx context.Context, f post.PostFilter, limit, offset int) ([]post.PostRecord, error) {
	where, args := filterClause(f)
	n := len(args)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY pub_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, n+1, n+2)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	res := []post.PostRecord{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *pgPostRepo) CountPosts(ctx context.Context, f post.PostFilter) (int, error) {
	where, args := filterClause(f)
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func filterClause(f post.PostFilter) (string, []any) {
	var conds []string
	var args []any
	if f.GroupID != nil {
		args = append(args, *f.GroupID)
		conds = append(conds, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if f.AuthorUUID != nil {
		args = append(args, *f.AuthorUUID)
		conds = append(conds, fmt.Sprintf("author_uuid = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanPost(row pgx.Row) (*post.PostRecord, error) {
	var p post.PostRecord
	err := row.Scan(&p.ID, &p.Text, &p.PubDate, &p.AuthorUUID, &p.GroupID, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	p.PubDate = p.PubDate.UTC()
	return &p, nil
}
