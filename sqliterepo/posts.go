package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yatube/backend/post"
)

type postRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *postRepo {
	return &postRepo{db: db}
}

func (r *postRepo) InsertPost(ctx context.Context, p post.PostRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (text, pub_date, author_uuid, group_id, image_url)
		VALUES (?, ?, ?, ?, ?)`,
		p.Text, p.PubDate.UnixNano(), p.AuthorUUID.String(), p.GroupID, p.ImageURL)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return res.LastInsertId()
}

func (r *postRepo) UpdatePost(ctx context.Context, p post.PostRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts SET text = ?, group_id = ?, image_url = ? WHERE id = ?`,
		p.Text, p.GroupID, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("post %d does not exist", p.ID)
	}
	return nil
}

const postColumns = `id, text, pub_date, author_uuid, group_id, image_url`

func (r *postRepo) GetPost(ctx context.Context, id int64) (*post.PostRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepo) ListPosts(ctx context.Context, f post.PostFilter, limit, offset int) ([]post.PostRecord, error) {
	where, args := filterClause(f)
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts`+where+
			` ORDER BY pub_date DESC, id DESC LIMIT ? OFFSET ?`, args...)
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

func (r *postRepo) CountPosts(ctx context.Context, f post.PostFilter) (int, error) {
	where, args := filterClause(f)
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func filterClause(f post.PostFilter) (string, []any) {
	var conds []string
	var args []any
	if f.GroupID != nil {
		conds = append(conds, "group_id = ?")
		args = append(args, *f.GroupID)
	}
	if f.AuthorUUID != nil {
		conds = append(conds, "author_uuid = ?")
		args = append(args, f.AuthorUUID.String())
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*post.PostRecord, error) {
	var (
		p       post.PostRecord
		pubDate int64
		rawUUID string
		groupID sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Text, &pubDate, &rawUUID, &groupID, &p.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	p.PubDate = time.Unix(0, pubDate).UTC()
	p.AuthorUUID, err = uuid.Parse(rawUUID)
	if err != nil {
		return nil, fmt.Errorf("invalid author uuid %q: %w", rawUUID, err)
	}
	if groupID.Valid {
		id := groupID.Int64
		p.GroupID = &id
	}
	return &p, nil
}
