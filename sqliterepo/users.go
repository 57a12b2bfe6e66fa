package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yatube/backend/user"
)

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *userRepo {
	return &userRepo{db: db}
}

func (r *userRepo) InsertUser(ctx context.Context, u user.UserRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (uuid, firstname, lastname, username, email, bcrypt_pwd, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.UUID.String(), u.Firstname, u.Lastname, u.Username, u.Email, u.BcryptPwd,
		u.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetUserByUUID(ctx context.Context, id uuid.UUID) (*user.UserRecord, error) {
	return r.getUser(ctx, "uuid", id.String())
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*user.UserRecord, error) {
	return r.getUser(ctx, "username", username)
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*user.UserRecord, error) {
	return r.getUser(ctx, "email", email)
}

// column is never user input
func (r *userRepo) getUser(ctx context.Context, column string, value string) (*user.UserRecord, error) {
	query := `SELECT uuid, firstname, lastname, username, email, bcrypt_pwd, created_at
		FROM users WHERE ` + column + ` = ?`

	var (
		rec       user.UserRecord
		rawUUID   string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&rawUUID, &rec.Firstname, &rec.Lastname, &rec.Username,
		&rec.Email, &rec.BcryptPwd, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by %s: %w", column, err)
	}

	rec.UUID, err = uuid.Parse(rawUUID)
	if err != nil {
		return nil, fmt.Errorf("invalid user uuid %q: %w", rawUUID, err)
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	return &rec, nil
}
