// Package pgrepo implements the user, group and post repositories on
// PostgreSQL through a pgx connection pool.
package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/user"
)

type pgUserRepo struct {
	pool *pgxpool.Pool
}

func NewPgUserRepo(pool *pgxpool.Pool) *pgUserRepo {
	return &pgUserRepo{pool: pool}
}

func (r *pgUserRepo) InsertUser(ctx context.Context, u user.UserRecord) error {
	log := logger.FromContext(ctx)
	log.Debug("inserting user", "user_uuid", u.UUID, "username", u.Username)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (
			uuid, firstname, lastname, username, email, bcrypt_pwd, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.UUID, u.Firstname, u.Lastname, u.Username, u.Email, u.BcryptPwd, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *pgUserRepo) GetUserByUUID(ctx context.Context, id uuid.UUID) (*user.UserRecord, error) {
	return r.getUser(ctx, "uuid", id)
}

func (r *pgUserRepo) GetUserByUsername(ctx context.Context, username string) (*user.UserRecord, error) {
	return r.getUser(ctx, "username", username)
}

func (r *pgUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.UserRecord, error) {
	return r.getUser(ctx, "email", email)
}

func (r *pgUserRepo) getUser(ctx context.Context, column string, value any) (*user.UserRecord, error) {
	query := `
		SELECT uuid, firstname, lastname, username, email, bcrypt_pwd, created_at
		FROM users
		WHERE ` + column + ` = $1`

	var rec user.UserRecord
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&rec.UUID,
		&rec.Firstname,
		&rec.Lastname,
		&rec.Username,
		&rec.Email,
		&rec.BcryptPwd,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by %s: %w", column, err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
