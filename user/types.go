package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID      uuid.UUID
	Username  string
	Email     string
	Firstname *string
	Lastname  *string
	CreatedAt time.Time
}

// FullName is what profile pages show instead of the username when set.
func (u *User) FullName() string {
	name := ""
	if u.Firstname != nil {
		name = *u.Firstname
	}
	if u.Lastname != nil && *u.Lastname != "" {
		if name != "" {
			name += " "
		}
		name += *u.Lastname
	}
	return name
}

// UserRecord is a users table row.
type UserRecord struct {
	UUID      uuid.UUID
	Firstname string
	Lastname  string
	Username  string
	Email     string
	BcryptPwd string
	CreatedAt time.Time
}

func (r *UserRecord) toUser() *User {
	return &User{
		UUID:      r.UUID,
		Username:  r.Username,
		Email:     r.Email,
		Firstname: &r.Firstname,
		Lastname:  &r.Lastname,
		CreatedAt: r.CreatedAt,
	}
}

// UserRepo persists users. Getters return (nil, nil) when no user matches.
type UserRepo interface {
	InsertUser(ctx context.Context, user UserRecord) error
	GetUserByUUID(ctx context.Context, id uuid.UUID) (*UserRecord, error)
	GetUserByUsername(ctx context.Context, username string) (*UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
}
