package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type UserSrvc struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

func (s *UserSrvc) GetUserByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.repo.GetUserByUUID(ctx, id)
	if err != nil {
		errMsg := fmt.Errorf("failed to get user %s: %w", id, err)
		return nil, newErrInternalSE().SetDebug(errMsg)
	}
	if row == nil {
		return nil, newErrUserNotFound()
	}
	return row.toUser(), nil
}

func (s *UserSrvc) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		errMsg := fmt.Errorf("failed to get user %q: %w", username, err)
		return nil, newErrInternalSE().SetDebug(errMsg)
	}
	if row == nil {
		return nil, newErrUserNotFound()
	}
	return row.toUser(), nil
}
