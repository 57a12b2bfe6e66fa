package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func (s *UserSrvc) Login(ctx context.Context, username string, password string) (res *User, err error) {
	row, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		errMsg := fmt.Errorf("error looking up user: %w", err)
		return nil, newErrInternalSE().SetDebug(errMsg)
	}
	if row == nil {
		return nil, newErrUsernameOrPasswordIncorrect()
	}

	err = bcrypt.CompareHashAndPassword([]byte(row.BcryptPwd), []byte(password))
	if err != nil {
		return nil, newErrUsernameOrPasswordIncorrect()
	}

	return row.toUser(), nil
}
