package user

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserParams struct {
	Username  string
	Email     string
	Firstname *string
	Lastname  *string
	Password  string
}

func (s *UserSrvc) CreateUser(ctx context.Context, p CreateUserParams) (res *User, err error) {
	// Validate all fields
	if err := validateUsername(p.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(p.Password); err != nil {
		return nil, err
	}
	if p.Firstname != nil {
		if err := validateFirstname(*p.Firstname); err != nil {
			return nil, err
		}
	}
	if p.Lastname != nil {
		if err := validateLastname(*p.Lastname); err != nil {
			return nil, err
		}
	}

	// username must be unique
	existing, err := s.repo.GetUserByUsername(ctx, p.Username)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to look up username: %w", err))
	}
	if existing != nil {
		return nil, newErrUsernameExists()
	}

	// email must be unique
	existing, err = s.repo.GetUserByEmail(ctx, p.Email)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(fmt.Errorf("failed to look up email: %w", err))
	}
	if existing != nil {
		return nil, newErrEmailExists()
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword(
		[]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	firstname := ""
	if p.Firstname != nil {
		firstname = *p.Firstname
	}

	lastname := ""
	if p.Lastname != nil {
		lastname = *p.Lastname
	}

	row := UserRecord{
		UUID:      uuid.New(),
		Firstname: firstname,
		Lastname:  lastname,
		Username:  p.Username,
		Email:     p.Email,
		BcryptPwd: string(bcryptPwd),
		CreatedAt: time.Now().UTC(),
	}

	err = s.repo.InsertUser(ctx, row)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return row.toUser(), nil
}

// same character set as the usual web framework username rule: \w plus @.+-
var usernameRegexp = regexp.MustCompile(`^[\p{L}\p{N}_@.+\-]+$`)

// Validation functions
func validateUsername(username string) error {
	const minUsernameLength = 2
	const maxUsernameLength = 32
	length := utf8.RuneCountInString(username)
	if length < minUsernameLength {
		return newErrUsernameTooShort(minUsernameLength)
	}
	if length > maxUsernameLength {
		return newErrUsernameTooLong()
	}
	if !usernameRegexp.MatchString(username) {
		return newErrUsernameInvalid()
	}
	return nil
}

func validateEmail(email string) error {
	const maxEmailLength = 320
	if len(email) > maxEmailLength {
		return newErrEmailTooLong()
	}

	if len(email) == 0 {
		return newErrEmailEmpty()
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return newErrEmailInvalid()
	}

	return nil
}

func validatePassword(password string) error {
	const minPasswordLength = 8
	if utf8.RuneCountInString(password) < minPasswordLength {
		return newErrPasswordTooShort(minPasswordLength)
	}
	if len(password) > 1024 {
		return newErrPasswordTooLong()
	}
	return nil
}

func validateFirstname(firstname string) error {
	const maxFirstnameLength = 35
	if utf8.RuneCountInString(firstname) > maxFirstnameLength {
		return newErrFirstnameTooLong(maxFirstnameLength)
	}
	return nil
}

func validateLastname(lastname string) error {
	const maxLastnameLength = 35
	if utf8.RuneCountInString(lastname) > maxLastnameLength {
		return newErrLastnameTooLong(maxLastnameLength)
	}
	return nil
}
