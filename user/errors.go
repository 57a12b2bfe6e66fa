package user

import (
	"fmt"
	"net/http"

	"github.com/yatube/backend/srvcerror"
)

const ErrCodeUsernameTooShort = "username_too_short"

func newErrUsernameTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooShort,
		fmt.Sprintf("имя пользователя должно содержать не менее %d символов", minLength),
	).SetHttpStatusCode(http.StatusBadRequest).SetField("username")
}

const ErrCodeUsernameTooLong = "username_too_long"

func newErrUsernameTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooLong,
		"имя пользователя слишком длинное",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("username")
}

const ErrCodeUsernameInvalid = "username_invalid"

func newErrUsernameInvalid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameInvalid,
		"имя пользователя может содержать только буквы, цифры и символы @/./+/-/_",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("username")
}

const ErrCodeUsernameAlreadyExists = "username_exists"

func newErrUsernameExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameAlreadyExists,
		"пользователь с таким именем уже существует",
	).SetHttpStatusCode(http.StatusConflict).SetField("username")
}

const ErrCodeEmailAlreadyExists = "email_exists"

func newErrEmailExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailAlreadyExists,
		"пользователь с таким адресом электронной почты уже существует",
	).SetHttpStatusCode(http.StatusConflict).SetField("email")
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}

const ErrCodeEmailTooLong = "email_too_long"

func newErrEmailTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailTooLong,
		"адрес электронной почты слишком длинный",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("email")
}

const ErrCodeEmailEmpty = "email_empty"

func newErrEmailEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailEmpty,
		"адрес электронной почты обязателен",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("email")
}

const ErrCodeEmailInvalid = "email_invalid"

func newErrEmailInvalid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailInvalid,
		"введите правильный адрес электронной почты",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("email")
}

const ErrCodePasswordTooShort = "password_too_short"

func newErrPasswordTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooShort,
		fmt.Sprintf("пароль должен содержать не менее %d символов", minLength),
	).SetHttpStatusCode(http.StatusBadRequest).SetField("password")
}

const ErrCodePasswordTooLong = "password_too_long"

func newErrPasswordTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooLong,
		"пароль слишком длинный",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("password")
}

const ErrCodeFirstnameTooLong = "firstname_too_long"

func newErrFirstnameTooLong(maxLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeFirstnameTooLong,
		fmt.Sprintf("имя не может быть длиннее %d символов", maxLength),
	).SetHttpStatusCode(http.StatusBadRequest).SetField("firstname")
}

const ErrCodeLastnameTooLong = "lastname_too_long"

func newErrLastnameTooLong(maxLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeLastnameTooLong,
		fmt.Sprintf("фамилия не может быть длиннее %d символов", maxLength),
	).SetHttpStatusCode(http.StatusBadRequest).SetField("lastname")
}

const ErrCodeUserNotFound = "user_not_found"

// ErrUserNotFound matches any user_not_found error with errors.Is.
var ErrUserNotFound = newErrUserNotFound()

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"пользователь не найден",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeUsernameOrPasswordIncorrect = "username_or_password_incorrect"

func newErrUsernameOrPasswordIncorrect() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameOrPasswordIncorrect,
		"неверное имя пользователя или пароль",
	).SetHttpStatusCode(http.StatusUnauthorized)
}
