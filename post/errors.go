package post

import (
	"net/http"

	"github.com/yatube/backend/srvcerror"
)

const ErrCodeTextTooLong = "text_too_long"

// ErrTextTooLong and the other exported errors match fresh errors of the
// same code with errors.Is.
var ErrTextTooLong = newErrTextTooLong()

func newErrTextTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTextTooLong,
		"Ваш текст очень большой, пожалуйста сократите его.",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("text")
}

const ErrCodeWordTooLong = "word_too_long"

var ErrWordTooLong = newErrWordTooLong()

func newErrWordTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeWordTooLong,
		"В вашем посте слишком длинное слово, пожалуйста замените.",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("text")
}

const ErrCodeTextRequired = "text_required"

var ErrTextRequired = newErrTextRequired()

func newErrTextRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTextRequired,
		"Обязательное поле.",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("text")
}

const ErrCodePostNotFound = "post_not_found"

var ErrPostNotFound = newErrPostNotFound()

func newErrPostNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePostNotFound,
		"запись не найдена",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeGroupNotFound = "group_not_found"

var ErrGroupNotFound = newErrGroupNotFound()

func newErrGroupNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeGroupNotFound,
		"группа не найдена",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidGroupChoice = "invalid_group_choice"

var ErrInvalidGroupChoice = newErrInvalidGroupChoice()

func newErrInvalidGroupChoice() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidGroupChoice,
		"Выберите корректный вариант. Вашего варианта нет среди допустимых значений.",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("group")
}

const ErrCodeNotPostAuthor = "not_post_author"

var ErrNotPostAuthor = newErrNotPostAuthor()

func newErrNotPostAuthor() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotPostAuthor,
		"редактировать запись может только её автор",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeInvalidImage = "invalid_image"

var ErrInvalidImage = newErrInvalidImage()

func newErrInvalidImage() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidImage,
		"Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением.",
	).SetHttpStatusCode(http.StatusBadRequest).SetField("image")
}

const ErrCodeGroupSlugExists = "group_slug_exists"

var ErrGroupSlugExists = newErrGroupSlugExists()

func newErrGroupSlugExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeGroupSlugExists,
		"группа с таким адресом уже существует",
	).SetHttpStatusCode(http.StatusConflict).SetField("slug")
}

const ErrCodeInvalidGroup = "invalid_group"

func newErrInvalidGroup(msg string, field string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidGroup,
		msg,
	).SetHttpStatusCode(http.StatusBadRequest).SetField(field)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
