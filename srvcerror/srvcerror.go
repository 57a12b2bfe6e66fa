package srvcerror

import "net/http"

type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	httpStatus int    // optional, for HTTP responses
	field      string // optional, form field the error belongs to
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) HttpStatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

func (e *Error) SetHttpStatusCode(code int) *Error {
	e.httpStatus = code
	return e
}

// Field names the input field the error should be displayed next to.
func (e *Error) Field() string {
	return e.field
}

func (e *Error) SetField(field string) *Error {
	e.field = field
	return e
}

// Is reports whether target is a service error with the same error code,
// so that errors.Is(err, pkg.ErrSomething) works on freshly built errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.errorCode == e.errorCode
}

// Unwrap exposes the debug cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.dbgInfoErr
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

const ErrCodeInternalServerError = "internal_server_error"

func ErrInternalSE() *Error {
	return New(
		ErrCodeInternalServerError,
		"внутренняя ошибка сервера",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
