package apperror

import "errors"

type Code string

const (
	CodeValidation    Code = "validation"
	CodeConflict      Code = "conflict"
	CodeAuthorization Code = "authorization"
	CodeNotFound      Code = "not_found"
	CodeInternal      Code = "internal"
)

// Error membawa kode taksonomi plus (opsional) nama field untuk error
// validasi per-field. Pesan conflict sengaja menyertakan konteks NIK/mitra
// agar operator bisa menimbang sendiri; pesan authorization sengaja generik.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

func Conflict(field, message string) *Error {
	return &Error{Code: CodeConflict, Field: field, Message: message}
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

func GetField(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
