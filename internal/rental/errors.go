package rental

import (
	"errors"
	"fmt"
)

// errors used by handlers

type ErrCode string

const (
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrBookUnavailable  ErrCode = "BOOK_UNAVAILABLE"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrInvalidTime      ErrCode = "INVALID_TIME"
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts the error code, or "" for errors the engine did not classify.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
