package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error returned by a service wraps exactly one of them.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("not found")
)

// Error is a service error with a client-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func invalidf(format string, args ...any) error {
	return newError(ErrInvalidInput, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidEmail       = newError(ErrInvalidInput, "enter a valid email address")
	ErrMissingSecret      = newError(ErrInvalidInput, "conformation_code is required")
	ErrAlreadyRegistered  = newError(ErrConflict, "a user with this email is already registered")
	ErrInvalidCredentials = newError(ErrAuthenticationFailed, "credentials don't match")
	ErrInvalidToken       = newError(ErrAuthenticationFailed, "invalid token")
	ErrExpiredToken       = newError(ErrAuthenticationFailed, "token has expired")
	ErrUserInactive       = newError(ErrAuthenticationFailed, "user is inactive")

	ErrUserNotFound     = newError(ErrNotFound, "user not found")
	ErrUsernameInUse    = newError(ErrConflict, "a user with that username already exists")
	ErrEmailInUse       = newError(ErrConflict, "a user with that email already exists")
	ErrUserExists       = newError(ErrConflict, "a user with that username or email already exists")
	ErrCategoryNotFound = newError(ErrNotFound, "category not found")
	ErrCategoryExists   = newError(ErrConflict, "category with this slug already exists")
	ErrGenreNotFound    = newError(ErrNotFound, "genre not found")
	ErrGenreExists      = newError(ErrConflict, "genre with this slug already exists")
	ErrTitleNotFound    = newError(ErrNotFound, "title not found")
	ErrReviewNotFound   = newError(ErrNotFound, "review not found")
	ErrDuplicateReview  = newError(ErrConflict, "you have already reviewed this title")
	ErrCommentNotFound  = newError(ErrNotFound, "comment not found")
)

// translate maps storage errors onto the given domain errors.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	}
	return err
}
