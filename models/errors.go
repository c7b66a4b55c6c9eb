package models

import (
	"errors"
	"fmt"
)

// Error kinds. Compare with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrPostNotFound         = errors.New("blog post not found")
	ErrTagNotFound          = errors.New("tag not found")
	ErrTagAlreadyExists     = errors.New("tag already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrUpstream             = errors.New("auth service error")
	ErrUserDetailsRetrieval = errors.New("user details retrieval failed")
	ErrPostCreationFailed   = errors.New("blog post creation failed")
	ErrUserDeletionFailed   = errors.New("user deletion failed")
)

// Error is a domain error. Message is safe to show to clients; Err is the
// lower-level cause and is only meant for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Unwrap exposes the kind only, so callers cannot reach storage or transport errors.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Cause returns the wrapped lower-level error, if any.
func (e *Error) Cause() error {
	return e.Err
}

func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func ValidationError(message string) *Error {
	return NewError(ErrValidation, message, nil)
}

func PostNotFound(id uint) *Error {
	return NewError(ErrPostNotFound, fmt.Sprintf("Blogpost with id %d not found", id), nil)
}

func TagNotFound(name string) *Error {
	return NewError(ErrTagNotFound, fmt.Sprintf("Tag with name %s not found", name), nil)
}

func TagAlreadyExists(name string) *Error {
	return NewError(ErrTagAlreadyExists, fmt.Sprintf("Tag with name %s already exists", name), nil)
}
