package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAlreadyReviewed    = errors.New("user already reviewed this service")
	ErrAlreadyReplied     = errors.New("comment already has a reply")
	ErrNoReply            = errors.New("comment has no reply")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyText          = errors.New("text must not be empty")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidOffering    = errors.New("offering needs a name and a non-negative price")
	ErrInvalidImage       = errors.New("unsupported image type")
)
