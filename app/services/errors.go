package services

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a business-rule rejection. The HTTP boundary maps each kind
// to one status code.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a business-rule rejection carrying a client facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found rejection regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrBadRequest = &Error{Kind: KindBadRequest}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrForbidden  = &Error{Kind: KindForbidden}
)

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of a rejection, or 0 for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

const (
	MsgMediaNotFound       = "Media not found"
	MsgPostNotFound        = "Post not found"
	MsgPublicationNotFound = "Publication not found"
	MsgDuplicateMedia      = "You already have the same media"
	MsgMediaInUse          = "This media is already published or scheduled, you can't remove it"
	MsgPostInUse           = "This post is already published or scheduled, you can't remove it"
	MsgAlreadyPublished    = "Publication already published"
	MsgInvalidPublished    = "Invalid value for query parameter 'published'. It should be a boolean."
	MsgInvalidAfter        = "Invalid value for query parameter 'after'. It should be a valid date in ISO 8601 format."
)

// isCancellation reports errors that come from the caller giving up rather
// than from the store
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
