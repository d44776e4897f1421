package repository

import (
	"errors"
	"fmt"
)

// Kind classifies repository failures.
type Kind int

const (
	KindConnectionFailed Kind = iota + 1
	KindQueryFailed
	KindUnexpectedValue
	KindDecodeRejected
)

func (k Kind) String() string {
	switch k {
	case KindConnectionFailed:
		return "CONNECTION_FAILED"
	case KindQueryFailed:
		return "QUERY_FAILED"
	case KindUnexpectedValue:
		return "UNEXPECTED_VALUE"
	case KindDecodeRejected:
		return "DECODE_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Error is returned by every failing repository call. Driver errors are kept
// in Err and reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is; matching is done on Kind only.
var (
	ErrConnectionFailed = &Error{Kind: KindConnectionFailed, Message: "connection failed"}
	ErrQueryFailed      = &Error{Kind: KindQueryFailed, Message: "query failed"}
	ErrUnexpectedValue  = &Error{Kind: KindUnexpectedValue, Message: "unexpected value"}
	ErrDecodeRejected   = &Error{Kind: KindDecodeRejected, Message: "decode rejected"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind of a repository error, or 0 if err is not one.
func KindOf(err error) Kind {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return repoErr.Kind
	}
	return 0
}
