package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a pipeline failure. Every core failure is terminal for the
// current request; the HTTP layer maps each kind to a status code here and
// nowhere else.
type Kind string

const (
	KindUnsupportedFormat      Kind = "unsupported_format"
	KindCorruptDocument        Kind = "corrupt_document"
	KindValidationFailed       Kind = "validation_failed"
	KindScoringResponseInvalid Kind = "scoring_response_invalid"
	KindScoringUnavailable     Kind = "scoring_unavailable"
	KindNotFound               Kind = "not_found"
	KindInternal               Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindUnsupportedFormat, KindValidationFailed:
		return fiber.StatusBadRequest
	case KindCorruptDocument:
		return fiber.StatusUnprocessableEntity
	case KindNotFound:
		return fiber.StatusNotFound
	case KindScoringResponseInvalid:
		return fiber.StatusBadGateway
	case KindScoringUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
