package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for HTTP mapping. Request-shape problems are
// rejected before any backend call; upstream failures map to a gateway
// status because the orchestrator itself did nothing wrong.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConfiguration
	KindUpstream
	KindNotFound
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

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Configuration(message string) error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the classification from anywhere in the wrap chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUpstream:
		return fiber.StatusBadGateway
	case KindConfiguration:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
