package types

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidProviderID   = errors.New("invalid provider ID")
	ErrInvalidProviderName = errors.New("invalid provider name")
	ErrInvalidAPIHost      = errors.New("invalid API host")
	ErrInvalidMaxResults   = errors.New("invalid max results")
	ErrMissingAPIKey       = errors.New("missing API key")

	// Request errors
	ErrEmptyQuery = errors.New("empty search query")

	// Provider errors
	ErrProviderNotFound = errors.New("provider not found")
	ErrTransport        = errors.New("provider transport error")
	ErrParse            = errors.New("provider response parse error")
)

// Provider error codes
const (
	CodeRequestFailed = "REQUEST_FAILED"
	CodeParseFailed   = "PARSE_FAILED"
	CodePanic         = "PANIC"
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider ProviderID
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewTransportError builds a ProviderError for a failed round trip or a non-2xx status
func NewTransportError(provider ProviderID, code, message string, err error) *ProviderError {
	if err == nil {
		err = ErrTransport
	} else {
		err = fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return &ProviderError{Provider: provider, Code: code, Message: message, Err: err}
}

// NewParseError builds a ProviderError for an unreadable or malformed body
func NewParseError(provider ProviderID, message string, err error) *ProviderError {
	if err == nil {
		err = ErrParse
	} else {
		err = fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &ProviderError{Provider: provider, Code: CodeParseFailed, Message: message, Err: err}
}
