package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeInvalidMessage     = "invalid_message"
	ErrCodeUnknownDestination = "unknown_destination"
	ErrCodeUnknownTopic       = "unknown_topic"
	ErrCodeNotSubscribed      = "not_subscribed"
	ErrCodeRateLimited        = "rate_limited"
)

var (
	ErrUnknownTopic  = errors.New("unknown topic")
	ErrNotSubscribed = errors.New("not subscribed")
	ErrHubStopped    = errors.New("hub stopped")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// toCoreError maps sentinel errors onto wire codes.
func toCoreError(err error) *CoreError {
	switch {
	case errors.Is(err, ErrUnknownTopic):
		return coreError(ErrCodeUnknownTopic, err.Error())
	case errors.Is(err, ErrNotSubscribed):
		return coreError(ErrCodeNotSubscribed, err.Error())
	default:
		return coreError(ErrCodeBadRequest, err.Error())
	}
}
