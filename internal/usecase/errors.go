package usecase

import "errors"

// Stable error codes surfaced to the HTTP layer. Handlers map codes to
// status, never the raw message from a backend call.
const (
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeMalformedRequest    = "MALFORMED_REQUEST"
	CodeUnsupportedMedia    = "UNSUPPORTED_MEDIA_TYPE"
	CodeUpstreamWriteFailed = "UPSTREAM_WRITE_FAILED"
	CodeServerMisconfigured = "SERVER_MISCONFIGURED"
)

// DomainError: the caller sent something we refuse. Safe to echo.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}

// TechnicalError: something on our side broke. The message is a generic
// client-facing string; the real cause only goes to the logs.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func AsTechnicalError(err error) (*TechnicalError, bool) {
	var te *TechnicalError
	ok := errors.As(err, &te)
	return te, ok
}

func errInvalidEmail() error {
	return &DomainError{Code: CodeInvalidEmail, Message: "Valid email is required"}
}
