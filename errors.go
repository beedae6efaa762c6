package bluefox

import (
	"errors"
	"fmt"

	"github.com/JamalLyons/bluefox-email/internal/api"
)

// Code identifies a class of SDK failure. The set is closed.
type Code = api.Code

// Error codes carried by *Error.
const (
	CodeValidationError     = api.CodeValidationError
	CodeRateLimitError      = api.CodeRateLimitError
	CodeAuthenticationError = api.CodeAuthenticationError
	CodeNetworkError        = api.CodeNetworkError
	CodeTimeoutError        = api.CodeTimeoutError
	CodeServerError         = api.CodeServerError
	CodeUnknownError        = api.CodeUnknownError
	CodeMethodNotAllowed    = api.CodeMethodNotAllowed
	CodeDuplicateEmail      = api.CodeDuplicateEmail
	CodeInvalidDate         = api.CodeInvalidDate
	CodeInsufficientCredits = api.CodeInsufficientCredits
	CodeMissingAWSConfig    = api.CodeMissingAWSConfig
	CodeMissingParameters   = api.CodeMissingParameters
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrValidation matches any input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnauthorized is returned when the API key is invalid or lacks
	// permission.
	ErrUnauthorized = errors.New("invalid or unauthorized API key")

	// ErrDuplicateEmail is returned when a subscriber email already
	// exists in the list.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInsufficientCredits is returned when the account cannot send
	// more email.
	ErrInsufficientCredits = errors.New("insufficient sending credits")

	// ErrTimeout is returned when a request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrInvalidWebhookKey is returned when an inbound webhook carries
	// a bearer token that matches no configured key.
	ErrInvalidWebhookKey = errors.New("invalid webhook key")
)

// Error is the classified error returned by every SDK operation.
type Error struct {
	// Code is the stable classification from the closed taxonomy.
	Code Code
	// Status is the HTTP status, or 0 for failures before any exchange.
	Status int
	// Message is a human-readable description.
	Message string
	// Details carries optional structured context, such as the missing
	// field names of a validation failure or the reset time of a rate
	// limit.
	Details map[string]any
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("bluefox: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("bluefox: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeValidationError, CodeInvalidDate, CodeMissingParameters:
		return target == ErrValidation
	case CodeRateLimitError:
		return target == ErrRateLimited
	case CodeAuthenticationError:
		return target == ErrUnauthorized
	case CodeDuplicateEmail:
		return target == ErrDuplicateEmail
	case CodeInsufficientCredits:
		return target == ErrInsufficientCredits
	case CodeTimeoutError:
		return target == ErrTimeout
	}
	return false
}

// newValidationError builds a validation failure raised before any
// network call.
func newValidationError(message string, details map[string]any) *Error {
	return &Error{
		Code:    CodeValidationError,
		Status:  400,
		Message: message,
		Details: details,
	}
}

// wrapError converts internal API errors to public errors so that
// errors.Is() checks work with the package sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &Error{
			Code:    apiErr.Code,
			Status:  apiErr.Status,
			Message: apiErr.Message,
			Details: apiErr.Details,
			Err:     apiErr.Err,
		}
	}

	return err
}
