package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a class of API failure. The set is closed; every
// error produced by this package carries exactly one code.
type Code string

// Error codes.
const (
	CodeValidationError     Code = "VALIDATION_ERROR"
	CodeRateLimitError      Code = "RATE_LIMIT_ERROR"
	CodeAuthenticationError Code = "AUTHENTICATION_ERROR"
	CodeNetworkError        Code = "NETWORK_ERROR"
	CodeTimeoutError        Code = "TIMEOUT_ERROR"
	CodeServerError         Code = "SERVER_ERROR"
	CodeUnknownError        Code = "UNKNOWN_ERROR"
	CodeMethodNotAllowed    Code = "METHOD_NOT_ALLOWED"
	CodeDuplicateEmail      Code = "DUPLICATE_EMAIL"
	CodeInvalidDate         Code = "INVALID_DATE"
	CodeInsufficientCredits Code = "INSUFFICIENT_CREDITS"
	CodeMissingAWSConfig    Code = "MISSING_AWS_CONFIG"
	CodeMissingParameters   Code = "MISSING_PARAMETERS"
)

// Error represents a classified failure from the Bluefox API or the
// transport beneath it. It is constructed at the point of failure and
// never mutated afterwards.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("bluefox: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("bluefox: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error class is worth retrying. Only
// server errors and network errors qualify.
func (e *Error) Retryable() bool {
	return e.Code == CodeServerError || e.Code == CodeNetworkError
}

// newNetworkError wraps a transport-level failure.
func newNetworkError(err error) *Error {
	return &Error{
		Code:    CodeNetworkError,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

// newTimeoutError reports an aborted request.
func newTimeoutError(method, path string) *Error {
	return &Error{
		Code:    CodeTimeoutError,
		Status:  http.StatusRequestTimeout,
		Message: fmt.Sprintf("%s %s timed out", method, path),
	}
}

// classifyStatus maps an HTTP status code to an error code. This is the
// fallback applied when the error body carries no recognized structure.
func classifyStatus(status int) Code {
	switch {
	case status == http.StatusTooManyRequests:
		return CodeRateLimitError
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CodeAuthenticationError
	case status == http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case status == http.StatusBadRequest:
		return CodeValidationError
	case status >= 500:
		return CodeServerError
	default:
		return CodeUnknownError
	}
}

// refineCode layers a best-effort heuristic over the status-code
// mapping when the server returned a structured error name and message.
// The status-derived code is the fallback.
func refineCode(statusCode Code, name, message string) Code {
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "duplicate"):
		return CodeDuplicateEmail
	case strings.Contains(msg, "invalid date"), strings.Contains(msg, "pauseduntil"):
		return CodeInvalidDate
	case strings.Contains(msg, "aws"):
		return CodeMissingAWSConfig
	case strings.Contains(msg, "missing parameter"), strings.Contains(msg, "required parameter"):
		return CodeMissingParameters
	case strings.Contains(msg, "insufficient credits"), strings.Contains(msg, "not enough credits"):
		return CodeInsufficientCredits
	}

	switch name {
	case "NOT_ENOUGH_CREDITS", "INSUFFICIENT_CREDITS":
		return CodeInsufficientCredits
	case "MISSING_AWS_CONFIG":
		return CodeMissingAWSConfig
	case "MISSING_PARAMETERS":
		return CodeMissingParameters
	}

	return statusCode
}

// errorBody is the structured error shape the Bluefox API returns.
type errorBody struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// parseErrorResponse builds an *Error from a non-2xx response body.
// A body that fails to parse falls back to the HTTP status text.
func parseErrorResponse(status int, statusText string, body []byte) *Error {
	code := classifyStatus(status)
	message := statusText

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error.Message != "" || parsed.Error.Name != "":
			code = refineCode(code, parsed.Error.Name, parsed.Error.Message)
			if parsed.Error.Message != "" {
				message = parsed.Error.Message
			} else {
				message = parsed.Error.Name
			}
		case parsed.Message != "":
			message = parsed.Message
		}
	}

	return &Error{
		Code:    code,
		Status:  status,
		Message: message,
	}
}
