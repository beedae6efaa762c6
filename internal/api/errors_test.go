package api

import (
	"errors"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{429, CodeRateLimitError},
		{401, CodeAuthenticationError},
		{403, CodeAuthenticationError},
		{405, CodeMethodNotAllowed},
		{400, CodeValidationError},
		{500, CodeServerError},
		{502, CodeServerError},
		{503, CodeServerError},
		{404, CodeUnknownError},
		{418, CodeUnknownError},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.status); got != tt.want {
			t.Errorf("classifyStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestRefineCode(t *testing.T) {
	tests := []struct {
		name     string
		fallback Code
		errName  string
		message  string
		want     Code
	}{
		{"duplicate email", CodeValidationError, "VALIDATION_ERROR", "Email already exists", CodeDuplicateEmail},
		{"duplicate keyword", CodeValidationError, "", "duplicate subscriber", CodeDuplicateEmail},
		{"invalid date", CodeValidationError, "", "invalid date for pausedUntil", CodeInvalidDate},
		{"aws config", CodeServerError, "", "AWS configuration missing", CodeMissingAWSConfig},
		{"missing params", CodeValidationError, "", "missing parameters: email", CodeMissingParameters},
		{"credits by message", CodeValidationError, "", "insufficient credits", CodeInsufficientCredits},
		{"credits by name", CodeValidationError, "NOT_ENOUGH_CREDITS", "cannot send", CodeInsufficientCredits},
		{"fallback wins", CodeServerError, "SOMETHING_ELSE", "internal failure", CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refineCode(tt.fallback, tt.errName, tt.message); got != tt.want {
				t.Errorf("refineCode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrorResponse_StructuredBody(t *testing.T) {
	body := []byte(`{"error":{"name":"VALIDATION_ERROR","message":"Email already exists"}}`)
	apiErr := parseErrorResponse(400, "Bad Request", body)

	if apiErr.Code != CodeDuplicateEmail {
		t.Errorf("Code = %s, want %s", apiErr.Code, CodeDuplicateEmail)
	}
	if apiErr.Status != 400 {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Email already exists" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestParseErrorResponse_FlatMessage(t *testing.T) {
	apiErr := parseErrorResponse(500, "Internal Server Error", []byte(`{"message":"boom"}`))

	if apiErr.Code != CodeServerError {
		t.Errorf("Code = %s, want %s", apiErr.Code, CodeServerError)
	}
	if apiErr.Message != "boom" {
		t.Errorf("Message = %q, want boom", apiErr.Message)
	}
}

func TestParseErrorResponse_MalformedBodyFallsBackToStatusText(t *testing.T) {
	apiErr := parseErrorResponse(503, "Service Unavailable", []byte(`<html>nope</html>`))

	if apiErr.Code != CodeServerError {
		t.Errorf("Code = %s, want %s", apiErr.Code, CodeServerError)
	}
	if apiErr.Message != "Service Unavailable" {
		t.Errorf("Message = %q, want status text", apiErr.Message)
	}
}

func TestError_Retryable(t *testing.T) {
	retryable := []Code{CodeServerError, CodeNetworkError}
	for _, code := range retryable {
		if !(&Error{Code: code}).Retryable() {
			t.Errorf("%s should be retryable", code)
		}
	}

	terminal := []Code{
		CodeValidationError, CodeRateLimitError, CodeAuthenticationError,
		CodeTimeoutError, CodeUnknownError, CodeMethodNotAllowed,
		CodeDuplicateEmail, CodeInvalidDate, CodeInsufficientCredits,
		CodeMissingAWSConfig, CodeMissingParameters,
	}
	for _, code := range terminal {
		if (&Error{Code: code}).Retryable() {
			t.Errorf("%s should not be retryable", code)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	apiErr := newNetworkError(inner)

	if !errors.Is(apiErr, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
	if apiErr.Code != CodeNetworkError {
		t.Errorf("Code = %s, want %s", apiErr.Code, CodeNetworkError)
	}
}

func TestError_ErrorString(t *testing.T) {
	withStatus := &Error{Code: CodeServerError, Status: 500, Message: "boom"}
	if got := withStatus.Error(); got != "bluefox: SERVER_ERROR (500): boom" {
		t.Errorf("Error() = %q", got)
	}

	withoutStatus := &Error{Code: CodeNetworkError, Message: "refused"}
	if got := withoutStatus.Error(); got != "bluefox: NETWORK_ERROR: refused" {
		t.Errorf("Error() = %q", got)
	}
}
