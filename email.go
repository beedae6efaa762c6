package bluefox

import (
	"context"
	"net/http"
)

// Attachment is a file attached to an outgoing email. Content carries
// the file bytes encoded as standard base64.
type Attachment struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// SendTransactionalParams describes a one-off templated email to a
// single recipient.
type SendTransactionalParams struct {
	// To is the recipient address.
	To string
	// TransactionalID identifies the transactional email template.
	TransactionalID string
	// Data holds merge variables for the template.
	Data map[string]any
	// Attachments are optional file attachments.
	Attachments []Attachment
}

// SendTriggeredParams describes a templated email sent to one or more
// recipients via an automation identifier.
type SendTriggeredParams struct {
	// Emails are the recipient addresses.
	Emails []string
	// TriggeredID identifies the triggered email automation.
	TriggeredID string
	// Data holds merge variables for the template.
	Data map[string]any
	// Attachments are optional file attachments.
	Attachments []Attachment
}

// EmailResponse is the server's acknowledgement of a send request.
type EmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

// EmailService sends transactional and triggered email.
type EmailService struct {
	client *Client
}

// SendTransactional sends a one-off templated email. All validation
// runs before any network call.
func (s *EmailService) SendTransactional(ctx context.Context, params SendTransactionalParams) (*EmailResponse, error) {
	if err := requireFields(map[string]string{
		"to":              params.To,
		"transactionalId": params.TransactionalID,
	}); err != nil {
		return nil, err
	}
	if err := validateEmail(params.To); err != nil {
		return nil, err
	}
	if err := validateAttachments(params.Attachments); err != nil {
		return nil, err
	}

	body := map[string]any{
		"email":           params.To,
		"transactionalId": params.TransactionalID,
	}
	if len(params.Data) > 0 {
		body["data"] = params.Data
	}
	if len(params.Attachments) > 0 {
		body["attachments"] = params.Attachments
	}

	var resp EmailResponse
	if _, err := s.client.do(ctx, http.MethodPost, "/send-transactional", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendTriggered sends a templated email to every listed recipient via
// an automation. All validation runs before any network call.
func (s *EmailService) SendTriggered(ctx context.Context, params SendTriggeredParams) (*EmailResponse, error) {
	if err := requireFields(map[string]string{
		"triggeredId": params.TriggeredID,
	}); err != nil {
		return nil, err
	}
	if len(params.Emails) == 0 {
		return nil, newValidationError("at least one recipient email is required",
			map[string]any{"missing": []string{"emails"}})
	}
	for _, email := range params.Emails {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if err := validateAttachments(params.Attachments); err != nil {
		return nil, err
	}

	body := map[string]any{
		"emails":      params.Emails,
		"triggeredId": params.TriggeredID,
	}
	if len(params.Data) > 0 {
		body["data"] = params.Data
	}
	if len(params.Attachments) > 0 {
		body["attachments"] = params.Attachments
	}

	var resp EmailResponse
	if _, err := s.client.do(ctx, http.MethodPost, "/send-triggered", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
