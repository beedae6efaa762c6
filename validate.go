package bluefox

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// emailPattern is intentionally permissive: anything of the shape
// local@domain.tld without whitespace. The server performs the
// authoritative check.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// requireFields fails with a validation error naming every empty field.
// All missing fields are reported at once, sorted for stable output.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	return newValidationError(
		fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		map[string]any{"missing": missing},
	)
}

// validateEmail checks the address shape.
func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return newValidationError(
			fmt.Sprintf("invalid email address: %q", email),
			map[string]any{"email": email},
		)
	}
	return nil
}

// validateAttachments checks each attachment for a file name and valid
// base64 content. The first violation fails the whole batch.
func validateAttachments(attachments []Attachment) error {
	for i, a := range attachments {
		if a.FileName == "" {
			return newValidationError(
				fmt.Sprintf("attachment %d: fileName is required", i),
				map[string]any{"index": i},
			)
		}
		if a.Content == "" {
			return newValidationError(
				fmt.Sprintf("attachment %d (%s): content is required", i, a.FileName),
				map[string]any{"index": i, "fileName": a.FileName},
			)
		}
		if _, err := base64.StdEncoding.DecodeString(a.Content); err != nil {
			return newValidationError(
				fmt.Sprintf("attachment %d (%s): content is not valid base64", i, a.FileName),
				map[string]any{"index": i, "fileName": a.FileName},
			)
		}
	}
	return nil
}
