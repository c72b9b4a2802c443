package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericFailureMessage is shown when the backend returns no decodable detail.
const GenericFailureMessage = "Request failed. Please try again."

// errorFields is the declared schema of recognized validation-error fields,
// checked in order. The first recognized field's first message wins.
var errorFields = []string{
	"detail",
	"error",
	"non_field_errors",
	"username",
	"email",
	"phone_number",
	"password",
	"token",
	"phone",
	"amount",
	"package_id",
	"subject",
	"category",
	"description",
}

// RequestError is a non-2xx, non-authorization response with its surfaced
// message already extracted from the structured error body.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func asRequestError(err error, target **RequestError) bool {
	return errors.As(err, target)
}

// UserMessage extracts the display string for a failed action: the decoded
// field message when the error is a RequestError, the generic fallback
// otherwise.
func UserMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return GenericFailureMessage
}

// decodeErrorMessage parses a DRF-style error body. Bodies are either
// {"detail": "..."} or per-field {"field": ["msg", ...]}.
func decodeErrorMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return GenericFailureMessage
	}

	for _, field := range errorFields {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		if message := firstMessage(raw); message != "" {
			return message
		}
	}

	return GenericFailureMessage
}

func firstMessage(raw json.RawMessage) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.TrimSpace(many[0])
	}

	return ""
}
