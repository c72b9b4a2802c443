package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "detail string",
			body: `{"detail": "Not found."}`,
			want: "Not found.",
		},
		{
			name: "field message list",
			body: `{"username": ["A user with that username already exists."]}`,
			want: "A user with that username already exists.",
		},
		{
			name: "detail wins over field errors",
			body: `{"detail": "Bad request.", "email": ["Enter a valid email address."]}`,
			want: "Bad request.",
		},
		{
			name: "non field errors",
			body: `{"non_field_errors": ["Unable to process request."]}`,
			want: "Unable to process request.",
		},
		{
			name: "unrecognized fields fall back",
			body: `{"unexpected_key": ["whatever"]}`,
			want: GenericFailureMessage,
		},
		{
			name: "not json",
			body: `<html>502 Bad Gateway</html>`,
			want: GenericFailureMessage,
		},
		{
			name: "empty body",
			body: ``,
			want: GenericFailureMessage,
		},
		{
			name: "recognized field with empty list",
			body: `{"password": []}`,
			want: GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, decodeErrorMessage([]byte(tt.body)))
		})
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	reqErr := &RequestError{StatusCode: 400, Message: "Enter a valid email address."}
	assert.Equal(t, "Enter a valid email address.", UserMessage(reqErr))
	assert.Equal(t, "Enter a valid email address.", UserMessage(fmt.Errorf("register: %w", reqErr)))

	assert.Equal(t, GenericFailureMessage, UserMessage(errors.New("connection refused")))
	assert.Equal(t, GenericFailureMessage, UserMessage(&RequestError{StatusCode: 500}))
}
