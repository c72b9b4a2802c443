package domain

import "errors"

var (
	ErrUnauthorized       = errors.New("authorization rejected")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoSubscription     = errors.New("no active subscription")
	ErrInvalidPhone       = errors.New("invalid phone number")
)
