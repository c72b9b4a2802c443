package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// ParsePaymentStatus normalizes the backend's mixed-case status strings.
// Unknown values pass through unchanged so they still render.
func ParsePaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return PaymentPending
	case "completed", "complete", "success":
		return PaymentCompleted
	case "failed", "cancelled":
		return PaymentFailed
	default:
		return PaymentStatus(raw)
	}
}

type Payment struct {
	ID            int64
	Amount        decimal.Decimal
	PhoneNumber   string
	ReceiptNumber string
	Status        PaymentStatus
	CreatedAt     time.Time
}
