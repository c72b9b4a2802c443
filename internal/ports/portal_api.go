package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

// RegisterRequest carries the account-creation payload.
type RegisterRequest struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
}

// TicketRequest carries the ticket-creation payload.
type TicketRequest struct {
	Subject     string
	Category    domain.TicketCategory
	Description string
}

// PaymentReceipt is the gateway's acknowledgement of an initiated push payment.
type PaymentReceipt struct {
	CheckoutRequestID string
	CustomerMessage   string
}

// PortalAPI is the full remote surface the client consumes. Implementations
// attach the bearer token to every call except Login, Register and the two
// password-reset operations, and return domain.ErrUnauthorized on any
// authorization-rejected response.
type PortalAPI interface {
	Login(ctx context.Context, identifier, password string) (token string, err error)
	Register(ctx context.Context, req RegisterRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error

	Subscriptions(ctx context.Context) ([]domain.Subscription, error)
	Payments(ctx context.Context) ([]domain.Payment, error)
	CurrentUsage(ctx context.Context) (domain.UsageSnapshot, error)
	UsageHistory(ctx context.Context) ([]domain.UsageSample, error)
	Plans(ctx context.Context) ([]domain.Plan, error)
	Tickets(ctx context.Context) ([]domain.Ticket, error)

	InitiatePayment(ctx context.Context, phone string, amount decimal.Decimal) (PaymentReceipt, error)
	ChangePlan(ctx context.Context, packageID int64) error
	RenewSubscription(ctx context.Context) error
	CreateTicket(ctx context.Context, req TicketRequest) (domain.Ticket, error)
}
