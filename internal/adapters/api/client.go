package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nyumbanet/portal-cli/internal/domain"
	"github.com/nyumbanet/portal-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

// LoginFieldUsername and LoginFieldEmail cover the two credential field names
// the backend has shipped with. The authoritative name is configuration, not
// a guess from the latest deploy.
const (
	LoginFieldUsername = "username"
	LoginFieldEmail    = "email"
)

type Config struct {
	BaseURL    string
	LoginField string
	HTTPClient *http.Client
	Token      func() string
	Logger     zerolog.Logger
}

// Client talks to the portal backend. Every call except the four
// session-bootstrap operations carries Authorization: Bearer <token>.
type Client struct {
	httpClient *http.Client
	baseURL    string
	loginField string
	token      func() string
	logger     zerolog.Logger
}

var _ ports.PortalAPI = (*Client)(nil)

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	loginField := cfg.LoginField
	if loginField == "" {
		loginField = LoginFieldUsername
	}

	token := cfg.Token
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loginField: loginField,
		token:      token,
		logger:     cfg.Logger,
	}
}

func (c *Client) Login(ctx context.Context, identifier, password string) (string, error) {
	payload := map[string]string{
		c.loginField: identifier,
		"password":   password,
	}

	var result struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.post(ctx, "/api/auth/login/", payload, &result); err != nil {
		// The token endpoint answers 401 to a wrong password; that is a
		// credential rejection, not an expired session. No user-not-found vs
		// wrong-password distinction on purpose.
		if errors.Is(err, domain.ErrUnauthorized) {
			return "", domain.ErrInvalidCredentials
		}
		var reqErr *RequestError
		if asRequestError(err, &reqErr) && reqErr.StatusCode < 500 {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}
	if result.Access == "" {
		return "", fmt.Errorf("login: response missing access token")
	}

	return result.Access, nil
}

func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) error {
	payload := map[string]string{
		"username":     req.Username,
		"email":        req.Email,
		"phone_number": req.PhoneNumber,
		"password":     req.Password,
	}
	if err := c.post(ctx, "/api/auth/register/", payload, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	if err := c.post(ctx, "/api/auth/password_reset/", payload, nil); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	payload := map[string]string{"token": token, "password": password}
	if err := c.post(ctx, "/api/auth/password_reset/confirm/", payload, nil); err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}
	return nil
}

func (c *Client) Subscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var dtos []subscriptionDTO
	if err := c.get(ctx, "/api/billing/subscriptions/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch subscriptions: %w", err)
	}

	subs := make([]domain.Subscription, 0, len(dtos))
	for _, dto := range dtos {
		subs = append(subs, dto.toDomain())
	}
	return subs, nil
}

func (c *Client) Payments(ctx context.Context) ([]domain.Payment, error) {
	var dtos []paymentDTO
	if err := c.get(ctx, "/api/billing/payments/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(dtos))
	for _, dto := range dtos {
		payments = append(payments, dto.toDomain())
	}
	return payments, nil
}

func (c *Client) CurrentUsage(ctx context.Context) (domain.UsageSnapshot, error) {
	var dto usageDTO
	if err := c.get(ctx, "/api/billing/usage/current/", &dto); err != nil {
		return domain.UsageSnapshot{}, fmt.Errorf("fetch current usage: %w", err)
	}
	return dto.toDomain(), nil
}

func (c *Client) UsageHistory(ctx context.Context) ([]domain.UsageSample, error) {
	var dtos []usageSampleDTO
	if err := c.get(ctx, "/api/billing/usage/history/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch usage history: %w", err)
	}

	samples := make([]domain.UsageSample, 0, len(dtos))
	for _, dto := range dtos {
		samples = append(samples, dto.toDomain())
	}
	return samples, nil
}

func (c *Client) Plans(ctx context.Context) ([]domain.Plan, error) {
	var dtos []planDTO
	if err := c.get(ctx, "/api/plans/wifipackages/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch plans: %w", err)
	}

	plans := make([]domain.Plan, 0, len(dtos))
	for _, dto := range dtos {
		plans = append(plans, dto.toDomain())
	}
	return plans, nil
}

func (c *Client) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	var dtos []ticketDTO
	if err := c.get(ctx, "/api/support/tickets/", &dtos); err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(dtos))
	for _, dto := range dtos {
		tickets = append(tickets, dto.toDomain())
	}
	return tickets, nil
}

func (c *Client) InitiatePayment(ctx context.Context, phone string, amount decimal.Decimal) (ports.PaymentReceipt, error) {
	// The backend's DecimalField expects the two-decimal form; Decimal's own
	// String() trims trailing zeros.
	payload := map[string]string{
		"phone":  phone,
		"amount": amount.StringFixed(2),
	}

	var result stkPushDTO
	if err := c.post(ctx, "/api/mpesa/pay/", payload, &result); err != nil {
		return ports.PaymentReceipt{}, fmt.Errorf("initiate payment: %w", err)
	}
	if result.ResponseCode != "0" {
		message := result.CustomerMessage
		if message == "" {
			message = result.ResponseDescription
		}
		return ports.PaymentReceipt{}, fmt.Errorf("initiate payment: gateway rejected request: %s", message)
	}

	return ports.PaymentReceipt{
		CheckoutRequestID: result.CheckoutRequestID,
		CustomerMessage:   result.CustomerMessage,
	}, nil
}

func (c *Client) ChangePlan(ctx context.Context, packageID int64) error {
	payload := map[string]int64{"package_id": packageID}
	if err := c.post(ctx, "/api/billing/plan-actions/change_plan/", payload, nil); err != nil {
		return fmt.Errorf("change plan: %w", err)
	}
	return nil
}

func (c *Client) RenewSubscription(ctx context.Context) error {
	if err := c.post(ctx, "/api/billing/plan-actions/renew/", struct{}{}, nil); err != nil {
		return fmt.Errorf("renew subscription: %w", err)
	}
	return nil
}

func (c *Client) CreateTicket(ctx context.Context, req ports.TicketRequest) (domain.Ticket, error) {
	payload := map[string]string{
		"subject":     req.Subject,
		"category":    string(req.Category),
		"description": req.Description,
	}

	var dto ticketDTO
	if err := c.post(ctx, "/api/support/tickets/", payload, &dto); err != nil {
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return dto.toDomain(), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
		c.logger.Debug().Str("path", path).Int("status", response.StatusCode).Msg("authorization rejected")
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &RequestError{
			StatusCode: response.StatusCode,
			Message:    decodeErrorMessage(payload),
		}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
