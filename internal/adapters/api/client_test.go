package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbanet/portal-cli/internal/domain"
	"github.com/nyumbanet/portal-cli/internal/ports"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL: server.URL,
		Token:   func() string { return token },
		Logger:  zerolog.Nop(),
	})
}

func TestLoginSendsConfiguredField(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "jwt-abc", "refresh": "jwt-ref"})
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:    server.URL,
		LoginField: LoginFieldEmail,
		Logger:     zerolog.Nop(),
	})

	token, err := client.Login(context.Background(), "john@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, "john@example.com", gotBody["email"])
	assert.Equal(t, "hunter22", gotBody["password"])
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"detail": "No active account found with the given credentials",
		})
	})

	client := newTestClient(t, handler, "")

	_, err := client.Login(context.Background(), "john_doe", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticatedRequestCarriesBearerToken(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, "jwt-abc")

	subs, err := client.Subscriptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestRejectedAuthorizationMapsToUnauthorized(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired"})
		})

		client := newTestClient(t, handler, "jwt-stale")

		_, err := client.Payments(context.Background())
		require.ErrorIs(t, err, domain.ErrUnauthorized, "status %d", status)
	}
}

func TestSubscriptionsDecodesDecimalStrings(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"id": 5,
				"package": 2,
				"package_name": "Home 10Mbps",
				"speed": 10,
				"price": "2999.00",
				"start_date": "2026-08-01T00:00:00Z",
				"end_date": "2026-08-31T00:00:00Z",
				"is_active": true,
				"days_remaining": 11
			}
		]`))
	})

	client := newTestClient(t, handler, "jwt-abc")

	subs, err := client.Subscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)

	assert.Equal(t, "Home 10Mbps", subs[0].PackageName)
	assert.True(t, decimal.RequireFromString("2999.00").Equal(subs[0].Price))
	assert.Equal(t, 11, subs[0].DaysRemaining)
}

func TestUsageHistoryDecodesDateOnlyFields(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"date": "2026-08-18", "download_mb": "1024.5", "upload_mb": 80}
		]`))
	})

	client := newTestClient(t, handler, "jwt-abc")

	samples, err := client.UsageHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 1)

	assert.Equal(t, 2026, samples[0].Date.Year())
	assert.Equal(t, 18, samples[0].Date.Day())
	assert.InDelta(t, 1024.5, samples[0].DownloadMB, 0.001)
	assert.InDelta(t, 80.0, samples[0].UploadMB, 0.001)
}

func TestInitiatePaymentAcceptedByGateway(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/mpesa/pay/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"MerchantRequestID":   "mr-1",
			"CheckoutRequestID":   "ws_CO_123",
			"ResponseCode":        "0",
			"ResponseDescription": "Success. Request accepted for processing",
			"CustomerMessage":     "Check your phone to complete payment",
		})
	})

	client := newTestClient(t, handler, "jwt-abc")

	receipt, err := client.InitiatePayment(context.Background(), "254712345678", decimal.RequireFromString("2999.00"))
	require.NoError(t, err)

	assert.Equal(t, "ws_CO_123", receipt.CheckoutRequestID)
	assert.Equal(t, "254712345678", gotBody["phone"])
	assert.Equal(t, "2999.00", gotBody["amount"])
}

func TestInitiatePaymentGatewayRejection(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"ResponseCode":        "1032",
			"ResponseDescription": "Request cancelled by user",
		})
	})

	client := newTestClient(t, handler, "jwt-abc")

	_, err := client.InitiatePayment(context.Background(), "254712345678", decimal.New(100, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request cancelled by user")
}

func TestTicketsDecodeAdminResponseAndUpdates(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"id": 9,
				"subject": "No connection",
				"category": "INTERNET",
				"description": "Router lights are red",
				"priority": "HIGH",
				"status": "IN_PROGRESS",
				"created_at": "2026-08-19T07:30:00Z",
				"admin_response": null,
				"updates": [
					{"note": "Escalated to field team", "is_public": true, "created_at": "2026-08-19T09:00:00Z", "updated_by_username": "support"},
					{"note": "Mast battery swap pending", "is_public": false, "created_at": "2026-08-19T10:00:00Z", "updated_by_username": "noc"}
				]
			}
		]`))
	})

	client := newTestClient(t, handler, "jwt-abc")

	tickets, err := client.Tickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	ticket := tickets[0]
	assert.Empty(t, ticket.AdminResponse)
	assert.Equal(t, domain.TicketInProgress, ticket.Status)
	require.Len(t, ticket.Updates, 2)
	assert.Len(t, ticket.PublicUpdates(), 1)
}

func TestCreateTicketRoundTrip(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "BILLING", body["category"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       13,
			"subject":  body["subject"],
			"category": body["category"],
			"status":   "OPEN",
		})
	})

	client := newTestClient(t, handler, "jwt-abc")

	ticket, err := client.CreateTicket(context.Background(), ports.TicketRequest{
		Subject:     "Double charge",
		Category:    domain.CategoryBilling,
		Description: "Charged twice this month",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), ticket.ID)
	assert.True(t, ticket.Open())
}
