package portal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func TestDashboardWithoutPlan(t *testing.T) {
	t.Parallel()

	snapshot := application.Snapshot{
		Session: domain.Session{Token: "jwt-abc", Identifier: "john_doe"},
	}

	out := Dashboard(snapshot, RenderOptions{Now: time.Now()})
	assert.Contains(t, out, "No Plan")
	assert.Contains(t, out, "Top up to get connected")
	assert.Contains(t, out, "john_doe")
}

func TestDashboardWithPlan(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	snapshot := application.Snapshot{
		Session: domain.Session{Token: "jwt-abc", Identifier: "john_doe"},
		Subscription: &domain.Subscription{
			ID:            5,
			PackageID:     2,
			PackageName:   "Home 10Mbps",
			SpeedMbps:     10,
			Price:         decimal.RequireFromString("2999.00"),
			EndDate:       now.Add(11 * 24 * time.Hour),
			IsActive:      true,
			DaysRemaining: 11,
		},
		Usage: &domain.UsageSnapshot{DownloadMB: 2048, UploadMB: 512},
	}

	out := Dashboard(snapshot, RenderOptions{Now: now})
	assert.Contains(t, out, "Home 10Mbps")
	assert.Contains(t, out, "KES 2999.00")
	assert.Contains(t, out, "11 days left")
	assert.Contains(t, out, "2.0 GB")
}

func TestPlansMarksCurrent(t *testing.T) {
	t.Parallel()

	plans := []domain.Plan{
		{ID: 1, Name: "Home 5Mbps", Price: decimal.New(1499, 0), DurationDays: 30},
		{ID: 2, Name: "Home 10Mbps", Price: decimal.New(2999, 0), DurationDays: 30},
	}
	current := &domain.Subscription{PackageID: 2}

	out := Plans(plans, current)
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "(current)")
	assert.Contains(t, out, "unlimited")
}

func TestPlansEmpty(t *testing.T) {
	t.Parallel()

	out := Plans(nil, nil)
	assert.Contains(t, out, "No packages available.")
}

func TestTicketsNeverRenderInternalNotes(t *testing.T) {
	t.Parallel()

	tickets := []domain.Ticket{
		{
			ID:       9,
			Subject:  "No connection",
			Category: domain.CategoryInternet,
			Status:   domain.TicketInProgress,
			Updates: []domain.TicketUpdate{
				{Note: "Escalated to field team", Public: true, Author: "support"},
				{Note: "Customer owes two invoices", Public: false, Author: "billing"},
			},
		},
	}

	out := Tickets(tickets)
	assert.Contains(t, out, "Escalated to field team")
	assert.NotContains(t, out, "Customer owes two invoices")
}

func TestTicketsShowAdminResponse(t *testing.T) {
	t.Parallel()

	tickets := []domain.Ticket{
		{
			ID:            3,
			Subject:       "Slow speeds",
			Status:        domain.TicketResolved,
			AdminResponse: "Replaced the faulty port on the switch.",
		},
	}

	out := Tickets(tickets)
	assert.Contains(t, out, "Resolution:")
	assert.Contains(t, out, "Replaced the faulty port on the switch.")
}

func TestUsageHistoryScalesToPeak(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	samples := []domain.UsageSample{
		{Date: day, UsageSnapshot: domain.UsageSnapshot{DownloadMB: 100}},
		{Date: day.AddDate(0, 0, 1), UsageSnapshot: domain.UsageSnapshot{DownloadMB: 1000}},
	}

	out := UsageHistory(samples)
	assert.Contains(t, out, "18 Aug")
	assert.Contains(t, out, "19 Aug")
	assert.Contains(t, out, "100 MB")
	assert.Contains(t, out, "1000 MB")
}

func TestRenderCapBarBounds(t *testing.T) {
	t.Parallel()

	s := newStyles()

	full := renderCapBar(150, 10, s)
	assert.Contains(t, full, "==========")
	assert.NotContains(t, full, "-")

	empty := renderCapBar(-5, 10, s)
	assert.Contains(t, empty, "----------")
	assert.NotContains(t, empty, "=")
}
