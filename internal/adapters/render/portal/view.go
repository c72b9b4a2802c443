package portal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

// Dashboard renders the subscription card, the live usage line and the most
// recent activity for the one-shot status command and the dashboard view.
func Dashboard(snapshot application.Snapshot, opts RenderOptions) string {
	s := newStyles()

	lines := []string{
		s.title.Render("NyumbaNet Customer Portal"),
		s.header.Render(fmt.Sprintf("signed in as %s", snapshot.Session.Identifier)),
		s.section.Render(subscriptionCard(snapshot, opts, s)),
	}

	if snapshot.Usage != nil {
		lines = append(lines, s.section.Render(usageLines(snapshot, s)))
	}

	if len(snapshot.Payments) > 0 {
		recent := snapshot.Payments
		if len(recent) > 3 {
			recent = recent[:3]
		}
		lines = append(lines,
			s.section.Render(s.title.Render("Recent payments")),
			paymentRows(recent, s),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func subscriptionCard(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	if !snapshot.HasPlan() {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.warning.Render("No Plan"),
			s.empty.Render("You have no active plan. Top up to get connected."),
		)
	}

	sub := *snapshot.Subscription
	state := s.success.Render("Active")
	if !sub.IsActive {
		state = s.failure.Render("Inactive")
	}

	lines := []string{
		s.title.Render(fmt.Sprintf("Your plan: %s", sub.PackageName)),
		fmt.Sprintf("%s %s", s.label.Render("Speed:"), s.value.Render(fmt.Sprintf("%d Mbps", sub.SpeedMbps))),
		fmt.Sprintf("%s %s", s.label.Render("Price:"), s.value.Render("KES "+sub.Price.StringFixed(2))),
		fmt.Sprintf("%s %s", s.label.Render("Status:"), state),
	}

	if !sub.EndDate.IsZero() {
		expiry := fmt.Sprintf("%s (%d days left)", sub.EndDate.Format("02 Jan 2006"), sub.DaysLeft(opts.Now))
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("Expires:"), s.value.Render(expiry)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func usageLines(snapshot application.Snapshot, s styles) string {
	usage := *snapshot.Usage
	line := fmt.Sprintf("%s %s down / %s up",
		s.label.Render("Usage:"),
		s.value.Render(domain.FormatMB(usage.DownloadMB)),
		s.value.Render(domain.FormatMB(usage.UploadMB)),
	)

	var capMB int64
	if snapshot.HasPlan() {
		for _, plan := range snapshot.Plans {
			if plan.ID == snapshot.Subscription.PackageID {
				capMB = plan.DataCapMB
				break
			}
		}
	}
	if capMB <= 0 {
		return line
	}

	percent := usage.CapPercent(capMB)
	bar := renderCapBar(percent, 24, s)
	meta := s.meta.Render(fmt.Sprintf("%2.0f%% of %s cap", percent, domain.FormatMB(float64(capMB))))

	return lipgloss.JoinVertical(lipgloss.Left, line,
		lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", meta))
}

// Plans renders the offering list, marking the customer's current package.
func Plans(plans []domain.Plan, current *domain.Subscription) string {
	s := newStyles()

	lines := []string{s.title.Render("Available packages")}
	if len(plans) == 0 {
		lines = append(lines, s.empty.Render("No packages available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, plan := range plans {
		cap := "unlimited"
		if !plan.Unlimited() {
			cap = domain.FormatMB(float64(plan.DataCapMB))
		}
		row := fmt.Sprintf("%s %-14s KES %-9s %2d/%2d Mbps  %d days  %s",
			s.meta.Render(fmt.Sprintf("[%d]", plan.ID)),
			plan.Name,
			plan.Price.StringFixed(2),
			plan.MaxDownloadSpeed,
			plan.MaxUploadSpeed,
			plan.DurationDays,
			cap,
		)
		if current != nil && current.PackageID == plan.ID {
			row += " " + s.success.Render("(current)")
		}
		lines = append(lines, s.value.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Payments renders the full payment history, newest first as fetched.
func Payments(payments []domain.Payment) string {
	s := newStyles()

	lines := []string{s.title.Render("Payment history")}
	if len(payments) == 0 {
		lines = append(lines, s.empty.Render("No payments yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, paymentRows(payments, s))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func paymentRows(payments []domain.Payment, s styles) string {
	rows := make([]string, 0, len(payments))
	for _, payment := range payments {
		receipt := payment.ReceiptNumber
		if receipt == "" {
			receipt = "-"
		}
		rows = append(rows, fmt.Sprintf("%s  KES %-9s %-10s %s",
			s.meta.Render(payment.CreatedAt.Format("02 Jan 15:04")),
			payment.Amount.StringFixed(2),
			statusBadge(payment.Status, s),
			s.meta.Render(receipt),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func statusBadge(status domain.PaymentStatus, s styles) string {
	switch status {
	case domain.PaymentCompleted:
		return s.success.Render(string(status))
	case domain.PaymentPending:
		return s.warning.Render(string(status))
	case domain.PaymentFailed:
		return s.failure.Render(string(status))
	default:
		return s.value.Render(string(status))
	}
}

// Tickets renders the support ticket list. Internal-only update entries are
// dropped before anything reaches the terminal.
func Tickets(tickets []domain.Ticket) string {
	s := newStyles()

	lines := []string{s.title.Render("Support tickets")}
	if len(tickets) == 0 {
		lines = append(lines, s.empty.Render("No tickets. Press 'n' to open one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, ticket := range tickets {
		lines = append(lines, s.section.Render(ticketBlock(ticket, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func ticketBlock(ticket domain.Ticket, s styles) string {
	state := s.meta.Render(string(ticket.Status))
	if ticket.Open() {
		state = s.warning.Render(string(ticket.Status))
	} else if ticket.Status == domain.TicketResolved {
		state = s.success.Render(string(ticket.Status))
	}

	lines := []string{
		fmt.Sprintf("%s %s %s",
			s.meta.Render(fmt.Sprintf("#%d", ticket.ID)),
			s.title.Render(ticket.Subject),
			state,
		),
		s.meta.Render(fmt.Sprintf("%s · opened %s", ticket.Category, ticket.CreatedAt.Format("02 Jan 2006"))),
	}

	for _, update := range ticket.PublicUpdates() {
		author := update.Author
		if author == "" {
			author = "support"
		}
		lines = append(lines, s.value.Render(fmt.Sprintf("  %s %s: %s",
			update.CreatedAt.Format("02 Jan 15:04"), author, update.Note)))
	}

	if ticket.AdminResponse != "" {
		lines = append(lines, s.success.Render("  Resolution: ")+s.value.Render(ticket.AdminResponse))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// UsageHistory renders the dated series with a bar per day scaled to the
// busiest entry.
func UsageHistory(samples []domain.UsageSample) string {
	s := newStyles()

	lines := []string{s.title.Render("Usage history")}
	if len(samples) == 0 {
		lines = append(lines, s.empty.Render("No usage recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	var peak float64
	for _, sample := range samples {
		if total := sample.TotalMB(); total > peak {
			peak = total
		}
	}

	for _, sample := range samples {
		percent := 0.0
		if peak > 0 {
			percent = sample.TotalMB() / peak * 100
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			s.meta.Render(sample.Date.Format("02 Jan")),
			renderCapBar(percent, 20, s),
			s.value.Render(domain.FormatMB(sample.TotalMB())),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCapBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
