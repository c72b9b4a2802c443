package tui

import (
	"github.com/nyumbanet/portal-cli/internal/domain"
	"github.com/nyumbanet/portal-cli/internal/ports"
)

type sessionRestoredMsg struct {
	session domain.Session
	err     error
}

type loginResultMsg struct {
	session domain.Session
	err     error
}

type registerResultMsg struct{ err error }

type resetRequestResultMsg struct{ err error }

type resetConfirmResultMsg struct{ err error }

type subscriptionMsg struct {
	sub *domain.Subscription
	err error
}

type paymentsMsg struct {
	payments []domain.Payment
	err      error
}

type usageMsg struct {
	usage domain.UsageSnapshot
	err   error
}

type usageHistoryMsg struct {
	samples []domain.UsageSample
	err     error
}

type plansMsg struct {
	plans []domain.Plan
	err   error
}

type ticketsMsg struct {
	tickets []domain.Ticket
	err     error
}

type payResultMsg struct {
	receipt ports.PaymentReceipt
	err     error
}

type changePlanResultMsg struct {
	plan domain.Plan
	err  error
}

type renewResultMsg struct{ err error }

type ticketCreateResultMsg struct {
	ticket domain.Ticket
	err    error
}

// Tick messages carry the generation that started them; stale generations are
// dropped so a poll subscription genuinely ends when its view is left.
type usageTickMsg struct{ gen int }

type ticketTickMsg struct{ gen int }
