package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func (m Model) restoreSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.svc.RestoreSession(context.Background())
		return sessionRestoredMsg{session: session, err: err}
	}
}

func (m Model) loginCmd(identifier, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.svc.Login(context.Background(), identifier, password)
		return loginResultMsg{session: session, err: err}
	}
}

func (m Model) registerCmd(input application.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: m.svc.Register(context.Background(), input)}
	}
}

func (m Model) resetRequestCmd(email string) tea.Cmd {
	return func() tea.Msg {
		return resetRequestResultMsg{err: m.svc.RequestPasswordReset(context.Background(), email)}
	}
}

func (m Model) resetConfirmCmd(token, password string) tea.Cmd {
	return func() tea.Msg {
		return resetConfirmResultMsg{err: m.svc.ConfirmPasswordReset(context.Background(), token, password)}
	}
}

func (m Model) fetchSubscriptionCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		sub, ok, err := m.svc.Subscription(ctx)
		if err != nil {
			return subscriptionMsg{err: err}
		}
		if !ok {
			return subscriptionMsg{}
		}
		return subscriptionMsg{sub: &sub}
	}
}

func (m Model) fetchPaymentsCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		payments, err := m.svc.Payments(ctx)
		return paymentsMsg{payments: payments, err: err}
	}
}

func (m Model) fetchUsageCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		usage, err := m.svc.CurrentUsage(ctx)
		return usageMsg{usage: usage, err: err}
	}
}

func (m Model) fetchUsageHistoryCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		samples, err := m.svc.UsageHistory(ctx)
		return usageHistoryMsg{samples: samples, err: err}
	}
}

func (m Model) fetchPlansCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		plans, err := m.svc.Plans(ctx)
		return plansMsg{plans: plans, err: err}
	}
}

func (m Model) fetchTicketsCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		tickets, err := m.svc.Tickets(ctx)
		return ticketsMsg{tickets: tickets, err: err}
	}
}

func (m Model) payCmd(phone string) tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		receipt, err := m.svc.Pay(ctx, phone)
		return payResultMsg{receipt: receipt, err: err}
	}
}

func (m Model) changePlanCmd(packageID int64) tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		plan, err := m.svc.ChangePlan(ctx, packageID)
		return changePlanResultMsg{plan: plan, err: err}
	}
}

func (m Model) renewCmd() tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		return renewResultMsg{err: m.svc.Renew(ctx)}
	}
}

func (m Model) createTicketCmd(input application.TicketInput) tea.Cmd {
	ctx := m.sessionCtx
	return func() tea.Msg {
		ticket, err := m.svc.OpenTicket(ctx, input)
		return ticketCreateResultMsg{ticket: ticket, err: err}
	}
}

func usageTick(gen int) tea.Cmd {
	return tea.Tick(usagePollInterval, func(time.Time) tea.Msg {
		return usageTickMsg{gen: gen}
	})
}

func ticketTick(gen int) tea.Cmd {
	return tea.Tick(ticketPollInterval, func(time.Time) tea.Msg {
		return ticketTickMsg{gen: gen}
	})
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
