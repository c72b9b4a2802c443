package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyumbanet/portal-cli/internal/adapters/api"
	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionRestoredMsg:
		if msg.err != nil {
			m.status = statusMessage{text: "Could not restore session.", level: statusError}
			return m, nil
		}
		if msg.session.Authenticated() {
			return m, m.enterPortal(msg.session)
		}
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = statusMessage{text: messageForError(msg.err), level: statusError}
			return m, nil
		}
		m.status = statusMessage{text: "Welcome back.", level: statusSuccess}
		return m, m.enterPortal(msg.session)

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = statusMessage{text: messageForError(msg.err), level: statusError}
			return m, nil
		}
		m.screen = screenLogin
		m.registerForm.reset()
		m.status = statusMessage{text: "Account created. Sign in with your new credentials.", level: statusSuccess}
		return m, nil

	case resetRequestResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = statusMessage{text: messageForError(msg.err), level: statusError}
			return m, nil
		}
		m.screen = screenResetConfirm
		m.status = statusMessage{text: "Check your email for a reset token.", level: statusSuccess}
		return m, nil

	case resetConfirmResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = statusMessage{text: messageForError(msg.err), level: statusError}
			return m, nil
		}
		m.screen = screenLogin
		m.resetConfirmForm.reset()
		m.status = statusMessage{text: "Password updated. Sign in.", level: statusSuccess}
		return m, nil
	}

	if m.authenticated() {
		return m.updatePortal(msg)
	}
	return m, nil
}

// updatePortal reconciles fetch and action outcomes into the snapshot. Every
// successful fetch replaces its collection wholesale; failed read fetches
// leave prior state untouched and are only logged.
func (m Model) updatePortal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case subscriptionMsg:
		if cmd, handled := m.handleFetchErr("subscription", msg.err); handled {
			return m, cmd
		}
		m.snapshot.Subscription = msg.sub
		return m, nil

	case paymentsMsg:
		if cmd, handled := m.handleFetchErr("payments", msg.err); handled {
			return m, cmd
		}
		m.snapshot.Payments = msg.payments
		return m, nil

	case usageMsg:
		if cmd, handled := m.handleFetchErr("usage", msg.err); handled {
			return m, cmd
		}
		usage := msg.usage
		m.snapshot.Usage = &usage
		return m, nil

	case usageHistoryMsg:
		if cmd, handled := m.handleFetchErr("usage history", msg.err); handled {
			return m, cmd
		}
		m.snapshot.UsageHistory = msg.samples
		return m, nil

	case plansMsg:
		if cmd, handled := m.handleFetchErr("plans", msg.err); handled {
			return m, cmd
		}
		m.snapshot.Plans = msg.plans
		if m.planCursor >= len(m.snapshot.Plans) {
			m.planCursor = 0
		}
		return m, nil

	case ticketsMsg:
		if cmd, handled := m.handleFetchErr("tickets", msg.err); handled {
			return m, cmd
		}
		m.snapshot.Tickets = msg.tickets
		return m, nil

	case usageTickMsg:
		if msg.gen != m.usageGen {
			return m, nil
		}
		return m, tea.Batch(m.fetchUsageCmd(), usageTick(msg.gen))

	case ticketTickMsg:
		if msg.gen != m.ticketGen || m.view != viewSupport {
			return m, nil
		}
		return m, tea.Batch(m.fetchTicketsCmd(), ticketTick(msg.gen))

	case payResultMsg:
		m.busy = false
		if cmd, handled := m.handleActionErr(msg.err); handled {
			return m, cmd
		}
		m.payPrompt = false
		m.payForm.reset()
		text := msg.receipt.CustomerMessage
		if text == "" {
			text = "Payment prompt sent to your phone."
		}
		m.status = statusMessage{text: text, level: statusSuccess}
		return m, tea.Batch(m.fetchPaymentsCmd(), m.fetchSubscriptionCmd())

	case changePlanResultMsg:
		m.busy = false
		if cmd, handled := m.handleActionErr(msg.err); handled {
			return m, cmd
		}
		m.status = statusMessage{text: "Switched to " + msg.plan.Name + ".", level: statusSuccess}
		return m, m.fetchSubscriptionCmd()

	case renewResultMsg:
		m.busy = false
		if cmd, handled := m.handleActionErr(msg.err); handled {
			return m, cmd
		}
		m.status = statusMessage{text: "Subscription renewed.", level: statusSuccess}
		return m, m.fetchSubscriptionCmd()

	case ticketCreateResultMsg:
		m.busy = false
		if cmd, handled := m.handleActionErr(msg.err); handled {
			return m, cmd
		}
		m.ticketPrompt = false
		m.ticketForm.reset()
		m.status = statusMessage{text: "Ticket opened. We'll be in touch.", level: statusSuccess}
		return m, m.fetchTicketsCmd()
	}

	return m, nil
}

// handleFetchErr applies the read-fetch failure policy: a 401 forces logout,
// anything else is swallowed after a log line so prior state keeps rendering.
func (m *Model) handleFetchErr(resource string, err error) (tea.Cmd, bool) {
	if err == nil {
		return nil, false
	}
	if isUnauthorized(err) {
		m.leavePortal(true)
		return nil, true
	}
	if !errors.Is(err, context.Canceled) {
		m.logger.Debug().Err(err).Str("resource", resource).Msg("fetch failed")
	}
	return nil, true
}

// handleActionErr surfaces mutating-action failures in the status banner.
func (m *Model) handleActionErr(err error) (tea.Cmd, bool) {
	if err == nil {
		return nil, false
	}
	if isUnauthorized(err) {
		m.leavePortal(true)
		return nil, true
	}
	m.status = statusMessage{text: messageForError(err), level: statusError}
	return nil, true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.authenticated() {
		return m.handlePortalKey(msg)
	}
	return m.handleGateKey(msg)
}

// handleGateKey drives the unauthenticated sub-modes. Transitions between
// them are pure navigation; only enter submits a request.
func (m Model) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.activeGateForm()

	switch msg.String() {
	case "tab", "down":
		active.next()
		return m, nil
	case "shift+tab", "up":
		active.prev()
		return m, nil
	case "enter":
		return m.submitGateForm()
	case "esc":
		if m.screen == screenLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.screen = screenLogin
		m.status = statusMessage{}
		return m, nil
	case "ctrl+r":
		if m.screen == screenLogin {
			m.screen = screenRegister
			m.status = statusMessage{}
		}
		return m, nil
	case "ctrl+f":
		if m.screen == screenLogin {
			m.screen = screenResetRequest
			m.status = statusMessage{}
		}
		return m, nil
	case "ctrl+t":
		if m.screen == screenResetRequest {
			m.screen = screenResetConfirm
			m.status = statusMessage{}
		}
		return m, nil
	}

	return m, active.update(msg)
}

func (m *Model) activeGateForm() *form {
	switch m.screen {
	case screenRegister:
		return &m.registerForm
	case screenResetRequest:
		return &m.resetRequestForm
	case screenResetConfirm:
		return &m.resetConfirmForm
	default:
		return &m.loginForm
	}
}

func (m Model) submitGateForm() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		identifier := strings.TrimSpace(m.loginForm.value(0))
		password := m.loginForm.value(1)
		if identifier == "" || password == "" {
			m.status = statusMessage{text: "Username and password are required.", level: statusError}
			return m, nil
		}
		m.busy = true
		m.status = statusMessage{text: "Signing in...", level: statusInfo}
		return m, m.loginCmd(identifier, password)

	case screenRegister:
		input := application.RegisterInput{
			Username:    strings.TrimSpace(m.registerForm.value(0)),
			Email:       strings.TrimSpace(m.registerForm.value(1)),
			PhoneNumber: strings.TrimSpace(m.registerForm.value(2)),
			Password:    m.registerForm.value(3),
		}
		m.busy = true
		m.status = statusMessage{text: "Creating account...", level: statusInfo}
		return m, m.registerCmd(input)

	case screenResetRequest:
		m.busy = true
		m.status = statusMessage{text: "Requesting reset token...", level: statusInfo}
		return m, m.resetRequestCmd(strings.TrimSpace(m.resetRequestForm.value(0)))

	case screenResetConfirm:
		m.busy = true
		m.status = statusMessage{text: "Updating password...", level: statusInfo}
		return m, m.resetConfirmCmd(
			strings.TrimSpace(m.resetConfirmForm.value(0)),
			m.resetConfirmForm.value(1),
		)
	}

	return m, nil
}

func (m Model) handlePortalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.payPrompt {
		return m.handlePayPromptKey(msg)
	}
	if m.ticketPrompt {
		return m.handleTicketPromptKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "d":
		return m, m.switchView(viewDashboard)
	case "2", "p":
		return m, m.switchView(viewPlans)
	case "3", "h":
		return m, m.switchView(viewHistory)
	case "4", "s":
		return m, m.switchView(viewSupport)
	case "L":
		m.leavePortal(false)
		return m, func() tea.Msg {
			_ = m.svc.Logout(context.Background())
			return nil
		}
	case "r":
		return m, m.refreshActiveView()
	case "m":
		if m.view != viewDashboard {
			return m, nil
		}
		if !m.snapshot.HasPlan() {
			m.status = statusMessage{text: "No active plan to pay for.", level: statusError}
			return m, nil
		}
		m.payPrompt = true
		m.payForm.reset()
		return m, nil
	case "tab":
		if m.view == viewHistory {
			if m.history == historyPayments {
				m.history = historyUsage
			} else {
				m.history = historyPayments
			}
		}
		return m, nil
	case "j", "down":
		if m.view == viewPlans && m.planCursor < len(m.snapshot.Plans)-1 {
			m.planCursor++
		}
		return m, nil
	case "k", "up":
		if m.view == viewPlans && m.planCursor > 0 {
			m.planCursor--
		}
		return m, nil
	case "enter":
		if m.view == viewPlans && !m.busy && m.planCursor < len(m.snapshot.Plans) {
			plan := m.snapshot.Plans[m.planCursor]
			m.busy = true
			m.status = statusMessage{text: "Switching to " + plan.Name + "...", level: statusInfo}
			return m, m.changePlanCmd(plan.ID)
		}
		return m, nil
	case "w":
		if m.view == viewPlans && !m.busy {
			m.busy = true
			m.status = statusMessage{text: "Renewing subscription...", level: statusInfo}
			return m, m.renewCmd()
		}
		return m, nil
	case "n":
		if m.view == viewSupport {
			m.ticketPrompt = true
			m.ticketForm.reset()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handlePayPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.payPrompt = false
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		phone := strings.TrimSpace(m.payForm.value(0))
		if phone == "" {
			m.status = statusMessage{text: "Enter the M-Pesa phone number.", level: statusError}
			return m, nil
		}
		m.busy = true
		m.status = statusMessage{text: "Sending payment prompt...", level: statusInfo}
		return m, m.payCmd(phone)
	}

	return m, m.payForm.update(msg)
}

func (m Model) handleTicketPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ticketPrompt = false
		return m, nil
	case "tab", "down":
		m.ticketForm.next()
		return m, nil
	case "shift+tab", "up":
		m.ticketForm.prev()
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		input := application.TicketInput{
			Subject:     strings.TrimSpace(m.ticketForm.value(0)),
			Category:    domain.TicketCategory(strings.ToUpper(strings.TrimSpace(m.ticketForm.value(1)))),
			Description: strings.TrimSpace(m.ticketForm.value(2)),
		}
		m.busy = true
		m.status = statusMessage{text: "Opening ticket...", level: statusInfo}
		return m, m.createTicketCmd(input)
	}

	return m, m.ticketForm.update(msg)
}

// switchView is pure navigation, except that entering support starts the
// ticket poll subscription and leaving it orphans the pending tick.
func (m *Model) switchView(v view) tea.Cmd {
	if m.view == v {
		return nil
	}

	prev := m.view
	m.view = v
	m.status = statusMessage{}

	if v == viewSupport {
		m.ticketGen++
		return tea.Batch(m.fetchTicketsCmd(), ticketTick(m.ticketGen))
	}
	if prev == viewSupport {
		m.ticketGen++
	}
	return nil
}

func (m Model) refreshActiveView() tea.Cmd {
	switch m.view {
	case viewPlans:
		return m.fetchPlansCmd()
	case viewHistory:
		return tea.Batch(m.fetchPaymentsCmd(), m.fetchUsageHistoryCmd())
	case viewSupport:
		return m.fetchTicketsCmd()
	default:
		return tea.Batch(m.fetchSubscriptionCmd(), m.fetchUsageCmd(), m.fetchPaymentsCmd())
	}
}

func messageForError(err error) string {
	var inputErr *application.InputError
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrNoSubscription):
		return "You need an active subscription first."
	case errors.Is(err, domain.ErrInvalidPhone):
		return "Enter a valid Kenyan mobile number."
	default:
		return api.UserMessage(err)
	}
}
