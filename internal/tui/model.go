// Package tui is the interactive portal: a single bubbletea program whose
// model is the explicit state machine driving every screen. Unauthenticated
// sub-modes are login, register and the two password-reset steps; the
// authenticated portal cycles between dashboard, plans, history and support.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

const (
	usagePollInterval  = 30 * time.Second
	ticketPollInterval = 60 * time.Second
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenResetRequest
	screenResetConfirm
	screenPortal
)

type view int

const (
	viewDashboard view = iota
	viewPlans
	viewHistory
	viewSupport
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusSuccess
	statusError
)

// statusMessage is the single transient banner per screen; each new message
// replaces the previous one.
type statusMessage struct {
	text  string
	level statusLevel
}

type Model struct {
	svc    *application.Service
	logger zerolog.Logger
	now    func() time.Time

	screen screen
	view   view

	snapshot application.Snapshot

	loginForm        form
	registerForm     form
	resetRequestForm form
	resetConfirmForm form
	payForm          form
	ticketForm       form

	payPrompt     bool
	ticketPrompt  bool
	planCursor    int
	history       historyTab
	busy          bool
	spinner       spinner.Model
	status        statusMessage
	width, height int

	// Poll subscription generations; bumping one orphans its pending ticks.
	usageGen  int
	ticketGen int

	// sessionCtx scopes all authenticated requests; cancelled on logout so a
	// late response cannot write into cleared state.
	sessionCtx    context.Context
	cancelSession context.CancelFunc

	quitting bool
}

type historyTab int

const (
	historyPayments historyTab = iota
	historyUsage
)

func New(svc *application.Service, logger zerolog.Logger) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		svc:     svc,
		logger:  logger,
		now:     time.Now,
		screen:  screenLogin,
		spinner: s,

		loginForm: newForm(
			fieldSpec{label: "Username", placeholder: "username or email", limit: 128},
			fieldSpec{label: "Password", placeholder: "password", secret: true, limit: 128},
		),
		registerForm: newForm(
			fieldSpec{label: "Username", placeholder: "username", limit: 64},
			fieldSpec{label: "Email", placeholder: "you@example.com", limit: 128},
			fieldSpec{label: "Phone", placeholder: "07XXXXXXXX", limit: 16},
			fieldSpec{label: "Password", placeholder: "min 8 characters", secret: true, limit: 128},
		),
		resetRequestForm: newForm(
			fieldSpec{label: "Email", placeholder: "you@example.com", limit: 128},
		),
		resetConfirmForm: newForm(
			fieldSpec{label: "Reset token", placeholder: "token from email", limit: 128},
			fieldSpec{label: "New password", placeholder: "min 8 characters", secret: true, limit: 128},
		),
		payForm: newForm(
			fieldSpec{label: "M-Pesa phone", placeholder: "07XXXXXXXX", limit: 16},
		),
		ticketForm: newForm(
			fieldSpec{label: "Subject", placeholder: "short summary", limit: 200},
			fieldSpec{label: "Category", placeholder: "INTERNET | BILLING | RELOCATION | OTHER", limit: 20},
			fieldSpec{label: "Description", placeholder: "what happened?", limit: 500},
		),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.restoreSessionCmd())
}

// enterPortal transitions into the authenticated state: the only transition
// that performs I/O, loading every resource and starting the usage poll.
func (m *Model) enterPortal(session domain.Session) tea.Cmd {
	m.screen = screenPortal
	m.view = viewDashboard
	m.snapshot = application.Snapshot{Session: session}
	m.sessionCtx, m.cancelSession = context.WithCancel(context.Background())
	m.usageGen++

	return tea.Batch(
		m.fetchSubscriptionCmd(),
		m.fetchPaymentsCmd(),
		m.fetchUsageCmd(),
		m.fetchUsageHistoryCmd(),
		m.fetchPlansCmd(),
		m.fetchTicketsCmd(),
		usageTick(m.usageGen),
	)
}

// leavePortal is the uniform teardown: cancel in-flight requests, orphan the
// poll subscriptions and drop every collection. forced distinguishes an
// expired session from an explicit logout.
func (m *Model) leavePortal(forced bool) {
	if m.cancelSession != nil {
		m.cancelSession()
		m.cancelSession = nil
	}
	m.usageGen++
	m.ticketGen++
	m.snapshot.Reset()
	m.payPrompt = false
	m.ticketPrompt = false
	m.busy = false
	m.screen = screenLogin
	m.loginForm.reset()

	if forced {
		m.status = statusMessage{text: "Session expired. Please log in again.", level: statusError}
	} else {
		m.status = statusMessage{text: "Logged out.", level: statusInfo}
	}
}

func (m Model) authenticated() bool {
	return m.screen == screenPortal
}
