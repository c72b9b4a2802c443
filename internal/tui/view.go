package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(14)
	hintStyle    = lipgloss.NewStyle().Faint(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	promptBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.authenticated() {
		return m.portalView()
	}
	return m.gateView()
}

func (m Model) gateView() string {
	var title, hint string
	var active *form

	switch m.screen {
	case screenRegister:
		title = "Create your NyumbaNet account"
		hint = "enter submit · esc back"
		active = &m.registerForm
	case screenResetRequest:
		title = "Reset your password"
		hint = "enter request token · ctrl+t already have one · esc back"
		active = &m.resetRequestForm
	case screenResetConfirm:
		title = "Set a new password"
		hint = "enter submit · esc back"
		active = &m.resetConfirmForm
	default:
		title = "NyumbaNet Customer Portal"
		hint = "enter sign in · ctrl+r register · ctrl+f forgot password · esc quit"
		active = &m.loginForm
	}

	lines := []string{titleStyle.Render(title), ""}
	for i, input := range active.inputs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(active.labels[i]+":"), input.View()))
	}

	lines = append(lines, "", m.statusLine(), hintStyle.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) portalView() string {
	lines := []string{m.tabBar(), ""}

	switch m.view {
	case viewPlans:
		lines = append(lines, m.plansView())
	case viewHistory:
		if m.history == historyUsage {
			lines = append(lines, render.UsageHistory(m.snapshot.UsageHistory))
		} else {
			lines = append(lines, render.Payments(m.snapshot.Payments))
		}
		lines = append(lines, hintStyle.Render("tab switch payments/usage"))
	case viewSupport:
		lines = append(lines, render.Tickets(m.snapshot.Tickets))
	default:
		lines = append(lines, render.Dashboard(m.snapshot, render.RenderOptions{Now: m.now()}))
	}

	if m.payPrompt {
		lines = append(lines, m.promptView("Pay via M-Pesa", &m.payForm,
			"enter send prompt · esc cancel"))
	}
	if m.ticketPrompt {
		lines = append(lines, m.promptView("New support ticket", &m.ticketForm,
			"tab next field · enter submit · esc cancel"))
	}

	lines = append(lines, "", m.statusLine(), hintStyle.Render(m.footerHint()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) plansView() string {
	body := render.Plans(m.snapshot.Plans, m.snapshot.Subscription)
	if len(m.snapshot.Plans) == 0 {
		return body
	}

	// Overlay a cursor marker on the selectable rows.
	lines := strings.Split(body, "\n")
	for i := range lines {
		row := i - 1 // first line is the section title
		if row == m.planCursor {
			lines[i] = "> " + lines[i]
		} else if row >= 0 && row < len(m.snapshot.Plans) {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) promptView(title string, f *form, hint string) string {
	lines := []string{titleStyle.Render(title)}
	for i, input := range f.inputs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(f.labels[i]+":"), input.View()))
	}
	lines = append(lines, hintStyle.Render(hint))
	return promptBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) tabBar() string {
	tabs := []struct {
		v     view
		label string
	}{
		{viewDashboard, "1 Dashboard"},
		{viewPlans, "2 Plans"},
		{viewHistory, "3 History"},
		{viewSupport, "4 Support"},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.v == m.view {
			parts = append(parts, activeTab.Render(tab.label))
		} else {
			parts = append(parts, tabStyle.Render(tab.label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) statusLine() string {
	if m.busy {
		return fmt.Sprintf("%s %s", m.spinner.View(), infoStyle.Render(m.status.text))
	}

	switch m.status.level {
	case statusSuccess:
		return successStyle.Render(m.status.text)
	case statusError:
		return errorStyle.Render(m.status.text)
	case statusInfo:
		return infoStyle.Render(m.status.text)
	default:
		return ""
	}
}

func (m Model) footerHint() string {
	switch m.view {
	case viewPlans:
		return "j/k select · enter change plan · w renew · r refresh · L logout · q quit"
	case viewSupport:
		return "n new ticket · r refresh · L logout · q quit"
	case viewHistory:
		return "r refresh · L logout · q quit"
	default:
		return "m pay via M-Pesa · r refresh · L logout · q quit"
	}
}
