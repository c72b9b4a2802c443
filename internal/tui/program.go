package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nyumbanet/portal-cli/internal/application"
)

// Run starts the interactive portal and blocks until the user quits.
func Run(svc *application.Service, logger zerolog.Logger) error {
	p := tea.NewProgram(New(svc, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
