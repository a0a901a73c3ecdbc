package tui

import (
	"triphelix-cli/internal/api"
	"triphelix-cli/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/oops"
)

// Run launches the interactive chat inline in the terminal.
func Run(version string, cfg *config.Config) error {
	m := initialModel(version, cfg, api.NewClient(cfg))

	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return oops.In("tui").Errorf("TUI error: %w", err)
	}

	return nil
}
