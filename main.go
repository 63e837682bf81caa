package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmvarela/ghoten-ui/internal/auth"
	"github.com/vmvarela/ghoten-ui/internal/logger"
	"github.com/vmvarela/ghoten-ui/internal/storage"
	"github.com/vmvarela/ghoten-ui/internal/ui"
)

func main() {
	if home, err := os.UserHomeDir(); err == nil {
		if err := logger.Init(filepath.Join(home, ".ghoten", "ghoten.log")); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file: %v\n", err)
		}
	}
	defer logger.Close()

	store, err := storage.NewLocalStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not open config store: %v\n", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenStore(store)
	flow := auth.NewDeviceFlow(os.Getenv("GHOTEN_GITHUB_CLIENT_ID"), tokens)

	model := ui.NewModel(tokens, flow, os.Getenv("GHOTEN_ORG"))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
