// cmd/tweakboard/main.go
//
// This is the entry point for the tweakboard tool window.
// When you run `tweakboard` from a project directory, this is what executes.
//
// Flow:
// 1. Initialize the .tweakboard folder (types/, logs/, config.yaml)
// 2. Build the app: discover type definitions, load the scene document
// 3. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tweakboard/internal/config"
	"github.com/kingrea/tweakboard/internal/tui"
)

func main() {
	// The current working directory is the "project" we attach to
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitTweakboardDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .tweakboard directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening tweakboard: %v\n", err)
		os.Exit(1)
	}

	// tea.NewProgram creates a new bubbletea application.
	// WithReportFocus makes terminal focus changes reach the model so an
	// alt-tab back into the window re-scans the scene.
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	// Run blocks until the user quits
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
