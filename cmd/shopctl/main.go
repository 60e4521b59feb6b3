// Package main implements the interactive terminal client for the
// shopping list API.
package main

import (
	"flag"
	"fmt"
	"os"

	"shoplist/internal/client"
	"shoplist/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultAPIURL = "http://localhost:3000/api"

func main() {
	apiURL := flag.String("api", "", "base URL of the shopping list API")
	flag.Parse()

	base := *apiURL
	if base == "" {
		base = os.Getenv("SHOPLIST_API_URL")
	}
	if base == "" {
		base = defaultAPIURL
	}

	m := tui.NewModel(client.New(base))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "shopctl: %v\n", err)
		os.Exit(1)
	}
}
