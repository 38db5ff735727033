package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/index"
	"github.com/marketpeek/tickerpick/internal/remote"
	"github.com/marketpeek/tickerpick/internal/ui"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

// Config describes user-provided application options.
type Config struct {
	APIBaseURL      string
	APIKey          string
	DBPath          string
	SymbolsPath     string
	RefreshInterval time.Duration
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	idx, err := openIndex(cfg.SymbolsPath)
	if err != nil {
		return err
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	client := remote.New(cfg.APIBaseURL, cfg.APIKey)
	refresher := backend.NewRefresher(client, store, cfg.RefreshInterval)
	defer refresher.Stop()

	model := ui.NewModel(idx, client, store, refresher, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose)
	program := tea.NewProgram(model, programOptions()...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// programOptions configures the terminal for the UI. Mouse cell motion must
// be on or the terminal never reports clicks and click-to-select is dead.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func openIndex(symbolsPath string) (*index.Index, error) {
	if strings.TrimSpace(symbolsPath) != "" {
		idx, err := index.Load(symbolsPath)
		if err != nil {
			return nil, fmt.Errorf("load symbol directory: %w", err)
		}
		return idx, nil
	}
	idx, err := index.Seed()
	if err != nil {
		return nil, fmt.Errorf("load seed directory: %w", err)
	}
	return idx, nil
}

func openStore(dbPath string) (*watchlist.Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	store, err := watchlist.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	return store, nil
}
