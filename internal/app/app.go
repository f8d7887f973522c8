package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nitidus-mail/nitidus/internal/account"
	"github.com/nitidus-mail/nitidus/internal/backend"
	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/mail/index"
	"github.com/nitidus-mail/nitidus/internal/mail/maildir"
	"github.com/nitidus-mail/nitidus/internal/paths"
	"github.com/nitidus-mail/nitidus/internal/ui"
)

const indexFile = "index.db"

// Config describes user-provided application options.
type Config struct {
	Account       string
	Folder        string
	Maildir       string
	DataDir       string
	PageSize      int
	Screen        string
	Width         int
	Height        int
	WatchInterval time.Duration
	Index         bool
	Color         string
}

const (
	ColorAuto      = "auto"
	ColorASCII     = "ascii"
	ColorANSI      = "ansi"
	ColorANSI256   = "ansi256"
	ColorTrueColor = "truecolor"
)

// ColorProfile maps a colour setting to a termenv profile. The boolean is
// false for "auto", which leaves detection to lipgloss.
func ColorProfile(name string) (termenv.Profile, bool, error) {
	switch name {
	case "", ColorAuto:
		return termenv.Ascii, false, nil
	case ColorASCII:
		return termenv.Ascii, true, nil
	case ColorANSI:
		return termenv.ANSI, true, nil
	case ColorANSI256:
		return termenv.ANSI256, true, nil
	case ColorTrueColor:
		return termenv.TrueColor, true, nil
	default:
		return termenv.Ascii, false, fmt.Errorf("unknown color profile %q", name)
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	profile, forced, err := ColorProfile(cfg.Color)
	if err != nil {
		return err
	}
	if forced {
		lipgloss.SetColorProfile(profile)
	}
	screen, err := ui.ParseScreen(cfg.Screen)
	if err != nil {
		return err
	}
	if cfg.Maildir == "" {
		cfg.Maildir = account.DefaultMaildir()
	}
	provider, closeProvider := openProvider(cfg)
	defer closeProvider()

	watcher := backend.NewWatcher(provider, backend.Options{
		Folder:   cfg.Folder,
		PageSize: cfg.PageSize,
		Interval: cfg.WatchInterval,
	})
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Screen:   screen,
		Folder:   cfg.Folder,
		PageSize: cfg.PageSize,
		Account: account.Defaults{
			AccountName: cfg.Account,
			MaildirDir:  cfg.Maildir,
		},
		Provider: provider,
		Watcher:  watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openProvider reads the Maildir, through the SQLite index when enabled. An
// index that cannot be opened is logged and skipped.
func openProvider(cfg Config) (mail.Provider, func()) {
	store := maildir.New(cfg.Maildir)
	logging.Infof("maildir %s", store.Root())
	if !cfg.Index {
		return store, func() {}
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = paths.DataDir()
	}
	dir, err := paths.EnsureDir(dataDir)
	if err != nil {
		logging.Warnf("envelope index disabled: %v", err)
		return store, func() {}
	}
	idx, err := index.Open(filepath.Join(dir, indexFile), store)
	if err != nil {
		logging.Warnf("envelope index disabled: %v", err)
		return store, func() {}
	}
	return idx, func() {
		if err := idx.Close(); err != nil {
			logging.Error(err)
		}
	}
}
