package ui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nitidus-mail/nitidus/internal/account"
	"github.com/nitidus-mail/nitidus/internal/backend"
	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/data/dispatcher"
	"github.com/nitidus-mail/nitidus/internal/keys"
	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/render"
	"github.com/nitidus-mail/nitidus/internal/state"
	"github.com/nitidus-mail/nitidus/internal/theme"
	"github.com/nitidus-mail/nitidus/internal/ui/command"
	"github.com/nitidus-mail/nitidus/internal/ui/mailbox"
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	commandTimeout = 30 * time.Second

	// title bar and status line
	chromeRows = 2
)

// Screen identifies one of the control trees the model can show.
type Screen int

const (
	ScreenAccount Screen = iota
	ScreenMail
)

func (s Screen) String() string {
	if s == ScreenMail {
		return "mail"
	}
	return "account"
}

// ParseScreen maps a screen name to a Screen.
func ParseScreen(name string) (Screen, error) {
	switch name {
	case "", "account":
		return ScreenAccount, nil
	case "mail":
		return ScreenMail, nil
	default:
		return ScreenAccount, fmt.Errorf("unknown screen %q", name)
	}
}

// RunState is the dispatch loop state. Finished is terminal.
type RunState int

const (
	Running RunState = iota
	Finished
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width    int
	Height   int
	Screen   Screen
	Folder   string
	PageSize int
	Account  account.Defaults
	Provider mail.Provider
	Watcher  *backend.Watcher
	Styles   *theme.Styles
}

// Model is the Bubble Tea model driving the account and mail screens.
type Model struct {
	state       RunState
	screen      Screen
	keys        keys.KeyMap
	account     *account.Form
	mail        *mailbox.Screen
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	pageSize    int
	errMsg      string
	infoMsg     string
	folderErr   string

	handlers map[reflect.Type]msgHandler

	provider   mail.Provider
	backend    *backend.Watcher
	store      state.EnvelopeStore
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	surface    *render.Surface
}

// NewModel builds both screens and focuses the configured one.
func NewModel(opts Options) *Model {
	folder := opts.Folder
	if folder == "" {
		folder = mail.DefaultFolder
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = mail.DefaultPageSize
	}
	km := keys.DefaultKeyMap()
	store := state.NewEnvelopeStore(folder)
	m := &Model{
		state:      Running,
		screen:     opts.Screen,
		keys:       km,
		account:    account.NewForm(opts.Account, km),
		mail:       mailbox.NewScreen(folder, km),
		width:      defaultWidth,
		height:     defaultHeight,
		pageSize:   pageSize,
		provider:   opts.Provider,
		backend:    opts.Watcher,
		store:      store,
		dispatcher: dispatcher.New(store),
		bus:        command.New(commandTimeout),
		surface:    render.New(opts.Styles),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.layout()
	m.root().Focus()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return m.listEnvelopesCmd()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(envelopesLoadedMsg{}): m.handleEnvelopesLoadedMsg,
		reflect.TypeOf(messageLoadedMsg{}):   m.handleMessageLoadedMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// State reports whether the loop is still running.
func (m *Model) State() RunState { return m.state }

// Screen returns the visible screen.
func (m *Model) Screen() Screen { return m.screen }

func (m *Model) Account() *account.Form { return m.account }

func (m *Model) Mail() *mailbox.Screen { return m.mail }

func (m *Model) root() control.Control {
	if m.screen == ScreenMail {
		return m.mail
	}
	return m.account
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	var cmds []tea.Cmd
	for _, ev := range keys.FromTea(keyMsg) {
		if m.state == Finished {
			break
		}
		if cmd := m.dispatch(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// dispatch handles one key event to completion. Quit and screen switching
// are decided here; everything else goes to the visible root.
func (m *Model) dispatch(ev keys.Event) tea.Cmd {
	if m.state == Finished || !ev.Pressed() {
		return nil
	}
	switch {
	case keys.Matches(ev, m.keys.Quit):
		m.state = Finished
		m.root().Blur()
		events.App.Stop(ev.String())
		return tea.Quit
	case keys.Matches(ev, m.keys.SwitchScreen):
		m.switchScreen()
		return m.syncSelection()
	}
	if m.root().HandleKey(ev) == control.NotConsumed {
		events.Focus.Bubble(ev.String())
		return nil
	}
	if m.screen != ScreenMail {
		return nil
	}
	var cmds []tea.Cmd
	if body, ok := m.mail.Preview().TakeYank(); ok {
		cmds = append(cmds, m.copyCmd(body))
	}
	cmds = append(cmds, m.syncSelection())
	return tea.Batch(cmds...)
}

func (m *Model) switchScreen() {
	from := m.screen
	if from == ScreenAccount {
		m.noteAccount()
	}
	m.root().Blur()
	if from == ScreenMail {
		m.screen = ScreenAccount
	} else {
		m.screen = ScreenMail
	}
	m.root().Focus()
	events.Screen.Switch(from.String(), m.screen.String())
}

// noteAccount logs the form snapshot and surfaces validation problems in the
// status line. Nothing is saved.
func (m *Model) noteAccount() {
	settings := m.account.Settings()
	logging.Debugf("account %q backend %s", settings.AccountName, settings.Backend)
	if settings.IMAP != nil {
		logging.Debugf("imap %s", settings.IMAP)
	}
	if err := settings.Validate(); err != nil {
		m.infoMsg = "account incomplete: " + strings.ReplaceAll(err.Error(), "\n", "; ")
		return
	}
	m.infoMsg = ""
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.layout()
	return nil
}

func (m *Model) layout() {
	m.mail.Resize(m.width, m.bodyHeight())
}

func (m *Model) bodyHeight() int {
	return max(m.height-chromeRows, 0)
}
