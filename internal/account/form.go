// Package account builds the account configuration screen: the account
// identity fields, the backend selector and the backend specific panels that
// are only reachable while their backend is selected.
package account

import (
	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/keys"
)

const (
	BackendIMAP    = "IMAP"
	BackendMaildir = "Maildir"
	BackendNone    = "None"
)

const (
	SlotAccountName control.Slot = iota
	SlotEmail
	SlotDisplayName
	SlotBackend
	SlotIMAP
	SlotMaildir
)

// Defaults pre-fills the form.
type Defaults struct {
	AccountName string
	Email       string
	DisplayName string
	Backend     string
	MaildirDir  string
}

// Form is the root of the account screen. It cycles through its slots.
type Form struct {
	*control.Composite

	accountName *control.Text
	email       *control.Text
	displayName *control.Text
	backend     *control.Select
	imap        *IMAPPanel
	maildir     *MaildirPanel
}

// NewForm builds the form with the choice and focus bindings of km.
func NewForm(d Defaults, km keys.KeyMap) *Form {
	f := &Form{
		accountName: control.NewText("Account Name", control.WithDefault(d.AccountName)),
		email:       control.NewText("Email", control.WithDefault(d.Email)),
		displayName: control.NewText("Display Name", control.WithDefault(d.DisplayName)),
		backend:     control.NewSelect("Backend", BackendIMAP, BackendMaildir, BackendNone),
		imap:        NewIMAPPanel(km),
		maildir:     NewMaildirPanel(d.MaildirDir, km),
	}
	f.backend.SetKeys(km.Choice)
	if d.Backend != "" {
		f.backend.SetSelected(d.Backend)
	}
	f.Composite = control.NewComposite("account", []control.Child{
		{Slot: SlotAccountName, Name: "account-name", Control: f.accountName},
		{Slot: SlotEmail, Name: "email", Control: f.email},
		{Slot: SlotDisplayName, Name: "display-name", Control: f.displayName},
		{Slot: SlotBackend, Name: "backend", Control: f.backend},
		{Slot: SlotIMAP, Name: "imap", Control: f.imap, When: f.backendIs(BackendIMAP)},
		{Slot: SlotMaildir, Name: "maildir", Control: f.maildir, When: f.backendIs(BackendMaildir)},
	}, control.WithTitle("Configure Account"), control.WithFocusKeys(km.Focus))
	return f
}

func (f *Form) backendIs(name string) func() bool {
	return func() bool {
		return f.backend.Selected() == name
	}
}

func (f *Form) Backend() *control.Select { return f.backend }

func (f *Form) IMAP() *IMAPPanel { return f.imap }

func (f *Form) Maildir() *MaildirPanel { return f.maildir }

// Settings snapshots the form. Only the selected backend's settings are set.
func (f *Form) Settings() Settings {
	s := Settings{
		AccountName: f.accountName.Value(),
		Email:       f.email.Value(),
		DisplayName: f.displayName.Value(),
		Backend:     f.backend.Selected(),
	}
	switch s.Backend {
	case BackendIMAP:
		imap := f.imap.Settings()
		s.IMAP = &imap
	case BackendMaildir:
		maildir := f.maildir.Settings()
		s.Maildir = &maildir
	}
	return s
}
