package account

import (
	"os"
	"path/filepath"

	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/keys"
)

var Protocols = []string{"SSL/TLS", "STARTTLS", "None"}

const (
	SlotHost control.Slot = iota
	SlotProtocol
	SlotPort
	SlotUsername
	SlotPassword
)

// IMAPPanel holds the IMAP server fields. It hands advance and retreat back
// to the form at its ends.
type IMAPPanel struct {
	*control.Composite

	host     *control.Text
	protocol *control.Select
	port     *control.Text
	username *control.Text
	password *control.Text
}

func NewIMAPPanel(km keys.KeyMap) *IMAPPanel {
	p := &IMAPPanel{
		host:     control.NewText("Host"),
		protocol: control.NewSelect("Protocol", Protocols...),
		port:     control.NewText("Port"),
		username: control.NewText("Username"),
		password: control.NewText("Password", control.Masked()),
	}
	p.protocol.SetKeys(km.Choice)
	p.Composite = control.NewComposite("imap", []control.Child{
		{Slot: SlotHost, Name: "host", Control: p.host},
		{Slot: SlotProtocol, Name: "protocol", Control: p.protocol},
		{Slot: SlotPort, Name: "port", Control: p.port},
		{Slot: SlotUsername, Name: "username", Control: p.username},
		{Slot: SlotPassword, Name: "password", Control: p.password},
	}, control.WithPolicy(control.Delegate), control.WithTitle("IMAP"), control.WithFocusKeys(km.Focus))
	return p
}

func (p *IMAPPanel) Settings() IMAPSettings {
	return IMAPSettings{
		Host:     p.host.Value(),
		Protocol: p.protocol.Selected(),
		Port:     p.port.Value(),
		Username: p.username.Value(),
		Password: p.password.Value(),
	}
}

const SlotDirectory control.Slot = 0

// MaildirPanel holds the local Maildir location.
type MaildirPanel struct {
	*control.Composite

	directory *control.Text
}

// NewMaildirPanel pre-fills the directory with dir, or ~/Mail when empty.
func NewMaildirPanel(dir string, km keys.KeyMap) *MaildirPanel {
	if dir == "" {
		dir = DefaultMaildir()
	}
	p := &MaildirPanel{directory: control.NewText("Maildir directory", control.WithDefault(dir))}
	p.Composite = control.NewComposite("maildir", []control.Child{
		{Slot: SlotDirectory, Name: "directory", Control: p.directory},
	}, control.WithPolicy(control.Delegate), control.WithTitle("Maildir"), control.WithFocusKeys(km.Focus))
	return p
}

func (p *MaildirPanel) Settings() MaildirSettings {
	return MaildirSettings{Directory: p.directory.Value()}
}

// DefaultMaildir is $HOME/Mail, or "Mail" when the home directory is unknown.
func DefaultMaildir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "Mail"
	}
	return filepath.Join(home, "Mail")
}
