package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Maildir is a temporary Maildir tree for tests.
type Maildir struct {
	Root string
}

// Message describes a fixture message. An empty Folder means INBOX, which is
// the root Maildir. New messages land in new/ without flags.
type Message struct {
	Folder  string
	ID      string
	Subject string
	From    string
	Date    time.Time
	Flags   string
	New     bool
	Body    string
}

// NewMaildir creates a Maildir root plus one Maildir++ sub-folder per name.
func NewMaildir(t *testing.T, folders ...string) *Maildir {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Mail")
	makeMaildir(t, root)
	for _, folder := range folders {
		makeMaildir(t, filepath.Join(root, "."+folder))
	}
	return &Maildir{Root: root}
}

func makeMaildir(t *testing.T, dir string) {
	t.Helper()
	for _, sub := range []string{"cur", "new", "tmp"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("create maildir %s: %v", dir, err)
		}
	}
}

// Dir returns the Maildir directory of folder.
func (m *Maildir) Dir(folder string) string {
	if folder == "" || folder == "INBOX" {
		return m.Root
	}
	return filepath.Join(m.Root, "."+folder)
}

// Add writes msg and returns its path.
func (m *Maildir) Add(t *testing.T, msg Message) string {
	t.Helper()
	if msg.ID == "" {
		t.Fatalf("fixture message needs an ID")
	}
	if msg.Date.IsZero() {
		msg.Date = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: me@example.com\r\n")
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", msg.Date.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@example.com>\r\n", msg.ID)
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))

	name := msg.ID + ":2," + msg.Flags
	sub := "cur"
	if msg.New {
		name = msg.ID
		sub = "new"
	}
	path := filepath.Join(m.Dir(msg.Folder), sub, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
