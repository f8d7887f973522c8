package state

import (
	"testing"

	"github.com/nitidus-mail/nitidus/internal/mail"
)

func TestEnvelopeStoreClonesEntries(t *testing.T) {
	store := NewEnvelopeStore("INBOX")
	in := []mail.Envelope{{ID: "a"}}
	store.SetEntries(in)
	in[0].ID = "changed"
	out := store.Entries()
	if out[0].ID != "a" {
		t.Fatalf("expected store to keep its own copy, got %q", out[0].ID)
	}
	out[0].ID = "mutated"
	if store.Entries()[0].ID != "a" {
		t.Fatalf("expected Entries to return a copy")
	}
}

func TestEnvelopeStoreFolderSwitchClearsEntries(t *testing.T) {
	store := NewEnvelopeStore("INBOX")
	store.SetEntries([]mail.Envelope{{ID: "a"}})
	store.SetFolder("INBOX")
	if len(store.Entries()) != 1 {
		t.Fatalf("expected same folder to keep entries")
	}
	store.SetFolder("Archive")
	if len(store.Entries()) != 0 || store.Folder() != "Archive" {
		t.Fatalf("expected entries cleared on folder switch")
	}
}
