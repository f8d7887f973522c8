package dispatcher

import (
	"errors"
	"testing"

	"github.com/nitidus-mail/nitidus/internal/backend"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/state"
)

func TestHandleEnvelopes(t *testing.T) {
	store := state.NewEnvelopeStore("INBOX")
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindEnvelopes, Folder: "INBOX", Data: []mail.Envelope{{ID: "a"}, {ID: "b"}}})
	if !res.EnvelopesUpdated {
		t.Fatalf("expected envelopes updated")
	}
	if len(store.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(store.Entries()))
	}
}

func TestHandleIgnoresOtherFolders(t *testing.T) {
	store := state.NewEnvelopeStore("INBOX")
	res := New(store).Handle(backend.Event{Kind: backend.KindEnvelopes, Folder: "Archive", Data: []mail.Envelope{{ID: "a"}}})
	if res.EnvelopesUpdated || len(store.Entries()) != 0 {
		t.Fatalf("expected events for another folder to be ignored")
	}
}

func TestHandleErrorLeavesStore(t *testing.T) {
	store := state.NewEnvelopeStore("INBOX")
	store.SetEntries([]mail.Envelope{{ID: "keep"}})
	res := New(store).Handle(backend.Event{Kind: backend.KindEnvelopes, Err: errors.New("boom")})
	if res.EnvelopesUpdated || store.Entries()[0].ID != "keep" {
		t.Fatalf("expected error events to leave the store alone")
	}
}

func TestHandleFolders(t *testing.T) {
	store := state.NewEnvelopeStore("INBOX")
	res := New(store).Handle(backend.Event{Kind: backend.KindFolders, Data: []string{"INBOX", "Sent"}})
	if !res.FoldersUpdated || len(store.Folders()) != 2 {
		t.Fatalf("expected folders stored")
	}
}
