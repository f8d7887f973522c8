package state

import (
	"github.com/nitidus-mail/nitidus/internal/mail"
)

// EnvelopeStore holds the latest envelope listing for the open folder.
type EnvelopeStore interface {
	Entries() []mail.Envelope
	SetEntries([]mail.Envelope)
	Folder() string
	SetFolder(string)
	Folders() []string
	SetFolders([]string)
}

type envelopeStore struct {
	entries []mail.Envelope
	folder  string
	folders []string
}

func NewEnvelopeStore(folder string) EnvelopeStore {
	return &envelopeStore{folder: folder}
}

func (s *envelopeStore) Entries() []mail.Envelope {
	return cloneEnvelopes(s.entries)
}

func (s *envelopeStore) SetEntries(entries []mail.Envelope) {
	s.entries = cloneEnvelopes(entries)
}

func (s *envelopeStore) Folder() string {
	return s.folder
}

func (s *envelopeStore) SetFolder(folder string) {
	if folder != s.folder {
		s.entries = nil
	}
	s.folder = folder
}

func (s *envelopeStore) Folders() []string {
	return append([]string(nil), s.folders...)
}

func (s *envelopeStore) SetFolders(folders []string) {
	s.folders = append([]string(nil), folders...)
}

func cloneEnvelopes(entries []mail.Envelope) []mail.Envelope {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]mail.Envelope, len(entries))
	copy(dup, entries)
	return dup
}
