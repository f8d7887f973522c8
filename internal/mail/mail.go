// Package mail defines the envelope and message model the UI lists and
// previews, and the Provider interface backends implement.
package mail

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

const (
	DefaultFolder   = "INBOX"
	DefaultPageSize = 50

	// DateLayout is how envelope dates are shown.
	DateLayout = "2006-01-02 15:04-07:00"
)

var (
	ErrNotFound = errors.New("message not found")
	ErrNoFolder = errors.New("folder not found")
)

// Flag is a message flag in Maildir info letter form.
type Flag rune

const (
	FlagDraft   Flag = 'D'
	FlagFlagged Flag = 'F'
	FlagPassed  Flag = 'P'
	FlagReplied Flag = 'R'
	FlagSeen    Flag = 'S'
	FlagTrashed Flag = 'T'
)

// Flags is a set of flags kept in canonical (sorted) letter order.
type Flags string

// ParseFlags keeps the known flag letters of s, sorted and deduplicated.
func ParseFlags(s string) Flags {
	seen := map[rune]bool{}
	letters := make([]rune, 0, len(s))
	for _, r := range s {
		switch Flag(r) {
		case FlagDraft, FlagFlagged, FlagPassed, FlagReplied, FlagSeen, FlagTrashed:
			if !seen[r] {
				seen[r] = true
				letters = append(letters, r)
			}
		}
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return Flags(letters)
}

func (f Flags) Has(flag Flag) bool {
	return strings.ContainsRune(string(f), rune(flag))
}

// Envelope is the summary of a message shown in a list.
type Envelope struct {
	ID      string
	Folder  string
	Subject string
	From    string
	Date    time.Time
	Flags   Flags
}

func (e Envelope) Seen() bool {
	return e.Flags.Has(FlagSeen)
}

// Message is a full message with its raw content.
type Message struct {
	Envelope
	Raw []byte
}

// Body returns the raw message as text.
func (m Message) Body() string {
	return strings.ReplaceAll(string(m.Raw), "\r\n", "\n")
}

// Provider serves folders, envelopes and messages.
//
// ListEnvelopes returns envelopes newest first. A pageSize of zero or less
// returns every envelope; otherwise page selects the zero based page.
type Provider interface {
	Folders(ctx context.Context) ([]string, error)
	ListEnvelopes(ctx context.Context, folder string, pageSize, page int) ([]Envelope, error)
	Message(ctx context.Context, folder, id string) (Message, error)
}

// Refresher is implemented by providers that cache and can be told to
// re-read their source.
type Refresher interface {
	Refresh(ctx context.Context, folders ...string) error
}

// Watchable is implemented by providers backed by local directories.
type Watchable interface {
	WatchDirs(folder string) ([]string, error)
}

// SortNewestFirst orders envelopes by date, newest first, breaking ties by ID.
func SortNewestFirst(envs []Envelope) {
	sort.SliceStable(envs, func(i, j int) bool {
		if !envs[i].Date.Equal(envs[j].Date) {
			return envs[i].Date.After(envs[j].Date)
		}
		return envs[i].ID < envs[j].ID
	})
}

// Page slices envs for the given page. Out of range pages are empty.
func Page(envs []Envelope, pageSize, page int) []Envelope {
	if pageSize <= 0 {
		return envs
	}
	if page < 0 {
		page = 0
	}
	start := page * pageSize
	if start >= len(envs) {
		return []Envelope{}
	}
	end := start + pageSize
	if end > len(envs) {
		end = len(envs)
	}
	return envs[start:end]
}
