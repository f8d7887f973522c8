// Package maildir serves mail from Maildir directories. INBOX is the root
// Maildir unless an INBOX sub-directory exists; other folders are
// sub-directories, with or without the Maildir++ leading dot.
package maildir

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	netmail "net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emersion/go-message/charset"

	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/mail"
)

var subdirs = []string{"cur", "new"}

// Store is a mail.Provider over a Maildir tree.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// Folders lists the Maildir folders under the root, INBOX first.
func (s *Store) Folders(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read maildir root: %w", err)
	}
	var folders []string
	seen := map[string]bool{}
	if isMaildir(s.root) {
		folders = append(folders, mail.DefaultFolder)
		seen[mail.DefaultFolder] = true
	}
	var rest []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == "cur" || name == "new" || name == "tmp" {
			continue
		}
		if !isMaildir(filepath.Join(s.root, name)) {
			continue
		}
		folder := strings.TrimPrefix(name, ".")
		if strings.EqualFold(folder, mail.DefaultFolder) {
			folder = mail.DefaultFolder
		}
		if seen[folder] {
			continue
		}
		seen[folder] = true
		if folder == mail.DefaultFolder {
			folders = append([]string{folder}, folders...)
			continue
		}
		rest = append(rest, folder)
	}
	sort.Strings(rest)
	return append(folders, rest...), nil
}

// WatchDirs returns the directories whose changes affect folder's listing.
func (s *Store) WatchDirs(folder string) ([]string, error) {
	dir, err := s.folderDir(folder)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(subdirs))
	for _, sub := range subdirs {
		out = append(out, filepath.Join(dir, sub))
	}
	return out, nil
}

func (s *Store) ListEnvelopes(ctx context.Context, folder string, pageSize, page int) ([]mail.Envelope, error) {
	if folder == "" {
		folder = mail.DefaultFolder
	}
	dir, err := s.folderDir(folder)
	if err != nil {
		return nil, err
	}
	var envs []mail.Envelope
	for _, sub := range subdirs {
		entries, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", folder, sub, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			path := filepath.Join(dir, sub, entry.Name())
			env, err := readEnvelope(path, folder, entry.Name())
			if err != nil {
				logging.Debugf("skip %s: %v", path, err)
				continue
			}
			envs = append(envs, env)
		}
	}
	mail.SortNewestFirst(envs)
	return mail.Page(envs, pageSize, page), nil
}

func (s *Store) Message(ctx context.Context, folder, id string) (mail.Message, error) {
	if folder == "" {
		folder = mail.DefaultFolder
	}
	dir, err := s.folderDir(folder)
	if err != nil {
		return mail.Message{}, err
	}
	for _, sub := range subdirs {
		entries, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil {
			return mail.Message{}, fmt.Errorf("read %s/%s: %w", folder, sub, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return mail.Message{}, err
			}
			if entry.IsDir() {
				continue
			}
			if got, _ := splitName(entry.Name()); got != id {
				continue
			}
			path := filepath.Join(dir, sub, entry.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				return mail.Message{}, fmt.Errorf("read message %s: %w", id, err)
			}
			env, err := readEnvelope(path, folder, entry.Name())
			if err != nil {
				env = mail.Envelope{ID: id, Folder: folder}
			}
			return mail.Message{Envelope: env, Raw: raw}, nil
		}
	}
	return mail.Message{}, fmt.Errorf("%w: %s/%s", mail.ErrNotFound, folder, id)
}

func (s *Store) folderDir(folder string) (string, error) {
	candidates := []string{
		filepath.Join(s.root, folder),
		filepath.Join(s.root, "."+folder),
	}
	if strings.EqualFold(folder, mail.DefaultFolder) {
		candidates = append(candidates, s.root)
	}
	for _, dir := range candidates {
		if isMaildir(dir) {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %s", mail.ErrNoFolder, folder)
}

func isMaildir(dir string) bool {
	for _, sub := range subdirs {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// splitName separates the unique part of a Maildir file name from its flags.
func splitName(name string) (string, mail.Flags) {
	idx := strings.LastIndex(name, ":")
	if idx < 0 {
		return name, ""
	}
	info := name[idx+1:]
	if !strings.HasPrefix(info, "2,") {
		return name[:idx], ""
	}
	return name[:idx], mail.ParseFlags(info[2:])
}

// wordDecoder understands every charset go-message knows, not only the
// UTF-8 and ISO-8859-1 pair built into mime.
var (
	wordDecoder   = &mime.WordDecoder{CharsetReader: charset.Reader}
	addressParser = &netmail.AddressParser{WordDecoder: wordDecoder}
)

func readEnvelope(path, folder, name string) (mail.Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return mail.Envelope{}, err
	}
	defer f.Close()

	msg, err := netmail.ReadMessage(bufio.NewReader(io.LimitReader(f, 1<<20)))
	if err != nil {
		return mail.Envelope{}, fmt.Errorf("parse headers: %w", err)
	}
	id, flags := splitName(name)
	env := mail.Envelope{
		ID:      id,
		Folder:  folder,
		Subject: decodeHeader(msg.Header.Get("Subject")),
		From:    formatFrom(msg.Header.Get("From")),
		Flags:   flags,
	}
	if date, err := msg.Header.Date(); err == nil {
		env.Date = date
	} else if info, err := f.Stat(); err == nil {
		env.Date = info.ModTime()
	}
	return env, nil
}

func decodeHeader(value string) string {
	decoded, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

func formatFrom(value string) string {
	if value == "" {
		return ""
	}
	addr, err := addressParser.Parse(value)
	if err != nil {
		return decodeHeader(value)
	}
	if addr.Name != "" {
		return addr.Name
	}
	return addr.Address
}
