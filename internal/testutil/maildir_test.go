package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMaildirFixtureLayout(t *testing.T) {
	md := NewMaildir(t, "Archive")
	path := md.Add(t, Message{ID: "1", Subject: "hello", From: "a@example.com", Flags: "S"})
	if filepath.Base(path) != "1:2,S" || filepath.Base(filepath.Dir(path)) != "cur" {
		t.Fatalf("unexpected fixture path %s", path)
	}
	fresh := md.Add(t, Message{Folder: "Archive", ID: "2", New: true, Body: "line\n"})
	if !strings.Contains(fresh, filepath.Join(".Archive", "new")) {
		t.Fatalf("expected new message under .Archive/new, got %s", fresh)
	}
	data, err := os.ReadFile(fresh)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if !strings.HasSuffix(string(data), "\r\n\r\nline\r\n") {
		t.Fatalf("expected CRLF body, got %q", string(data))
	}
}
