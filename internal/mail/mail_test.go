package mail

import (
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	if got := ParseFlags("SRxSF"); got != "FRS" {
		t.Fatalf("expected FRS, got %q", got)
	}
	if !ParseFlags("S").Has(FlagSeen) {
		t.Fatalf("expected seen flag")
	}
	if (Envelope{Flags: ParseFlags("R")}).Seen() {
		t.Fatalf("expected unseen envelope")
	}
}

func TestSortAndPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	envs := []Envelope{
		{ID: "a", Date: base},
		{ID: "b", Date: base.Add(2 * time.Hour)},
		{ID: "c", Date: base.Add(time.Hour)},
		{ID: "d", Date: base.Add(time.Hour)},
	}
	SortNewestFirst(envs)
	var ids string
	for _, e := range envs {
		ids += e.ID
	}
	if ids != "bcda" {
		t.Fatalf("expected bcda, got %s", ids)
	}
	if got := Page(envs, 3, 1); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected second page %+v", got)
	}
	if got := Page(envs, 3, 5); len(got) != 0 {
		t.Fatalf("expected empty page, got %d", len(got))
	}
	if got := Page(envs, 0, 3); len(got) != 4 {
		t.Fatalf("expected all envelopes for page size 0, got %d", len(got))
	}
}

func TestMessageBodyNormalisesLineEndings(t *testing.T) {
	m := Message{Raw: []byte("Subject: hi\r\n\r\nbody\r\n")}
	if m.Body() != "Subject: hi\n\nbody\n" {
		t.Fatalf("unexpected body %q", m.Body())
	}
}
