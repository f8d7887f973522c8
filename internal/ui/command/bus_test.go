package command

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ deadline bool }

func TestExecuteRunsRequest(t *testing.T) {
	bus := New(time.Second)
	cmd := bus.Execute(Request{ID: "load", Label: "load", Run: func(ctx context.Context) tea.Msg {
		_, ok := ctx.Deadline()
		return doneMsg{deadline: ok}
	}})
	msg, ok := cmd().(doneMsg)
	if !ok {
		t.Fatalf("expected doneMsg, got %T", cmd())
	}
	if !msg.deadline {
		t.Fatalf("expected request context to carry the bus timeout")
	}
}

func TestExecuteWithoutRunReturnsNil(t *testing.T) {
	cmd := New(0).Execute(Request{ID: "noop"})
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message, got %T", msg)
	}
}
