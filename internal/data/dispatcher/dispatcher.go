package dispatcher

import (
	"github.com/nitidus-mail/nitidus/internal/backend"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/state"
)

type Result struct {
	EnvelopesUpdated bool
	FoldersUpdated   bool
}

type Dispatcher struct {
	store state.EnvelopeStore
}

func New(store state.EnvelopeStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle applies a backend event to the store. Errors and events for a
// folder other than the open one change nothing.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Mail.Error("watch", evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindEnvelopes:
		if evt.Folder != "" && evt.Folder != d.store.Folder() {
			return res
		}
		if envs, ok := evt.Data.([]mail.Envelope); ok {
			d.store.SetEntries(envs)
			events.Mail.List(d.store.Folder(), len(envs))
			res.EnvelopesUpdated = true
		}
	case backend.KindFolders:
		if folders, ok := evt.Data.([]string); ok {
			d.store.SetFolders(folders)
			res.FoldersUpdated = true
		}
	}
	return res
}
