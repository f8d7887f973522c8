package events

import "github.com/nitidus-mail/nitidus/internal/logging"

type MailTracer struct{}

type ListTracer struct{}

type ClipboardTracer struct{}

type BackendTracer struct{}

var (
	Mail      = MailTracer{}
	List      = ListTracer{}
	Clipboard = ClipboardTracer{}
	Backend   = BackendTracer{}
)

func (MailTracer) List(folder string, count int) {
	logging.Trace("mail.list", map[string]interface{}{"folder": folder, "count": count})
}

func (MailTracer) Load(folder, id string) {
	logging.Trace("mail.load", map[string]interface{}{"folder": folder, "id": id})
}

func (MailTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("mail.error", map[string]interface{}{"op": op, "error": err.Error()})
}

func (ListTracer) Cursor(cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"cursor": cursor})
}

func (ListTracer) Filter(filter string, matches int) {
	logging.Trace("list.filter", map[string]interface{}{"filter": filter, "matches": matches})
}

func (ClipboardTracer) Copy(length int, err error) {
	payload := map[string]interface{}{"length": length}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("clipboard.copy", payload)
}

func (BackendTracer) Refresh(folder, trigger string) {
	logging.Trace("backend.refresh", map[string]interface{}{"folder": folder, "trigger": trigger})
}

func (BackendTracer) Watch(dir string, err error) {
	payload := map[string]interface{}{"dir": dir}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.watch", payload)
}
