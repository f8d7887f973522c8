// Package mailbox builds the mail screen: the message list over the preview
// of the selected message.
package mailbox

import (
	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/keys"
)

const (
	SlotList control.Slot = iota
	SlotPreview
)

// Screen is the root of the mail screen. Focus cycles between the list and
// the preview.
type Screen struct {
	*control.Composite

	list    *List
	preview *Preview
}

func NewScreen(folder string, km keys.KeyMap) *Screen {
	s := &Screen{
		list:    NewList(folder, km),
		preview: NewPreview(km),
	}
	s.Composite = control.NewComposite("mail", []control.Child{
		{Slot: SlotList, Name: "list", Control: s.list},
		{Slot: SlotPreview, Name: "preview", Control: s.preview},
	}, control.WithFocusKeys(km.Focus))
	return s
}

func (s *Screen) List() *List { return s.list }

func (s *Screen) Preview() *Preview { return s.preview }

// Resize lays the screen out in a width by height area.
func (s *Screen) Resize(width, height int) {
	s.preview.SetSize(width, max(height-ListRows, 0))
}
