// Package ui contains the Bubble Tea program that drives the account and mail
// screens. The Model is the dispatch loop: it owns both control trees, routes
// each key event to the visible root and renders the tree after every update.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key messages are split into logical key events (internal/keys). Quit and
//     screen switching are handled by the model; every other event goes to the
//     root control, which delegates down its focus chain. An event nobody
//     consumes is traced and dropped.
//   - After a key reaches the mail screen the model looks at the list's
//     selection and starts loading the selected message with a command. The
//     control tree itself never blocks or performs I/O.
//
// State ownership:
//   - Field values and focus live in the control trees (internal/account and
//     internal/ui/mailbox). The list's cursor and filter live in
//     internal/ui/state.List.
//   - Envelopes for the open folder are held by an internal/state store and
//     kept in sync by the dispatcher.
//   - Work outside the tree runs through the internal/ui/command bus.
//
// Backend interactions:
//   - A backend.Watcher streams envelope events; Update waits for those events
//     and hands them to applyBackendEvent, which refreshes the store and the
//     message list. Without a watcher the folder is listed once at start.
package ui
