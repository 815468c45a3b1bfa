// Package gallery holds the view state behind the pet gallery screen.
//
// # Overview
//
// The Controller owns the canonical in-memory list of pets, the lifecycle of
// that list (idle, loading, ready, error), the add/edit/delete dialogs and the
// notification queue fed by successful mutations. It performs no I/O itself:
// every remote call is handed out as an Op and its Result is folded back in
// through Apply.
//
//	UI event loop                       tea.Cmd goroutine
//	┌──────────────────────┐            ┌──────────────────┐
//	│ op := ctrl.Load()    │───────────→│ res := op(ctx)   │
//	│                      │            │  (store.List)    │
//	│ out := ctrl.Apply(res)│←──────────│                  │
//	│ schedule out.Next    │  message   └──────────────────┘
//	│ tick out.Notification│
//	└──────────────────────┘
//
// Ops capture the store and their arguments when created and never read
// controller fields, so running them on another goroutine is safe while all
// state changes stay on the event loop.
//
// # Mutations
//
//   - Add: SubmitAdd is refused until name and species are non-blank. On
//     success the created record is appended, the draft is reset and the add
//     dialog closes. On failure the draft and dialog are kept.
//   - Edit: RequestEdit works on a copy; the list changes only when the update
//     succeeds. ConfirmEdit closes the dialog right away.
//   - Delete: RequestDelete holds the target until ConfirmDelete or
//     CancelDelete. Cancel never reaches the store.
//
// Update and delete results locate the record by id, never by position, so a
// reload that reorders the list between request and response is harmless.
//
// # Failures
//
// A failed load replaces the gallery with LoadErrorMessage. Failed mutations
// are logged with the action, id, HTTP status and request id and otherwise
// ignored; the list is not corrected until the next reload. Setting
// Options.ReconcileOnFailure makes Apply return a reload as Outcome.Next
// instead.
//
// # Notifications
//
// Each successful mutation enqueues exactly one notification and returns it in
// Outcome.Notification. The caller schedules one expiry per notification after
// the queue's ExpiryDelay; expiry always drops the oldest entry.
package gallery
