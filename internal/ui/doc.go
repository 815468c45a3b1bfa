// Package ui provides the terminal interface for the pet gallery.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model.Update is the only place state
// changes: key presses drive the gallery.Controller, controller operations run
// as tea.Cmds and come back as opResultMsg, and notification expiries arrive as
// notificationExpiredMsg after a tea.Tick.
//
// # Package Structure
//
//   - app.go: Model, message types, key dispatch and the Run entry point
//   - view.go: header, notification strip, card grid and empty/error screens
//   - card.go: the card presenter and per-card state (expanded, imageError)
//   - form.go, confirm.go, modal.go: add/edit dialog and delete confirmation
//   - logs.go: activity log overlay backed by internal/logtail
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go, style_helpers.go: color themes and background-aware styles
//
// # Cards
//
// Card state is keyed by pet id and lives as long as the pet is in the
// controller's list. When an image fails to load, the card switches to
// PlaceholderImage for the rest of its lifetime.
//
// # Key Bindings
//
// Gallery:
//   - a: Add pet
//   - e: Edit selected pet
//   - d: Delete selected pet (asks first)
//   - enter/space: Show more / show less
//   - r: Reload from the server
//   - c: Toggle compact cards
//   - L: Activity log
//   - T: Cycle theme
//   - h/?: Help
//   - q: Quit
//
// Dialogs:
//   - tab/shift+tab: Move between fields
//   - ctrl+s: Submit
//   - y/n: Confirm or cancel a delete
//   - esc: Close
package ui
