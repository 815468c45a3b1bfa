// Package app is the composition root of petgallery.
//
// Run loads the TOML config, applies command-line overrides, opens the JSON
// file logger and wires the pieces together:
//
//	Run()
//	  ├─> config.Load()        ~/.config/petgallery/config.toml
//	  ├─> newLogger()          zap JSON log, read back by the activity overlay
//	  ├─> prefs.Load()         theme and compact cards
//	  ├─> petstore.NewClient() REST client for the pet store
//	  ├─> gallery.New()        view state and notification queue
//	  ├─> thumb.NewLoader()    image worker pool (when show_images is on)
//	  └─> ui.Run()             TUI (blocks)
//
// Fatal errors are limited to an unreadable config, an invalid log level or
// log path, and a malformed API URL. A backend that is down is not fatal: the
// gallery shows its load error and the user can retry with r.
package app
