// Package logtail reads back the tail of petgallery's own zap log.
//
// # Overview
//
// The TUI owns the terminal, so the application logs to a file. Mutation
// failures are only logged, never shown on screen; this package lets the
// activity log overlay read them back.
//
// Read extracts the last N lines with a ring buffer and parses each one:
//
//	{"level":"error","time":"2026-10-19T10:00:00Z","msg":"delete pet failed","id":3}
//
// becomes an Entry with Level "ERROR", Message "delete pet failed" and
// Fields {"id": "3"}. Lines that are not JSON are kept verbatim in Entry.Raw.
//
// # Formatting
//
// Entry.Format renders the header the way the overlay colorizes it:
//
//	2026-10-19 10:00:00 ERROR – delete pet failed
//	    - id: 3
//
// # Error Handling
//
// A missing log file is not an error; Read returns nil, nil. Open and scan
// failures are wrapped and returned.
package logtail
