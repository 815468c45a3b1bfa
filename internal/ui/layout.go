package ui

import "time"

// Card geometry in terminal cells.
const (
	// CardWidth is the outer width of a card including its border.
	CardWidth = 34

	// CardImageWidth and CardImageHeight bound the thumbnail inside a card.
	CardImageWidth  = CardWidth - 4
	CardImageHeight = 8

	// cardGap separates cards horizontally.
	cardGap = 1
)

// Overlay sizing.
const (
	// formWidth is the outer width of the add/edit dialog.
	formWidth = 56

	// helpWidth is the outer width of the help overlay.
	helpWidth = 44
)

// Activity log limits.
const (
	// LogTailLines is how many log lines the activity overlay reads.
	LogTailLines = 500

	// logRefreshInterval is how often the open overlay rereads the log.
	logRefreshInterval = 2 * time.Second
)
