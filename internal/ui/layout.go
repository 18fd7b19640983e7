package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which badges and hints are dropped.
	LayoutCompactWidth = 80

	// FavoritesPaneWidth is the width of the favourites side pane.
	FavoritesPaneWidth = 34

	// CardWidth is the outer width of one grid card.
	CardWidth = 30

	// CardHeight is the outer height of one grid card, borders included.
	CardHeight = 4
)

// chromeHeight is the header, command bar and search line above the content.
const chromeHeight = 3

// Activity view limits.
const (
	// ActivityLineLimit is how many log lines the activity view reads.
	ActivityLineLimit = 500
)

// Timing constants.
const (
	// SearchDebounce is the quiet period after the last keystroke before a
	// search is dispatched.
	SearchDebounce = 400 * time.Millisecond

	// StatusFlashDuration is how long a transient status message stays.
	StatusFlashDuration = 3 * time.Second
)

// SuggestionLimit caps the history suggestions shown under the search bar.
const SuggestionLimit = 6
