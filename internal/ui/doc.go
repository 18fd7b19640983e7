// Package ui provides the Bubble Tea terminal interface for holonet.
//
// # Architecture Overview
//
// Model is the root tea.Model. Update is the only place state changes;
// network work runs in tea.Cmd goroutines and reports back as messages.
// The screen is a header, a command bar of key hints, the search bar and
// a content area chosen by the current Route, optionally with the
// favourites pane docked on the right.
//
// # Routes
//
// Routes mirror the paths a browser would show:
//
//   - "/" and "/?page=N": paginated character list (list or grid layout)
//   - "/search?q=term": search results, also paginated
//   - "/character/{id}": detail screen
//
// navigate pushes the current route on a back stack; esc pops it. Moving
// from one search to another replaces the route instead of pushing it.
//
// # Loads
//
// Each route load takes a new generation number and cancels the previous
// load's context. Results carry the generation they were dispatched with
// and are dropped when it is no longer current, so a slow response can
// never overwrite a newer screen.
//
// # Search
//
// Every edit in the search bar bumps a sequence number and schedules a
// SearchDebounce tick. Only the tick whose sequence is still current
// dispatches: a non-blank query opens its results and is added to the
// search history, a blank query on a search route returns to the list.
// Enter dispatches at once. While the bar has focus, matching history
// entries are offered as suggestions.
//
// # Package Structure
//
//   - app.go: Model, Options, Update/View, navigation and loads
//   - routes.go: Route parsing/formatting and the back stack
//   - search.go: search bar, debounce and suggestions
//   - list.go, pagination.go: list/grid rendering and the page bar
//   - detail.go, detail_sections.go: character screen
//   - favorites.go: favourites pane
//   - logs.go: activity view over the log file
//   - header.go, help.go, theme.go, style_helpers.go: chrome and styling
package ui
