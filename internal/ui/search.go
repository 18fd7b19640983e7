package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusSearchBar moves key input to the search bar.
func (m *Model) focusSearchBar() tea.Cmd {
	m.focus = focusSearch
	m.suggestion = -1
	m.resize()
	return tea.Batch(m.searchInput.Focus(), textinput.Blink)
}

// blurSearchBar returns key input to the content area.
func (m *Model) blurSearchBar() {
	m.searchInput.Blur()
	m.focus = focusContent
	m.suggestion = -1
	m.resize()
}

// handleSearchKey processes keyboard input while the search bar has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := m.suggestions()

	switch msg.String() {
	case "esc":
		m.blurSearchBar()
		return m, nil

	case "enter":
		value := m.searchInput.Value()
		if m.suggestion >= 0 && m.suggestion < len(suggestions) {
			value = suggestions[m.suggestion]
			m.searchInput.SetValue(value)
			m.searchInput.CursorEnd()
		}
		m.blurSearchBar()
		next := m.dispatchSearch(value)
		return m, next

	case "down", "ctrl+n", "tab":
		if len(suggestions) > 0 {
			m.suggestion = (m.suggestion + 1) % len(suggestions)
		}
		return m, nil

	case "up", "ctrl+p", "shift+tab":
		if len(suggestions) > 0 {
			if m.suggestion <= 0 {
				m.suggestion = len(suggestions) - 1
			} else {
				m.suggestion--
			}
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	m.suggestion = -1
	m.resize()
	next := tea.Batch(cmd, m.debounceSearch())
	return m, next
}

// debounceSearch restarts the quiet period. Each call supersedes every
// earlier pending tick.
func (m *Model) debounceSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// dispatchSearch acts on a settled query: a non-blank query opens its
// results and is remembered; a blank one leaves a search route for the
// list.
func (m *Model) dispatchSearch(raw string) tea.Cmd {
	// Nothing pending may fire after an explicit dispatch.
	m.searchSeq++

	query := strings.TrimSpace(raw)
	if query == "" {
		if m.route.Kind == RouteSearch {
			return m.navigate(ListRoute(1))
		}
		return nil
	}

	m.store.AddToSearchHistory(query)
	return m.navigate(SearchRoute(query))
}

// suggestions lists remembered searches matching the current input. They
// only show while the bar has focus.
func (m Model) suggestions() []string {
	if m.focus != focusSearch {
		return nil
	}
	matches := m.store.HistoryMatching(m.searchInput.Value())
	if len(matches) > SuggestionLimit {
		matches = matches[:SuggestionLimit]
	}
	return matches
}

// renderSearchBar renders the search input line and any suggestions.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	icon := styles.MutedText
	if m.focus == focusSearch {
		icon = styles.AccentText
	}

	input := m.searchInput
	input.Width = max(m.width-8, 10)
	input.TextStyle = styles.Text.Background(lipgloss.Color(m.theme.Background))
	input.PlaceholderStyle = styles.FaintText.Background(lipgloss.Color(m.theme.Background))

	line := bg.Render(" ⌕", icon) + bg.Space() + input.View()
	lines := []string{bg.FillLine(line, m.width)}

	suggestions := m.suggestions()
	if len(suggestions) > 0 {
		lines = append(lines, bg.FillLine(bg.Spaces(3)+bg.Render("Recent searches", styles.FaintText), m.width))
		for i, s := range suggestions {
			text := "  ↺ " + truncate(s, m.width-8)
			if i == m.suggestion {
				lines = append(lines, styles.Selected.Width(m.width).Render(text))
				continue
			}
			lines = append(lines, bg.FillLine(bg.Render(text, styles.Text), m.width))
		}
	}
	return strings.Join(lines, "\n")
}

// searchBarHeight is the number of lines renderSearchBar produces.
func (m Model) searchBarHeight() int {
	n := len(m.suggestions())
	if n == 0 {
		return 1
	}
	return 2 + n
}
