package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/holonet/internal/detail"
	"github.com/five82/holonet/internal/prefs"
	"github.com/five82/holonet/internal/swapi"
)

// Static list and search texts.
const (
	listLoadingText   = "Loading characters from a galaxy far, far away…"
	listErrorText     = "Failed to load characters. Please try again."
	searchLoadingText = "Scanning the galaxy…"
	searchErrorText   = "Search failed. Please try again."
	searchIdleText    = "Start typing in the search bar above to find characters"
	searchRetryText   = "Try a different search term"
)

// handleListKey processes keyboard input for list and search routes.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		next := m.goBack()
		return m, next
	case key.Matches(msg, m.keys.NextPage):
		next := m.changePage(1)
		return m, next
	case key.Matches(msg, m.keys.PrevPage):
		next := m.changePage(-1)
		return m, next
	}

	items := m.results.Results
	count := len(items)
	if count == 0 {
		return m, nil
	}
	cols := m.gridColumns()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < count {
			m.selected += cols
		}
	case key.Matches(msg, m.keys.Left):
		if cols > 1 && m.selected%cols > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if cols > 1 && m.selected%cols < cols-1 && m.selected+1 < count {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Open):
		next := m.navigate(CharacterRoute(items[m.selected].ID()))
		return m, next
	case key.Matches(msg, m.keys.ToggleFavorite):
		next := m.toggleFavorite(items[m.selected])
		return m, next
	}
	return m, nil
}

// changePage moves the current list or search route by delta pages,
// staying within the known page range.
func (m *Model) changePage(delta int) tea.Cmd {
	if m.route.Kind == RouteCharacter {
		return nil
	}
	total := swapi.TotalPages(m.results.Count)
	target := m.route.Page + delta
	if total == 0 || target < 1 || target > total {
		return nil
	}
	next := m.route
	next.Page = target
	return m.navigate(next)
}

// gridColumns is how many cards fit across; 1 in list layout.
func (m Model) gridColumns() int {
	if m.layout != prefs.LayoutGrid {
		return 1
	}
	w, _ := m.contentSize()
	return max(1, (w-2)/CardWidth)
}

// renderList renders the paginated character list.
func (m Model) renderList() string {
	switch {
	case m.loading:
		return m.renderLoading(listLoadingText)
	case m.loadErr != nil:
		return m.renderError(listErrorText)
	}

	styles := m.theme.Styles()
	total := swapi.TotalPages(m.results.Count)
	title := styles.AccentText.Bold(true).Render(
		fmt.Sprintf("%d characters across the galaxy", m.results.Count))
	if total > 1 {
		title += styles.MutedText.Render(fmt.Sprintf("   Page %d of %d", m.route.Page, total))
	}
	return m.renderResults(title)
}

// renderSearchResults renders the search route.
func (m Model) renderSearchResults() string {
	query := strings.TrimSpace(m.route.Query)
	switch {
	case query == "":
		return m.renderEmpty("⌕", searchIdleText, "")
	case m.loading:
		return m.renderLoading(searchLoadingText)
	case m.loadErr != nil:
		return m.renderError(searchErrorText)
	case m.results.Count == 0:
		return m.renderEmpty("∅", fmt.Sprintf("No characters found for %q", query), searchRetryText)
	}

	styles := m.theme.Styles()
	noun := "characters"
	if m.results.Count == 1 {
		noun = "character"
	}
	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("%d %s found", m.results.Count, noun))
	return m.renderResults(title)
}

// renderResults lays out a title, the current page of characters and the
// pagination bar.
func (m Model) renderResults(title string) string {
	w, h := m.contentSize()
	pager := m.renderPagination(m.route.Page, m.results.Count)

	// title, blank line, body, blank line, pager
	bodyHeight := h - 2
	if pager != "" {
		bodyHeight -= 2
	}

	var body string
	if m.layout == prefs.LayoutGrid {
		body = m.renderGrid(w, bodyHeight)
	} else {
		body = m.renderRows(w, bodyHeight)
	}

	parts := []string{" " + title, "", body}
	if pager != "" {
		parts = append(parts, "", lipgloss.PlaceHorizontal(w, lipgloss.Center, pager))
	}
	return m.fillContent(strings.Join(parts, "\n"))
}

// renderRows renders one character per line.
func (m Model) renderRows(width, height int) string {
	styles := m.theme.Styles()
	items := m.results.Results
	start := scrollStart(m.selected, len(items), height)

	var lines []string
	for i := start; i < len(items) && len(lines) < height; i++ {
		c := items[i]
		id := fmt.Sprintf("#%-4s", c.ID())
		name := truncate(c.Name, 28)
		badges := ""
		if width >= LayoutCompactWidth {
			badges = strings.Join(detail.Badges(c), " · ")
		}
		fav := " "
		if m.store.IsFavorite(c.URL) {
			fav = "♥"
		}

		if i == m.selected {
			text := fmt.Sprintf(" ▸ %s %-28s  %-30s %s", id, name, badges, fav)
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		lines = append(lines, fmt.Sprintf("   %s %s  %s %s",
			styles.AccentText.Render(id),
			styles.Text.Render(fmt.Sprintf("%-28s", name)),
			styles.MutedText.Render(fmt.Sprintf("%-30s", badges)),
			styles.Favorite.Render(fav),
		))
	}
	return strings.Join(lines, "\n")
}

// renderGrid renders characters as bordered cards.
func (m Model) renderGrid(width, height int) string {
	items := m.results.Results
	cols := max(1, (width-2)/CardWidth)
	rows := (len(items) + cols - 1) / cols
	visibleRows := max(1, height/CardHeight)
	firstRow := scrollStart(m.selected/cols, rows, visibleRows)

	var out []string
	for r := firstRow; r < rows && r < firstRow+visibleRows; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(items) {
				break
			}
			cards = append(cards, m.renderCard(items[i], i == m.selected))
		}
		out = append(out, " "+lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(out, "\n")
}

// renderCard draws one grid card: id tag, name, favourite marker, badges.
func (m Model) renderCard(c swapi.Character, selected bool) string {
	styles := m.theme.Styles()
	inner := CardWidth - 4

	border := lipgloss.Color(m.theme.Border)
	if selected {
		border = lipgloss.Color(m.theme.BorderFocus)
	}

	tag := styles.IDTag.Render(" #" + c.ID() + " ")
	fav := " "
	if m.store.IsFavorite(c.URL) {
		fav = styles.Favorite.Render("♥")
	}
	nameWidth := inner - lipgloss.Width(tag) - 3
	nameStyle := styles.Text.Bold(true)
	if selected {
		nameStyle = styles.AccentText.Bold(true)
	}
	name := nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, truncate(c.Name, nameWidth)))
	badges := styles.MutedText.Render(truncate(strings.Join(detail.Badges(c), " · "), inner))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(CardWidth - 2).
		Render(tag + " " + name + " " + fav + "\n" + badges)
}

// scrollStart returns the first visible index so that selected stays in a
// window of size visible.
func scrollStart(selected, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	start := selected - visible + 1
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

// renderLoading renders the spinner with text.
func (m Model) renderLoading(text string) string {
	styles := m.theme.Styles()
	w, h := m.contentSize()
	line := styles.AccentText.Render(m.spinner.View()) + " " + styles.MutedText.Render(text)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, line)
}

// renderError renders a plain error panel. The cause is in the log.
func (m Model) renderError(text string) string {
	styles := m.theme.Styles()
	w, h := m.contentSize()
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 3).
		Render(styles.DangerText.Render(text) + "\n\n" + styles.FaintText.Render("r retry · L activity log"))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, panel)
}

// renderEmpty renders an icon, a message and an optional hint.
func (m Model) renderEmpty(icon, text, hint string) string {
	styles := m.theme.Styles()
	w, h := m.contentSize()
	lines := []string{styles.FaintText.Render(icon), "", styles.Text.Render(text)}
	if hint != "" {
		lines = append(lines, styles.MutedText.Render(hint))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, block)
}

// fillContent pins content to the content area size.
func (m Model) fillContent(content string) string {
	w, h := m.contentSize()
	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(content)
}
