package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const favoritesEmptyText = "No favourites yet. Press s on a character to add one."

func (m *Model) openFavorites() {
	m.showFavorites = true
	m.focus = focusFavorites
	m.clampFavSelection()
	m.resize()
}

func (m *Model) closeFavorites() {
	m.showFavorites = false
	m.focus = focusContent
	m.resize()
}

func (m *Model) clampFavSelection() {
	n := len(m.store.Favorites())
	if m.favSelected >= n {
		m.favSelected = n - 1
	}
	if m.favSelected < 0 {
		m.favSelected = 0
	}
}

// handleFavoritesKey processes keyboard input while the pane has focus.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.closeFavorites()
		return m, nil
	}

	favorites := m.store.Favorites()
	if len(favorites) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favSelected > 0 {
			m.favSelected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favSelected < len(favorites)-1 {
			m.favSelected++
		}
	case key.Matches(msg, m.keys.Top):
		m.favSelected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favSelected = len(favorites) - 1
	case key.Matches(msg, m.keys.Open):
		c := favorites[m.favSelected]
		m.closeFavorites()
		next := m.navigate(CharacterRoute(c.ID()))
		return m, next
	case key.Matches(msg, m.keys.Remove), key.Matches(msg, m.keys.ToggleFavorite):
		c := favorites[m.favSelected]
		m.store.RemoveFavorite(c.URL)
		m.clampFavSelection()
		m.refreshDetailContent()
		next := m.flash("Removed " + c.Name + " from favourites")
		return m, next
	}
	return m, nil
}

// renderFavoritesPane renders the favourites side pane.
func (m Model) renderFavoritesPane(height int) string {
	styles := m.theme.Styles()
	favorites := m.store.Favorites()
	inner := FavoritesPaneWidth - 4
	focused := m.focus == focusFavorites

	border := lipgloss.Color(m.theme.BorderMuted)
	if focused {
		border = lipgloss.Color(m.theme.BorderFocus)
	}

	var b strings.Builder
	b.WriteString(styles.Favorite.Render("♥ "))
	b.WriteString(styles.Text.Bold(true).Render("Favourites"))
	b.WriteString(" ")
	b.WriteString(styles.Badge.Render(fmt.Sprintf("%d", len(favorites))))
	b.WriteString("\n\n")

	if len(favorites) == 0 {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(styles.MutedText.Render(favoritesEmptyText)))
	} else {
		visible := max(height-5, 1)
		start := scrollStart(m.favSelected, len(favorites), visible)
		for i := start; i < len(favorites) && i < start+visible; i++ {
			c := favorites[i]
			id := fmt.Sprintf("#%-4s", c.ID())
			name := truncate(c.Name, inner-7)
			if focused && i == m.favSelected {
				b.WriteString(styles.Selected.Width(inner).Render(" " + id + " " + name))
			} else {
				b.WriteString(" " + styles.AccentText.Render(id) + " " + styles.Text.Render(name))
			}
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(FavoritesPaneWidth - 2).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(b.String())
}

// renderBody places the content next to the favourites pane when open.
func (m Model) renderBody() string {
	content := m.renderContent()
	if !m.showFavorites {
		return content
	}
	_, h := m.contentSize()
	return lipgloss.JoinHorizontal(lipgloss.Top, content, m.renderFavoritesPane(h))
}
