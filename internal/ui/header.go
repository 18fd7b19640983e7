package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, breadcrumb and favourites count.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("HOLONET", styles.Logo),
		bg.Render(m.route.Title(), styles.Text),
	}
	if m.showActivity {
		parts = append(parts, bg.Render("Activity", styles.InfoText))
	}

	favorites := len(m.store.Favorites())
	parts = append(parts,
		bg.Render("♥", styles.Favorite)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", favorites), styles.Text))

	if m.loading {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}

	left := bg.Join(parts, "  ")
	right := ""
	if m.status != "" {
		right = bg.Render(m.status, styles.SuccessText)
	} else if m.width >= LayoutCompactWidth {
		right = bg.Render(m.theme.Name, styles.FaintText)
	}

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	content := left
	if gap > 0 && right != "" {
		content = left + bg.Spaces(gap) + right
	} else if right != "" {
		content = left + sep + right
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(content)
}

// renderCommandBar renders the key hints for the focused area.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == focusSearch:
		commands = []cmd{
			{"enter", "Search"},
			{"↑/↓", "Recent"},
			{"esc", "Done"},
		}
	case m.focus == focusFavorites:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"x", "Remove"},
			{"esc", "Close"},
		}
	case m.showActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Refresh"},
			{"esc", "Close"},
			{"?", "More"},
		}
	case m.route.Kind == RouteCharacter:
		label := "Favourite"
		if m.view != nil && m.store.IsFavorite(m.view.Character.URL) {
			label = "Unfavourite"
		}
		commands = []cmd{
			{"s", label},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"/", "Search"},
			{"f", "Favourites"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"n/p", "Page"},
			{"s", "Favourite"},
			{"f", "Favourites"},
			{"v", "Layout"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	return styles.Footer.Width(m.width).MaxHeight(1).Render(bg.Join(segments, "  "))
}
