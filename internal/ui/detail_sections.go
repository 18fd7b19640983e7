package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/holonet/internal/detail"
)

// attrLabelWidth aligns attribute values in one column.
const attrLabelWidth = 16

// renderHero renders the id tag, name, badges and favourite state.
func (m *Model) renderHero(b *strings.Builder, v detail.View, styles Styles, bg BgStyle) {
	c := v.Character

	b.WriteString(" ")
	b.WriteString(styles.IDTag.Render(" #" + c.ID() + " "))
	b.WriteString("  ")
	b.WriteString(styles.AccentText.Bold(true).Render(strings.ToUpper(c.Name)))
	b.WriteString("\n")

	if badges := detail.Badges(c); len(badges) > 0 {
		var rendered []string
		for _, badge := range badges {
			rendered = append(rendered, styles.Badge.Render(titleCase(badge)))
		}
		b.WriteString(" ")
		b.WriteString(strings.Join(rendered, " "))
		b.WriteString("\n")
	}

	b.WriteString(" ")
	if m.store.IsFavorite(c.URL) {
		b.WriteString(styles.Favorite.Render("♥ "))
		b.WriteString(bg.Render("s  Remove from Favourites", styles.MutedText))
	} else {
		b.WriteString(styles.FaintText.Render("♡ "))
		b.WriteString(bg.Render("s  Add to Favourites", styles.MutedText))
	}
	b.WriteString("\n")
}

// renderSectionTitle writes a blank line and an upper-case heading.
func (m *Model) renderSectionTitle(b *strings.Builder, title string, styles Styles) {
	b.WriteString("\n ")
	b.WriteString(styles.AccentText.Bold(true).Render(strings.ToUpper(title)))
	b.WriteString("\n")
}

// renderAttrs writes label/value rows.
func (m *Model) renderAttrs(b *strings.Builder, attrs []detail.Attr, styles Styles, bg BgStyle) {
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-*s", attrLabelWidth, a.Label)))
		b.WriteString(bg.Render(a.Value, styles.Text))
		b.WriteString("\n")
	}
}

// renderSectionFailure notes a section that could not be loaded.
func (m *Model) renderSectionFailure(b *strings.Builder, name string, styles Styles) {
	b.WriteString(" ")
	b.WriteString(styles.WarningText.Render(fmt.Sprintf("Could not load %s.", name)))
	b.WriteString(styles.FaintText.Render(" r to retry"))
	b.WriteString("\n")
}

// renderFilms writes films in episode order with byline and crawl preview.
func (m *Model) renderFilms(b *strings.Builder, v detail.View, width int, styles Styles) {
	indent := strings.Repeat(" ", 9)
	wrap := lipgloss.NewStyle().Width(max(width-len(indent)-2, 20))

	for i, f := range v.Films.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-8s", fmt.Sprintf("Ep. %d", f.EpisodeID))))
		b.WriteString(styles.Text.Bold(true).Render(f.Title))
		b.WriteString("\n")

		if byline := detail.FilmByline(f); byline != "" {
			b.WriteString(indent)
			b.WriteString(styles.MutedText.Render(byline))
			b.WriteString("\n")
		}

		if crawl := detail.CrawlPreview(f.OpeningCrawl); crawl != "" {
			for _, line := range strings.Split(wrap.Render(crawl), "\n") {
				b.WriteString(indent)
				b.WriteString(styles.FaintText.Render(strings.TrimRight(line, " ")))
				b.WriteString("\n")
			}
		}
	}
}
