package ui

import (
	"strconv"
	"strings"

	"github.com/five82/holonet/internal/swapi"
)

// pageWindowDelta is how many pages either side of the current one are
// listed before collapsing to an ellipsis.
const pageWindowDelta = 2

// pageGap marks an ellipsis in a page window.
const pageGap = 0

// pageWindow returns the page numbers to show for current of total, with
// pageGap where a run of pages is elided. The first and last pages are
// always present.
func pageWindow(current, total int) []int {
	if total < 1 {
		return nil
	}
	current = min(max(current, 1), total)

	lo := max(1, current-pageWindowDelta)
	hi := min(total, current+pageWindowDelta)

	var out []int
	if lo > 1 {
		out = append(out, 1)
		if lo > 2 {
			out = append(out, pageGap)
		}
	}
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	if hi < total {
		if hi < total-1 {
			out = append(out, pageGap)
		}
		out = append(out, total)
	}
	return out
}

// renderPagination draws "‹ Prev 1 … 3 4 [5] 6 7 … 9 Next ›". Prev and
// Next dim at the ends.
func (m Model) renderPagination(current, count int) string {
	total := swapi.TotalPages(count)
	if total <= 1 {
		return ""
	}
	styles := m.theme.Styles()

	prev := styles.Text.Render("‹ Prev")
	if current <= 1 {
		prev = styles.FaintText.Render("‹ Prev")
	}
	next := styles.Text.Render("Next ›")
	if current >= total {
		next = styles.FaintText.Render("Next ›")
	}

	parts := []string{prev}
	for _, p := range pageWindow(current, total) {
		switch {
		case p == pageGap:
			parts = append(parts, styles.MutedText.Render("…"))
		case p == current:
			parts = append(parts, styles.Selected.Bold(true).Render(" "+strconv.Itoa(p)+" "))
		default:
			parts = append(parts, styles.Text.Render(strconv.Itoa(p)))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}
