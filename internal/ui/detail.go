package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/holonet/internal/detail"
)

const (
	detailLoadingText = "Accessing galactic records…"
	detailErrorText   = "Failed to load character details. Please try again."
)

// handleDetailKey processes keyboard input for the character screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		next := m.goBack()
		return m, next

	case key.Matches(msg, m.keys.ToggleFavorite):
		if m.view == nil {
			return m, nil
		}
		cmd := m.toggleFavorite(m.view.Character)
		m.refreshDetailContent()
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		m.detailViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	}
	return m, nil
}

// refreshDetailContent re-renders the loaded view into the viewport,
// keeping the scroll position.
func (m *Model) refreshDetailContent() {
	if m.view == nil || m.detailViewport.Width <= 0 {
		return
	}
	offset := m.detailViewport.YOffset
	m.detailViewport.SetContent(m.renderDetailContent(*m.view, m.detailViewport.Width))
	m.detailViewport.SetYOffset(offset)
}

// renderDetail renders the character route.
func (m Model) renderDetail() string {
	switch {
	case m.loading:
		return m.renderLoading(detailLoadingText)
	case m.loadErr != nil:
		return m.renderError(detailErrorText)
	case m.view == nil:
		return m.fillContent("")
	}
	return m.fillContent(m.detailViewport.View())
}

// renderDetailContent renders every section that has something to show.
// Absent sections are skipped; failed ones leave a one-line notice.
func (m Model) renderDetailContent(v detail.View, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	var b strings.Builder

	m.renderHero(&b, v, styles, bg)

	if attrs := detail.CharacterAttrs(v.Character); len(attrs) > 0 {
		m.renderSectionTitle(&b, "Physical", styles)
		m.renderAttrs(&b, attrs, styles, bg)
	}

	switch v.Homeworld.Outcome {
	case detail.Loaded:
		if planet, ok := v.Planet(); ok {
			m.renderSectionTitle(&b, "Homeworld", styles)
			m.renderAttrs(&b, detail.PlanetAttrs(planet), styles, bg)
		}
	case detail.Failed:
		m.renderSectionTitle(&b, "Homeworld", styles)
		m.renderSectionFailure(&b, "homeworld", styles)
	}

	switch v.Species.Outcome {
	case detail.Loaded:
		m.renderSectionTitle(&b, fmt.Sprintf("Species (%d)", len(v.Species.Items)), styles)
		for i, s := range v.Species.Items {
			if i > 0 {
				b.WriteString("\n")
			}
			m.renderAttrs(&b, detail.SpeciesAttrs(s), styles, bg)
		}
	case detail.Failed:
		m.renderSectionTitle(&b, "Species", styles)
		m.renderSectionFailure(&b, "species", styles)
	}

	switch v.Films.Outcome {
	case detail.Loaded:
		m.renderSectionTitle(&b, fmt.Sprintf("Films (%d)", len(v.Films.Items)), styles)
		m.renderFilms(&b, v, width, styles)
	case detail.Failed:
		m.renderSectionTitle(&b, "Films", styles)
		m.renderSectionFailure(&b, "films", styles)
	}

	return b.String()
}
