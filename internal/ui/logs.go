package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/logtail"
)

type activityMsg struct {
	lines []string
	err   error
}

// loadActivity reads the tail of the log file.
func (m Model) loadActivity() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLineLimit)
		return activityMsg{lines: lines, err: err}
	}
}

func (m *Model) applyActivity(msg activityMsg) {
	m.activityErr = msg.err
	if msg.err != nil {
		m.log.Warn("read activity log failed", logger.String("path", m.logFile), logger.Error(msg.err))
	}
	m.activityLines = msg.lines
	m.refreshActivityContent()
	m.activityViewport.GotoBottom()
}

// refreshActivityContent re-renders the log lines into the viewport.
func (m *Model) refreshActivityContent() {
	if m.activityViewport.Width <= 0 {
		return
	}
	m.activityViewport.SetContent(m.renderActivityContent(m.activityLines))
}

func (m Model) renderActivityContent(lines []string) string {
	styles := m.theme.Styles()
	if len(lines) == 0 {
		return styles.MutedText.Render(" No activity yet.")
	}

	var b strings.Builder
	for _, raw := range lines {
		line := logtail.Parse(raw)
		if line.Level == "" {
			b.WriteString(styles.FaintText.Render(" " + line.Message))
			b.WriteString("\n")
			continue
		}
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(line.Time))
		b.WriteString(" ")
		b.WriteString(styles.LevelStyle(line.Level).Render(padLevel(line.Level)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(line.Message))
		if line.Fields != "" {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(line.Fields))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func padLevel(level string) string {
	if len(level) >= 5 {
		return level
	}
	return level + strings.Repeat(" ", 5-len(level))
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showActivity = false
	case key.Matches(msg, m.keys.Down):
		m.activityViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.activityViewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.activityViewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.activityViewport.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
	}
	return m, nil
}

// renderActivity renders the activity view.
func (m Model) renderActivity() string {
	if m.logFile == "" {
		return m.renderEmpty("≡", "Logging is disabled", "Set log_file in the config to record activity")
	}
	if m.activityErr != nil {
		return m.renderError("Could not read " + truncateMiddle(m.logFile, 60))
	}
	return m.fillContent(m.activityViewport.View())
}
