package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/state"
)

const appName = "marquee"

// renderHeader renders the one-line status bar.
func (m Model) renderHeader(snap state.Snapshot) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	mode := "Popular"
	if snap.DebouncedText != "" {
		mode = "Search: " + truncateQuery(snap.DebouncedText, m.width/3)
	}

	status := statusLine(snap.Loading, snap.LastOutcome, snap.ErrorMsg, len(snap.Movies))
	statusStyle := styles.MutedText
	switch status {
	case "searching":
		statusStyle = styles.WarningText
	case "error":
		statusStyle = styles.DangerText
	}

	parts := []string{
		bg.Render(appName, styles.Logo),
		bg.Render(mode, styles.Text),
		bg.Render(status, statusStyle),
	}
	if m.filterExpr != "" && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render("filter: "+m.filterExpr, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, renderBinding(bg, styles, b))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, 2))
}

func renderBinding(bg BgStyle, styles Styles, b key.Binding) string {
	h := b.Help()
	keyStyle := lipgloss.NewStyle().Foreground(styles.Rating.GetForeground())
	return bg.Render(h.Key, keyStyle) + bg.Spaces(1) + bg.Render(h.Desc, styles.MutedText)
}

func truncateQuery(q string, limit int) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return `""`
	}
	if limit < 8 {
		limit = 8
	}
	return fitWidth(q, limit)
}
