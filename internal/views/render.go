package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	Width       int
	Panels      []string
	Overlay     string
	Palette     string
	StatusLine  string
	StatusError bool
	Footer      string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	focusedColor = lipgloss.Color("14")
	blurredColor = lipgloss.Color("8")
)

// RenderApp stacks header, panels (or the active overlay), palette, status
// and footer.
func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}
	switch {
	case data.Overlay != "":
		lines = append(lines, data.Overlay)
	case len(data.Panels) > 0:
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, data.Panels...))
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderPanel draws a titled, bordered box. Focused panels get the accent
// border color.
func RenderPanel(title, body string, width int, focused bool) string {
	style := panelStyle.BorderForeground(blurredColor)
	if focused {
		style = style.BorderForeground(focusedColor)
	}
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(titleStyle.Render(title) + "\n" + body)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Shortcut renders "[key] action" pairs separated by two spaces.
func Shortcut(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render("["+pairs[i]+"]")+" "+pairs[i+1])
	}
	return strings.Join(parts, "  ")
}
