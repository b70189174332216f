package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TimerPanelData struct {
	Session      string
	State        string
	Clock        string
	Indicator    string
	ProgressView string
	Completed    int
	Today        int
	TodayKnown   bool
	ActiveTask   string
	Width        int
	Focused      bool
}

type TaskRowData struct {
	Text    string
	Focused bool
}

type TaskSectionData struct {
	Title  string
	Rows   []TaskRowData
	Active bool
	Offset int
	Total  int
}

type TasksPanelData struct {
	Sections []TaskSectionData
	FilePath string
	Width    int
	Focused  bool
}

type SyncRowData struct {
	Text       string
	Resolution string
	Focused    bool
}

type SyncOverlayData struct {
	Path  string
	Items []SyncRowData
	Width int
}

type TaskInputData struct {
	Title     string
	InputView string
	Width     int
}

type HelpOverlayData struct {
	Panel    string
	Markdown string
	HelpView string
	Width    int
}

var sessionColors = map[string]lipgloss.Color{
	"Work":        lipgloss.Color("9"),
	"Short Break": lipgloss.Color("10"),
	"Long Break":  lipgloss.Color("12"),
}

var resolutionColors = map[string]lipgloss.Color{
	"[ ]": lipgloss.Color("12"),
	"[x]": lipgloss.Color("10"),
	"[~]": lipgloss.Color("9"),
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	sessionStyle := titleStyle.Foreground(sessionColors[data.Session])
	b.WriteString(sessionStyle.Render(strings.ToUpper(data.Session)) + "\n\n")
	if data.Width == 0 || data.Width >= TimerMinWidth {
		for _, row := range BigClock(data.Clock) {
			b.WriteString(row + "\n")
		}
	} else {
		b.WriteString(titleStyle.Render(data.Clock) + "\n")
	}
	b.WriteString("\n")
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	switch data.State {
	case "running":
		b.WriteString(strings.TrimSpace(data.Indicator+" Running") + "\n")
	case "paused":
		b.WriteString(mutedStyle.Render("Paused") + "\n")
	default:
		b.WriteString(mutedStyle.Render("Press [Space] to start") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Sessions completed: %d\n", data.Completed))
	if data.TodayKnown {
		b.WriteString(fmt.Sprintf("Today: %d pomodoros\n", data.Today))
	}
	b.WriteString("\n" + titleStyle.Render("Current Task") + "\n")
	if data.ActiveTask == "" {
		b.WriteString(mutedStyle.Render("No task selected"))
	} else {
		b.WriteString(data.ActiveTask)
	}
	return RenderPanel("Timer", b.String(), data.Width, data.Focused)
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	for i, section := range data.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		renderTaskSection(&b, section)
	}
	if data.FilePath != "" {
		b.WriteString("\n" + mutedStyle.Render("file: "+data.FilePath))
	} else {
		b.WriteString("\n" + mutedStyle.Render("file: (none, [s] creates the default)"))
	}
	return RenderPanel("Tasks", b.String(), data.Width, data.Focused)
}

func renderTaskSection(b *strings.Builder, section TaskSectionData) {
	title := fmt.Sprintf("%s (%d)", section.Title, section.Total)
	if section.Active {
		b.WriteString(keyStyle.Render(title) + "\n")
	} else {
		b.WriteString(titleStyle.Render(title) + "\n")
	}
	if len(section.Rows) == 0 {
		b.WriteString(mutedStyle.Render("  (empty)") + "\n")
		return
	}
	if section.Offset > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d above", section.Offset)) + "\n")
	}
	for _, row := range section.Rows {
		cursor := " "
		if row.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, row.Text))
	}
	if below := section.Total - section.Offset - len(section.Rows); below > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d below", below)) + "\n")
	}
}

func RenderSyncOverlay(data SyncOverlayData) string {
	var b strings.Builder
	if data.Path != "" {
		b.WriteString(mutedStyle.Render(data.Path) + "\n")
	}
	b.WriteString("\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("  No changes") + "\n")
	}
	for _, item := range data.Items {
		prefix := "  "
		if item.Focused {
			prefix = "> "
		}
		box := lipgloss.NewStyle().Foreground(resolutionColors[item.Resolution]).Render(item.Resolution)
		b.WriteString(prefix + box + " " + item.Text + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Shortcut("Space", "incomplete", "x", "complete", "d", "remove") + "\n")
	b.WriteString(Shortcut("j/k", "navigate", "Enter", "apply", "Esc", "cancel"))
	return RenderPanel("Sync", b.String(), data.Width, true)
}

func RenderTaskInput(data TaskInputData) string {
	body := data.InputView + "\n\n" + Shortcut("Enter", "add", "Esc", "cancel")
	return RenderPanel(data.Title, body, data.Width, true)
}

func RenderErrorOverlay(message string, width int) string {
	body := errorStyle.Render(message) + "\n\n" + mutedStyle.Render("Press any key to dismiss")
	style := panelStyle.BorderForeground(lipgloss.Color("9"))
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(titleStyle.Render("Error") + "\n" + body)
}

func RenderHelpOverlay(data HelpOverlayData) string {
	var b strings.Builder
	if md := RenderMarkdown(data.Markdown); md != "" {
		b.WriteString(md + "\n\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return RenderPanel("Help: "+data.Panel+" Panel", strings.TrimRight(b.String(), "\n"), data.Width, true)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}
