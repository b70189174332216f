package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/pomo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	var md strings.Builder
	md.WriteString(fmt.Sprintf("## %s panel\n\n", m.ActivePanel))
	for _, kb := range m.panelBindings() {
		md.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	md.WriteString("\n## Global\n\n")
	for _, kb := range globalBindings() {
		md.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	md.WriteString("\n## Commands\n\n")
	md.WriteString("`add <text>`, `now <text>`, `edit <text>`, `sync`, `session work|short|long`, `stats`\n")

	short := toKeyBindings(globalBindings())
	return views.RenderHelpOverlay(views.HelpOverlayData{
		Panel:    m.ActivePanel.String(),
		Markdown: md.String(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: short,
			full:  [][]key.Binding{short, toKeyBindings(m.panelBindings())},
		}),
		Width: m.overlayWidth(),
	})
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "t", Action: "switch panel focus"},
		{Key: "T", Action: "toggle tasks panel"},
		{Key: "s", Action: "sync with file"},
		{Key: ":", Action: "command palette"},
		{Key: "?", Action: "toggle help"},
		{Key: "q/Q/esc", Action: "quit"},
	}
}

func (m Model) panelBindings() []KeyBinding {
	switch m.ActivePanel {
	case PanelTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "ctrl+d/ctrl+u", Action: "page down/up"},
			{Key: "tab/shift+tab", Action: "next/previous section"},
			{Key: "J/K", Action: "reorder down/up"},
			{Key: "enter", Action: "toggle backlog/current"},
			{Key: "x", Action: "toggle completion"},
			{Key: "D", Action: "delete"},
			{Key: "a", Action: "add task"},
			{Key: "y", Action: "copy to clipboard"},
		}
	case PanelTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause"},
			{Key: "r", Action: "reset"},
			{Key: "w/b/l", Action: "work/short/long session"},
			{Key: "n", Action: "next session type"},
			{Key: "+/-", Action: "adjust by a minute"},
			{Key: "c", Action: "complete current task"},
		}
	}
	return nil
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
