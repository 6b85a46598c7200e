package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// welcome screen with the mode menu
type Welcome struct {
	input  textinput.Model
	errMsg string
}

type menuEntry struct {
	command     string
	description string
}

var menuEntries = []menuEntry{
	{ModeSingle, "one-shot generation, straight answer"},
	{ModeRefine, "ten refinement rounds before the answer"},
	{ModeCode, "refinement tuned for runnable code output"},
	{ModeImage, "generate a single 16:9 image"},
	{ModeVideo, "three frames from a blank-line separated script"},
	{"quit", "exit"},
}

func NewWelcome() *Welcome {
	ti := textinput.New()
	ti.Placeholder = "type a mode and press enter"
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 32
	ti.Focus()
	return &Welcome{input: ti}
}

func (w *Welcome) Update(msg tea.Msg) (tea.Cmd, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			choice := strings.ToLower(strings.TrimSpace(w.input.Value()))
			w.input.SetValue("")
			switch choice {
			case "quit", "q", "exit":
				return nil, tea.Quit
			case ModeSingle, ModeRefine, ModeCode, ModeImage, ModeVideo:
				w.errMsg = ""
				return nil, func() tea.Msg { return EnterChatMsg{Mode: choice} }
			case "":
				return nil, nil
			default:
				w.errMsg = fmt.Sprintf("unknown mode %q", choice)
				return nil, nil
			}
		}
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd, nil
}

func (w *Welcome) View(width, height int) string {
	var b strings.Builder
	b.WriteString(logoStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render("  iterative generation studio"))
	b.WriteString("\n\n")
	for _, e := range menuEntries {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			menuItemStyle.Render(fmt.Sprintf("%-8s", e.command)),
			menuDescStyle.Render(e.description)))
	}
	b.WriteString("\n")
	if w.errMsg != "" {
		b.WriteString(errorStyle.Render("  " + w.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("  " + w.input.View())

	content := b.String()
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, content)
	}
	return content
}
