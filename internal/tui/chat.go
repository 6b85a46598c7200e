package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func NewChatModel(mode string, width, height int) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder(mode)
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := &ChatModel{
		mode:    mode,
		input:   ti,
		spinner: sp,
		client:  NewAPIClient(),
		width:   width,
		height:  height,
	}
	m.layout(width, height)
	return m
}

func inputPlaceholder(mode string) string {
	switch mode {
	case ModeImage:
		return "describe the image"
	case ModeVideo:
		return "scene one \\n\\n scene two \\n\\n scene three"
	default:
		return "what should we make?"
	}
}

func (m *ChatModel) layout(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-4),
		)
		if err == nil {
			m.glamourRenderer = renderer
		}
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 4
	m.refreshTranscript()
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Cmd, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return nil, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.isFetching {
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" {
				return nil, nil
			}
			m.input.SetValue("")
			m.messages = append(m.messages, ChatMessage{Role: "user", Content: prompt})
			m.isFetching = true
			m.refreshTranscript()
			return m.spinner.Tick, m.sendCmd(prompt)
		}

	case ResponseMsg:
		m.isFetching = false
		m.messages = append(m.messages, ChatMessage{
			Role:     "assistant",
			Content:  msg.Content,
			Metadata: msg.Metadata,
		})
		m.refreshTranscript()
		return nil, nil

	case ResponseErrorMsg:
		m.isFetching = false
		m.messages = append(m.messages, ChatMessage{
			Role:    "assistant",
			Content: errorStyle.Render(msg.Err.Error()),
		})
		m.refreshTranscript()
		return nil, nil

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd, nil
		}
		return nil, nil
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return tea.Batch(inputCmd, vpCmd), nil
}

// builds the tea command that talks to the server for the active mode
func (m *ChatModel) sendCmd(prompt string) tea.Cmd {
	client := m.client
	mode := m.mode
	return func() tea.Msg {
		switch mode {
		case ModeImage:
			resp, err := client.Image(prompt)
			if err != nil {
				return ResponseErrorMsg{Err: err}
			}
			return ResponseMsg{
				Content:  fmt.Sprintf("generated %d bytes of image data", len(resp.DataURI)),
				Metadata: "image/png 16:9",
			}
		case ModeVideo:
			resp, err := client.Video(prompt)
			if err != nil {
				return ResponseErrorMsg{Err: err}
			}
			return ResponseMsg{
				Content:  fmt.Sprintf("generated %d frames", len(resp.Frames)),
				Metadata: "image/png 16:9",
			}
		default:
			apiMode := "single"
			codeMode := false
			switch mode {
			case ModeRefine:
				apiMode = "refine"
			case ModeCode:
				apiMode = "refine"
				codeMode = true
			}
			resp, err := client.Generate(prompt, apiMode, codeMode)
			if err != nil {
				return ResponseErrorMsg{Err: err}
			}
			meta := resp.Model
			if resp.Rounds > 1 {
				meta = fmt.Sprintf("%s, %d rounds", resp.Model, resp.Rounds)
			}
			return ResponseMsg{Content: resp.Text, Metadata: meta}
		}
	}
}

func (m *ChatModel) refreshTranscript() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.messages {
		if msg.Role == "user" {
			b.WriteString(userMsgStyle.Render("you"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(promptStyle.Render("renderjam"))
		if msg.Metadata != "" {
			b.WriteString(metaStyle.Render("  " + msg.Metadata))
		}
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(msg.Content))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *ChatModel) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content
	}
	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (m *ChatModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.isFetching {
		b.WriteString(statusStyle.Render(m.spinner.View() + fetchingLabel(m.mode)))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("mode: %s  esc: back  ctrl+c: quit", m.mode)))
	return b.String()
}

func fetchingLabel(mode string) string {
	switch mode {
	case ModeRefine, ModeCode:
		return " refining, this can take a while"
	case ModeImage, ModeVideo:
		return " rendering"
	default:
		return " thinking"
	}
}
