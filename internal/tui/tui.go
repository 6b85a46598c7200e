// Package tui provides an interactive terminal client for the renderjam
// generation server. It connects over the REST API, so the server must be
// running before the TUI is started.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func NewModel(width, height int) Model {
	return Model{
		state:   StateWelcome,
		width:   width,
		height:  height,
		welcome: NewWelcome(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.chat != nil {
			cmd, _ := m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.state == StateChat {
				m.state = StateWelcome
				m.chat = nil
				return m, nil
			}
		}

	case EnterChatMsg:
		m.state = StateChat
		m.chat = NewChatModel(msg.Mode, m.width, m.height)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	switch m.state {
	case StateWelcome:
		cmd, quitCmd := m.welcome.Update(msg)
		if quitCmd != nil {
			return m, quitCmd
		}
		return m, cmd
	case StateChat:
		cmd, sendCmd := m.chat.Update(msg)
		if sendCmd != nil {
			return m, tea.Batch(cmd, sendCmd)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n"
	}
	switch m.state {
	case StateChat:
		return m.chat.View()
	default:
		return m.welcome.View(m.width, m.height)
	}
}
