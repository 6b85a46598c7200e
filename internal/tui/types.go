package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// generation modes selectable from the welcome screen
const (
	ModeSingle = "single" // one-shot text generation
	ModeRefine = "refine" // 10-round refinement
	ModeCode   = "code"   // refinement with the dual code block mandate
	ModeImage  = "image"  // single image generation
	ModeVideo  = "video"  // three-frame batch from a scene script
)

// main TUI application model
type Model struct {
	state   AppState
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// represents a single transcript entry
type ChatMessage struct {
	Role     string // "user" or "assistant"
	Content  string
	Metadata string
}

// interactive chat screen
type ChatModel struct {
	mode            string
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	messages        []ChatMessage
	isFetching      bool
	ready           bool
	width           int
	height          int
	client          *APIClient
}

// sent to transition to the chat state
type EnterChatMsg struct {
	Mode string
}

// sent when the server answers a generation request
type ResponseMsg struct {
	Content  string
	Metadata string
}

// sent when a generation request fails
type ResponseErrorMsg struct {
	Err error
}

// sent when an unrecoverable error occurs
type ErrorMsg struct {
	err error
}
