package websocket

import (
	"codeberg.org/renderjam/server/internal/extract"
)

// message types sent over the refinement stream
const (
	TypeRound = "round"
	TypeDone  = "done"
	TypeError = "error"
)

// first (and only) client message on a refinement stream
type RefineRequest struct {
	Prompt     string `json:"prompt"`
	CodeMode   bool   `json:"code_mode,omitempty"`
	Attachment *struct {
		Data     string `json:"data"`
		MimeType string `json:"mime_type"`
	} `json:"attachment,omitempty"`
}

// emitted after every completed refinement round
type RoundMessage struct {
	Type       string `json:"type"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Preview    string `json:"preview,omitempty"` // truncated round output
}

// emitted once when the sequence completes
type DoneMessage struct {
	Type       string         `json:"type"`
	Text       string         `json:"text"`
	Extraction extract.Result `json:"extraction"`
}

// emitted when the sequence aborts
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
