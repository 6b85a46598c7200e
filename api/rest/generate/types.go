package generate

import (
	"codeberg.org/renderjam/server/internal/extract"
)

// generation modes accepted by the generate endpoint
const (
	ModeSingle = "single"
	ModeRefine = "refine"
)

// base64-encoded binary payload accompanying a prompt
type AttachmentPayload struct {
	Data     string `json:"data" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
}

type GenerateRequest struct {
	Prompt     string             `json:"prompt" binding:"required"`
	Mode       string             `json:"mode,omitempty"` // "single" (default) or "refine"
	CodeMode   bool               `json:"code_mode,omitempty"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
}

type GenerateResponse struct {
	Text       string         `json:"text"`
	Extraction extract.Result `json:"extraction"`
	Model      string         `json:"model"`
	Rounds     int            `json:"rounds"`
}

type ImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type ImageResponse struct {
	DataURI string `json:"data_uri"`
}

type VideoRequest struct {
	Script string `json:"script" binding:"required"`
}

type VideoResponse struct {
	Frames []string `json:"frames"`
}
