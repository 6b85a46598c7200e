package websocket

import (
	"encoding/base64"
	"net/http"
	"os"
	"unicode/utf8"

	"codeberg.org/renderjam/server/internal/extract"
	"codeberg.org/renderjam/server/internal/gemini"
	"codeberg.org/renderjam/server/internal/logger"
	"codeberg.org/renderjam/server/internal/studio"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// truncation length for round previews pushed to the client
const previewLength = 400

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// allows any origin outside production; in production the allowed
// origin is pinned to ALLOWED_ORIGIN
func checkOrigin(r *http.Request) bool {
	if os.Getenv("ENVIRONMENT") != "production" {
		return true
	}

	allowed := os.Getenv("ALLOWED_ORIGIN")

	return allowed == "" || r.Header.Get("Origin") == allowed
}

// RefineHandler upgrades the connection, reads a single refinement
// request, streams one round message per completed round and finishes
// with a done (or error) message before closing.
func RefineHandler(service *studio.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "websocket upgrade failed")
			return
		}
		defer conn.Close() //nolint:errcheck

		var req RefineRequest
		if err := conn.ReadJSON(&req); err != nil {
			writeError(conn, "invalid refinement request")
			return
		}

		if req.Prompt == "" {
			writeError(conn, "prompt is required")
			return
		}

		var attachment *gemini.Attachment
		if req.Attachment != nil {
			data, err := base64.StdEncoding.DecodeString(req.Attachment.Data)
			if err != nil {
				writeError(conn, "invalid attachment encoding")
				return
			}

			attachment = &gemini.Attachment{
				Data:     data,
				MimeType: req.Attachment.MimeType,
			}
		}

		progress := func(event studio.RoundEvent) {
			msg := RoundMessage{
				Type:       TypeRound,
				Step:       event.Step,
				TotalSteps: event.TotalSteps,
				Preview:    truncate(event.Output, previewLength),
			}

			if err := conn.WriteJSON(msg); err != nil {
				logger.Warn("failed to push round event", "step", event.Step, "error", err)
			}
		}

		text, err := service.RefineWithProgress(c.Request.Context(), req.Prompt, req.CodeMode, attachment, progress)
		if err != nil {
			writeError(conn, err.Error())
			return
		}

		done := DoneMessage{
			Type:       TypeDone,
			Text:       text,
			Extraction: extract.Extract(text),
		}

		if err := conn.WriteJSON(done); err != nil {
			logger.ErrorErr(err, "failed to send final refinement result")
		}
	}
}

func writeError(conn *websocket.Conn, message string) {
	msg := ErrorMessage{Type: TypeError, Message: message}

	if err := conn.WriteJSON(msg); err != nil {
		logger.ErrorErr(err, "failed to send websocket error")
	}
}

// cuts s to at most n bytes without splitting a multi-byte rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
