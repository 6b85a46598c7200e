package generate

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"net/http"

	"codeberg.org/renderjam/server/internal/errors"
	"codeberg.org/renderjam/server/internal/extract"
	"codeberg.org/renderjam/server/internal/gemini"
	"codeberg.org/renderjam/server/internal/logger"
	"codeberg.org/renderjam/server/internal/studio"
	"github.com/gin-gonic/gin"
)

// Core is the boundary the handlers consume; implemented by studio.Service.
type Core interface {
	SingleShot(ctx context.Context, prompt string, attachment *gemini.Attachment) (string, error)
	Refine(ctx context.Context, prompt string, codeMode bool, attachment *gemini.Attachment) (string, error)
	Image(ctx context.Context, prompt string) (string, error)
	VideoBatch(ctx context.Context, script string) ([]string, error)
	Model() string
}

// creates a handler for text generation (single-shot or refined)
func Handler(core Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		attachment, err := decodeAttachment(req.Attachment)
		if err != nil {
			errors.BadRequest(c, "invalid attachment encoding", err)
			return
		}

		mode := req.Mode
		if mode == "" {
			mode = ModeSingle
		}

		var text string
		rounds := 1

		switch mode {
		case ModeSingle:
			text, err = core.SingleShot(c.Request.Context(), req.Prompt, attachment)
		case ModeRefine:
			rounds = studio.TotalRefinementSteps
			text, err = core.Refine(c.Request.Context(), req.Prompt, req.CodeMode, attachment)
		default:
			errors.BadRequest(c, "mode must be \"single\" or \"refine\"", nil)
			return
		}

		if err != nil {
			respondGenerationError(c, err)
			return
		}

		logger.Info("generation turn completed",
			"mode", mode,
			"code_mode", req.CodeMode,
			"has_attachment", attachment != nil,
			"output_length", len(text),
		)

		c.JSON(http.StatusOK, GenerateResponse{
			Text:       text,
			Extraction: extract.Extract(text),
			Model:      core.Model(),
			Rounds:     rounds,
		})
	}
}

// creates a handler for single-image generation
func ImageHandler(core Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ImageRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		dataURI, err := core.Image(c.Request.Context(), req.Prompt)
		if err != nil {
			respondGenerationError(c, err)
			return
		}

		c.JSON(http.StatusOK, ImageResponse{DataURI: dataURI})
	}
}

// creates a handler for three-frame video batch generation
func VideoHandler(core Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VideoRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		frames, err := core.VideoBatch(c.Request.Context(), req.Script)
		if err != nil {
			respondGenerationError(c, err)
			return
		}

		c.JSON(http.StatusOK, VideoResponse{Frames: frames})
	}
}

// maps core errors onto HTTP responses
func respondGenerationError(c *gin.Context, err error) {
	var inputErr *studio.UserInputError
	var malformedErr *gemini.MalformedResponseError
	var generationErr *gemini.GenerationError
	var exhaustedErr *gemini.RetriesExhaustedError

	switch {
	case stderrors.As(err, &inputErr):
		errors.BadRequest(c, inputErr.Message, nil)
	case stderrors.Is(err, studio.ErrTurnInFlight):
		errors.TurnInFlight(c)
	case stderrors.Is(err, gemini.ErrRateLimitExhausted):
		errors.RateLimited(c, gemini.ErrRateLimitExhausted.Error())
	case stderrors.As(err, &malformedErr), stderrors.As(err, &generationErr), stderrors.As(err, &exhaustedErr):
		errors.UpstreamError(c, "", err)
	default:
		errors.InternalError(c, "failed to complete generation", err)
	}
}

// decodes the optional base64 attachment payload
func decodeAttachment(payload *AttachmentPayload) (*gemini.Attachment, error) {
	if payload == nil {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		return nil, err
	}

	return &gemini.Attachment{
		Data:     data,
		MimeType: payload.MimeType,
	}, nil
}
