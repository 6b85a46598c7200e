package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	imageSampleCount = 1
	imageMimeType    = "image/png"
	imageAspectRatio = "16:9"

	// label prefixed to error messages the API returns inside a success payload
	clientLabel = "renderjam"
)

// shared HTTP client for Gemini API calls
var geminiHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Gemini API calls (10 requests/second with burst capacity of 5)
var geminiRateLimiter = rate.NewLimiter(10, 5)

type ClientConfig struct {
	APIKey     string
	BaseURL    string // e.g. "https://generativelanguage.googleapis.com"
	TextModel  string
	ImageModel string
}

// Client builds request payloads for the two generation operations,
// drives them through the retrying invoker and validates the typed result.
type Client struct {
	config  ClientConfig
	invoker *Invoker
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		config:  config,
		invoker: NewInvoker(DefaultPolicy, geminiHTTPClient),
	}
}

// returns the configured text-generation model identifier
func (c *Client) Model() string {
	return c.config.TextModel
}

// GenerateText sends a single-message generateContent request and returns
// the first candidate's first text part. The optional attachment is carried
// as an inlineData part after the prompt text.
func (c *Client) GenerateText(ctx context.Context, prompt string, attachment *Attachment) (string, error) {
	parts := []part{{Text: prompt}}

	if attachment != nil {
		parts = append(parts, part{
			InlineData: &inlineData{
				MimeType: attachment.MimeType,
				Data:     base64.StdEncoding.EncodeToString(attachment.Data),
			},
		})
	}

	reqBody := generateContentRequest{
		Contents: []requestContent{{Parts: parts}},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.TextModel, url.QueryEscape(c.config.APIKey))

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var resp generateContentResponse
	if err := c.invoker.Invoke(ctx, jsonRequest(endpoint, reqBody), &resp); err != nil {
		return "", err
	}

	// an explicit error field inside a success payload is surfaced verbatim
	if resp.Error != nil && resp.Error.Message != "" {
		return "", &MalformedResponseError{
			Message: fmt.Sprintf("%s: %s", clientLabel, resp.Error.Message),
		}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedResponseError{
			Message: fmt.Sprintf("%s: the API returned no valid result", clientLabel),
		}
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateImage sends a single-instance predict request with fixed
// parameters and returns the generated image as a PNG data URI.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := predictRequest{
		Instances: []imageInstance{{Prompt: prompt}},
		Parameters: imageParameters{
			SampleCount:    imageSampleCount,
			OutputMimeType: imageMimeType,
			AspectRatio:    imageAspectRatio,
		},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:predict?key=%s",
		c.config.BaseURL, c.config.ImageModel, url.QueryEscape(c.config.APIKey))

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var resp predictResponse
	if err := c.invoker.Invoke(ctx, jsonRequest(endpoint, reqBody), &resp); err != nil {
		return "", err
	}

	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", &GenerationError{
			Message: fmt.Sprintf("%s: image generation returned no prediction payload", clientLabel),
		}
	}

	return fmt.Sprintf("data:%s;base64,%s", imageMimeType, resp.Predictions[0].BytesBase64Encoded), nil
}

// returns a request factory producing a fresh POST request per retry attempt
func jsonRequest(endpoint string, payload any) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")

		return req, nil
	}
}
