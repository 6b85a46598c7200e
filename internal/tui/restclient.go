package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultEndpoint = "http://localhost:8080"

// client for the renderjam generation API
type APIClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewAPIClient() *APIClient {
	endpoint := os.Getenv("RENDERJAM_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &APIClient{
		endpoint: endpoint,
		// refinement turns run ten upstream calls, each with retries
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Mode     string `json:"mode,omitempty"`
	CodeMode bool   `json:"code_mode,omitempty"`
}

type generateResponse struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Rounds int    `json:"rounds"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	DataURI string `json:"data_uri"`
}

type videoRequest struct {
	Script string `json:"script"`
}

type videoResponse struct {
	Frames []string `json:"frames"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// runs a text turn; mode is "single" or "refine"
func (c *APIClient) Generate(prompt, mode string, codeMode bool) (*generateResponse, error) {
	var resp generateResponse
	err := c.post("/api/v1/generate", generateRequest{Prompt: prompt, Mode: mode, CodeMode: codeMode}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) Image(prompt string) (*imageResponse, error) {
	var resp imageResponse
	if err := c.post("/api/v1/image", imageRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) Video(script string) (*videoResponse, error) {
	var resp videoResponse
	if err := c.post("/api/v1/video", videoRequest{Script: script}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) post(path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.httpClient.Post(c.endpoint+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s", apiErr.Message)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
