package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "imagen-3.0-generate-002"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	// a missing .env file is fine, production environments set real env vars
	_ = godotenv.Load()

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	textModel := os.Getenv("TEXT_MODEL")
	if textModel == "" {
		textModel = defaultTextModel
	}

	imageModel := os.Getenv("IMAGE_MODEL")
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	return &Config{
		GeminiKey:     geminiKey,
		GeminiBaseURL: baseURL,
		TextModel:     textModel,
		ImageModel:    imageModel,
		Environment:   environment,
	}, nil
}
