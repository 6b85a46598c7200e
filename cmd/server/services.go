package main

import (
	"codeberg.org/renderjam/server/internal/config"
	"codeberg.org/renderjam/server/internal/gemini"
	"codeberg.org/renderjam/server/internal/studio"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) *Services {
	geminiClient := gemini.NewClient(gemini.ClientConfig{
		APIKey:     cfg.GeminiKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
	})

	return &Services{
		Studio: studio.NewService(geminiClient),
	}
}
