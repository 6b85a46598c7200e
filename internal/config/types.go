package config

type Config struct {
	GeminiKey     string
	GeminiBaseURL string
	TextModel     string
	ImageModel    string
	Environment   string
}
