package config

import "os"

// AIConfig holds the narrative generator configuration
type AIConfig struct {
	APIKey      string  `json:"-"` // Never serialize
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	ChatModel   string  `json:"chatModel"`
	Temperature float64 `json:"temperature"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultAIConfig returns the AI configuration from the environment
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		// Profile narratives want the strong model; chat replies can use
		// a faster one.
		Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
		ChatModel:   getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		Temperature: 0.7,
		TimeoutMS:   60000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// BotConfig holds the telegram transport configuration
type BotConfig struct {
	Token       string `json:"-"`
	APIBaseURL  string `json:"apiBaseUrl"`
	PollTimeout int    `json:"pollTimeout"` // long-poll timeout, seconds
	Debug       bool   `json:"debug"`
}

// DefaultBotConfig returns the bot configuration from the environment
func DefaultBotConfig() *BotConfig {
	return &BotConfig{
		Token:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL:  getEnvOrDefault("TELEGRAM_API_URL", "https://api.telegram.org"),
		PollTimeout: 50,
		Debug:       os.Getenv("BOT_DEBUG") == "1",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
