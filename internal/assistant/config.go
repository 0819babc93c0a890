package assistant

// Config holds assistant generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// HistoryLimit is the number of earlier transcript messages sent as
	// context. 0 sends none.
	HistoryLimit int
}

// DefaultConfig returns sensible defaults for chat replies.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    1024,
		Temperature:  0.4,
		HistoryLimit: 20,
	}
}
