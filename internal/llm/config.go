// Package llm provides the gateway through which all remote model calls pass,
// with ordered model fallback and always-terminating structured decoding.
package llm

// Config holds the ordered model identifiers the gateway tries.
type Config struct {
	Primary   string
	Fallbacks []string
}

// DefaultConfig returns the default Gemini model ordering.
func DefaultConfig() *Config {
	return &Config{
		Primary: "gemini-2.5-flash",
		Fallbacks: []string{
			"gemini-2.5-flash-lite",
			"gemini-2.0-flash",
		},
	}
}

// Models returns the primary model followed by the configured fallbacks.
// The order is fixed for the lifetime of the config.
func (c *Config) Models() []string {
	models := make([]string, 0, 1+len(c.Fallbacks))
	if c.Primary != "" {
		models = append(models, c.Primary)
	}
	models = append(models, c.Fallbacks...)
	return models
}

// Options carries per-call generation settings.
type Options struct {
	Temperature float32
	MaxTokens   int32
}

// DefaultOptions returns conservative settings for structured agent calls:
// low temperature so payloads stay parseable, with headroom for long analyses.
func DefaultOptions() Options {
	return Options{Temperature: 0.3, MaxTokens: 2000}
}
