package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// API settings
	API APIConfig `json:"api"`

	// Vision (camera identify) settings
	Vision VisionConfig `json:"vision"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds PokeAPI client settings
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	CryURLTemplate string `json:"cry_url_template"`

	// ListLimit is the number of entries requested from the listing
	// endpoint. 1008 is the dataset size as of Gen 9; it is not derived
	// from the API.
	ListLimit int `json:"list_limit"`

	// MaxConcurrentFetches caps in-flight requests during a refresh.
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`

	// FetchTimeoutSeconds bounds each individual request.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`

	// RequestsPerSecond paces outbound requests. 0 disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// VisionConfig holds image identification settings
type VisionConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model,omitempty"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme string `json:"theme"` // "dark" or "light"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:              "https://pokeapi.co/api/v2",
			CryURLTemplate:       "https://pokemoncries.com/cries/%d.mp3",
			ListLimit:            1008,
			MaxConcurrentFetches: 32,
			FetchTimeoutSeconds:  30,
			RequestsPerSecond:    0, // unpaced by default, PokeAPI tolerates bursts
		},
		Vision: VisionConfig{
			Enabled: false,
			Model:   "claude-sonnet-4-5-20250929",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// FetchTimeout returns the per-request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	if c.API.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.FetchTimeoutSeconds) * time.Second
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pokedex", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults and try to auto-populate from environment
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillZeroFields()
	if cfg.Vision.APIKey == "" {
		cfg.AutoPopulateFromEnv()
	}
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in API keys from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.Vision.APIKey = key
		c.Vision.Enabled = true
	}
}

// fillZeroFields restores defaults for fields a hand-edited config left empty.
func (c *Config) fillZeroFields() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.CryURLTemplate == "" {
		c.API.CryURLTemplate = def.API.CryURLTemplate
	}
	if c.API.ListLimit <= 0 {
		c.API.ListLimit = def.API.ListLimit
	}
	if c.API.MaxConcurrentFetches <= 0 {
		c.API.MaxConcurrentFetches = def.API.MaxConcurrentFetches
	}
	if c.Vision.Model == "" {
		c.Vision.Model = def.Vision.Model
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}
