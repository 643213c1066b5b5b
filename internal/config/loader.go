package config

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/bookmarks.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent workers for the default-taxonomy import path"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"10" description:"Timeout in seconds (not read by the metadata fetcher, which uses fixed 5s/8s/10s timeouts)"`

	// LLM configuration
	LLMAPIKey  string `long:"llm-api-key" env:"LLM_API_KEY" description:"API key for the LLM provider (absence forces deterministic fallback)"`
	LLMBaseURL string `long:"llm-base-url" env:"LLM_BASE_URL" default:"https://api.openai.com/v1" description:"Base URL for the LLM provider"`
	LLMModel   string `long:"llm-model" env:"LLM_MODEL" default:"gpt-4o-mini" description:"Model name used for discovery and batch assignment"`

	// Access control
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key required on mutating endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"BookmarkComb/1.0" description:"User agent string for outbound HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses configuration from environment variables and command-line
// flags. A nil, nil return means help was printed and the caller should
// exit gracefully.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		Port:           raw.Port,
		WorkerCount:    raw.WorkerCount,
		RequestTimeout: raw.RequestTimeout,
		LLMAPIKey:      raw.LLMAPIKey,
		LLMBaseURL:     raw.LLMBaseURL,
		LLMModel:       raw.LLMModel,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

// Get returns the loaded configuration. It panics if Load has not run.
func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call config.Load() first")
	}
	return globalCfg
}

// HasLLM reports whether an LLM provider key is configured.
func (c *Cfg) HasLLM() bool {
	return c.LLMAPIKey != ""
}
