package config

// Cfg holds all application configuration, populated once by Load and
// retrieved thereafter via Get.
type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port           string
	WorkerCount    int
	RequestTimeout int // seconds; not read by the metadata fetcher, which uses fixed timeouts

	// LLM configuration. LLMAPIKey absence forces the deterministic
	// fallback path for both taxonomy discovery and batch assignment.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Access control
	APIAccessKey string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
