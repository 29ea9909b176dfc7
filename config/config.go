package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Fetcher FetcherConfig
	Search  SearchConfig
	LLM     LLMConfig
	Reward  RewardConfig
	Cache   CacheConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "127.0.0.1"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser session.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for browser and plain HTTP traffic.
	Proxy string

	// Stealth injects anti-bot-detection evasions into every page.
	Stealth bool // default: true

	// WindowWidth and WindowHeight size the maximized window in headless mode.
	WindowWidth  int // default: 1920
	WindowHeight int // default: 1080

	// LandingURL is the known-good page loaded after a session reset.
	LandingURL string // default: "https://en.wikipedia.org/"

	// BlockedResourceTypes lists resource types the browser never loads.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// FetcherConfig controls page loading and interaction.
type FetcherConfig struct {
	// NavigationTimeout bounds a single navigation. Exceeding it triggers
	// one session reset and a retry.
	NavigationTimeout time.Duration // default: 30s

	// SettleWait is slept after navigation and again after interactions.
	SettleWait time.Duration // default: 250ms

	// InteractionAttempts is how many times a click is tried.
	InteractionAttempts int // default: 3

	// InteractionBackoff is slept between click attempts.
	InteractionBackoff time.Duration // default: 250ms

	// InteractionTimeout bounds a single click attempt, backup clicks
	// included. Zero leaves attempts bounded only by the caller's context.
	InteractionTimeout time.Duration // default: 10s

	// RemoveOverlays strips fixed/sticky overlays after every load.
	RemoveOverlays bool // default: false

	// PageScript is JavaScript evaluated after every load, before any
	// interaction steps. Empty disables it.
	PageScript string

	// HTTPTimeout bounds plain (non-browser) HTTP fetches.
	HTTPTimeout time.Duration // default: 15s
}

// SearchConfig controls search-engine querying.
type SearchConfig struct {
	// Host is the search-engine host.
	Host string // default: "duckduckgo.com"

	// TopK caps the URLs collected per sub-query.
	TopK int // default: 10

	// Ensemble combines the site filters into one OR query.
	Ensemble bool // default: true

	// Sites are the site: filters applied to each query.
	Sites []string // default: ["wikipedia.org", "stackoverflow.com"]
}

// LLMConfig controls the language-model backend.
type LLMConfig struct {
	APIKey  string
	Model   string        // default: "gpt-4o-mini"
	BaseURL string        // default: "https://api.openai.com/v1"
	Timeout time.Duration // default: 60s
}

// RewardConfig controls reward scoring.
type RewardConfig struct {
	// MaxDocumentChars truncates each document before it is embedded in
	// the scoring prompt. Zero disables truncation.
	MaxDocumentChars int // default: 12000

	// FallbackExtractor selects what handles domains without a dedicated
	// extractor: "none" or "readability".
	FallbackExtractor string // default: "none"
}

// CacheConfig controls the extracted-document cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached documents. Zero disables
	// the cache.
	MaxEntries int // default: 256

	// TTL is how long a cached document stays valid.
	TTL time.Duration // default: 1h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("GROUNDTRUTH_HOST", "127.0.0.1"),
			Port: envIntOr("GROUNDTRUTH_PORT", 8080),
			Mode: envOr("GROUNDTRUTH_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("GROUNDTRUTH_HEADLESS", true),
			NoSandbox:    envBoolOr("GROUNDTRUTH_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("GROUNDTRUTH_BROWSER_BIN"),
			Proxy:        os.Getenv("GROUNDTRUTH_PROXY"),
			Stealth:      envBoolOr("GROUNDTRUTH_STEALTH", true),
			WindowWidth:  envIntOr("GROUNDTRUTH_WINDOW_WIDTH", 1920),
			WindowHeight: envIntOr("GROUNDTRUTH_WINDOW_HEIGHT", 1080),
			LandingURL:   envOr("GROUNDTRUTH_LANDING_URL", "https://en.wikipedia.org/"),
			BlockedResourceTypes: envSliceOr("GROUNDTRUTH_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Fetcher: FetcherConfig{
			NavigationTimeout:   envDurationOr("GROUNDTRUTH_NAV_TIMEOUT", 30*time.Second),
			SettleWait:          envDurationOr("GROUNDTRUTH_SETTLE_WAIT", 250*time.Millisecond),
			InteractionAttempts: envIntOr("GROUNDTRUTH_INTERACTION_ATTEMPTS", 3),
			InteractionBackoff:  envDurationOr("GROUNDTRUTH_INTERACTION_BACKOFF", 250*time.Millisecond),
			InteractionTimeout:  envDurationOr("GROUNDTRUTH_INTERACTION_TIMEOUT", 10*time.Second),
			RemoveOverlays:      envBoolOr("GROUNDTRUTH_REMOVE_OVERLAYS", false),
			PageScript:          os.Getenv("GROUNDTRUTH_PAGE_SCRIPT"),
			HTTPTimeout:         envDurationOr("GROUNDTRUTH_HTTP_TIMEOUT", 15*time.Second),
		},
		Search: SearchConfig{
			Host:     envOr("GROUNDTRUTH_SEARCH_HOST", "duckduckgo.com"),
			TopK:     envIntOr("GROUNDTRUTH_TOP_K", 10),
			Ensemble: envBoolOr("GROUNDTRUTH_ENSEMBLE", true),
			Sites:    envSliceOr("GROUNDTRUTH_SITES", []string{"wikipedia.org", "stackoverflow.com"}),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("GROUNDTRUTH_LLM_API_KEY"),
			Model:   envOr("GROUNDTRUTH_LLM_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("GROUNDTRUTH_LLM_BASE_URL", "https://api.openai.com/v1"),
			Timeout: envDurationOr("GROUNDTRUTH_LLM_TIMEOUT", 60*time.Second),
		},
		Reward: RewardConfig{
			MaxDocumentChars:  envIntOr("GROUNDTRUTH_MAX_DOCUMENT_CHARS", 12000),
			FallbackExtractor: envOr("GROUNDTRUTH_FALLBACK_EXTRACTOR", "none"),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("GROUNDTRUTH_CACHE_MAX_ENTRIES", 256),
			TTL:        envDurationOr("GROUNDTRUTH_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("GROUNDTRUTH_LOG_LEVEL", "info"),
			Format: envOr("GROUNDTRUTH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
