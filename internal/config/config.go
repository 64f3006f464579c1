// Package config provides centralized configuration loaded from environment
// variables. Shared by every wcdata subcommand.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Tournament constants — the FIFA World Cup 2026 format
// --------------------------------------------------------------------------

const (
	// TeamCount is the number of qualified tournament slots.
	TeamCount = 48
	// GroupCount is the number of group-stage groups (A-L).
	GroupCount = 12
	// TeamsPerGroup is the number of teams drawn into each group.
	TeamsPerGroup = 4
)

// GroupLetters returns the twelve group identifiers in draw order.
func GroupLetters() []string {
	letters := make([]string, GroupCount)
	for i := range letters {
		letters[i] = string(rune('A' + i))
	}
	return letters
}

// --------------------------------------------------------------------------
// Default filenames — single source of truth for scraper output
// --------------------------------------------------------------------------

const (
	EloFile           = "elo_ratings.json"
	FIFAFile          = "fifa_rankings.json"
	TransfermarktFile = "transfermarkt_values.json"
	SofascoreFile     = "sofascore_form.json"
	GroupsFile        = "groups.json"
	ScheduleFile      = "schedule.json"
	MappingFile       = "team_mapping.json"
	TeamsFile         = "teams.json"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Filesystem
	OutputDir string
	DataDir   string

	// HTTP fetch layer
	UserAgent      string
	HTTPTimeout    time.Duration
	RateLimitDelay time.Duration

	// Data server
	ServeHost        string
	ServePort        int
	CORSAllowOrigins []string
	CacheEnabled     bool

	// Logging
	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		OutputDir: envOr("WCDATA_OUTPUT_DIR", "output"),
		DataDir:   envOr("WCDATA_DATA_DIR", "data"),

		UserAgent: envOr("WCDATA_USER_AGENT",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) "+
				"AppleWebKit/537.36 (KHTML, like Gecko) "+
				"Chrome/120.0.0.0 Safari/537.36"),
		HTTPTimeout:    time.Duration(envInt("WCDATA_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitDelay: time.Duration(envInt("WCDATA_RATE_LIMIT_MS", 2000)) * time.Millisecond,

		ServeHost: envOr("WCDATA_SERVE_HOST", "0.0.0.0"),
		ServePort: envInt("WCDATA_SERVE_PORT", envInt("PORT", 8080)),
		CORSAllowOrigins: envList("WCDATA_CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8000",
		}),
		CacheEnabled: envBool("WCDATA_CACHE_ENABLED", true),

		Debug: envBool("WCDATA_DEBUG", false),
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
