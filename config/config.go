// Package config holds runtime settings and the word lists used by the
// keyword ranker and the recommendation checks.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/seo-analyzer/seo-analyzer/fetch"
	"github.com/seo-analyzer/seo-analyzer/keywords"
)

const (
	// DefaultPort is the listen port for serve mode.
	DefaultPort = "8082"

	// DefaultDataDir is where serve mode keeps its usage statistics.
	DefaultDataDir = "data"

	// DefaultOutputPath is where the analysis artifact is written.
	DefaultOutputPath = "seo_analysis.json"

	// DefaultLogLevel is the log level when none is configured.
	DefaultLogLevel = "info"
)

// Settings carries the tunable knobs for both the CLI and serve mode.
// Values start from defaults, env vars override them, and command flags
// override both.
type Settings struct {
	Timeout       time.Duration
	UserAgent     string
	OutputPath    string
	MaxKeywords   int
	MinWordLength int
	Port          string
	DataDir       string
	LogLevel      string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Timeout:       fetch.DefaultTimeout,
		UserAgent:     fetch.DefaultUserAgent,
		OutputPath:    DefaultOutputPath,
		MaxKeywords:   keywords.DefaultMaxKeywords,
		MinWordLength: keywords.DefaultMinLength,
		Port:          DefaultPort,
		DataDir:       DefaultDataDir,
		LogLevel:      DefaultLogLevel,
	}
}

// FromEnv returns the defaults overridden by any environment variables
// that are set. Unparseable values keep the default.
func FromEnv() Settings {
	s := Defaults()

	if v := os.Getenv("SEO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.Timeout = d
		}
	}
	if v := os.Getenv("SEO_USER_AGENT"); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv("SEO_OUTPUT"); v != "" {
		s.OutputPath = v
	}
	if v := os.Getenv("SEO_MAX_KEYWORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxKeywords = n
		}
	}
	if v := os.Getenv("SEO_MIN_WORD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MinWordLength = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}

	return s
}
