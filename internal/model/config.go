package model

import "time"

// Config is the complete runtime configuration. Values are resolved in the
// usual hierarchy: CLI flags, then STYLO_* environment variables, then the
// config file (~/.stylo/config.yaml), then the defaults below.
type Config struct {
	Split  SplitConfig  `yaml:"split" mapstructure:"split"`
	Train  TrainConfig  `yaml:"train" mapstructure:"train"`
	Select SelectConfig `yaml:"select" mapstructure:"select"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// SplitConfig controls the stratified train/test partitioning.
type SplitConfig struct {
	HeldOut float64 `yaml:"held_out" mapstructure:"held_out"` // fraction reserved for testing
	Seed    int64   `yaml:"seed" mapstructure:"seed"`
	Folds   int     `yaml:"folds" mapstructure:"folds"` // repeated stratified shuffles
}

// TrainConfig controls the linear classifier fits.
type TrainConfig struct {
	Epochs  int     `yaml:"epochs" mapstructure:"epochs"`
	Lambda  float64 `yaml:"lambda" mapstructure:"lambda"` // regularization strength
	Workers int     `yaml:"workers" mapstructure:"workers"`
}

// SelectConfig controls univariate feature selection.
type SelectConfig struct {
	Enabled  bool    `yaml:"enabled" mapstructure:"enabled"`
	Fraction float64 `yaml:"fraction" mapstructure:"fraction"` // fraction of dimensions kept
}

// FetchConfig controls the corpus downloader.
type FetchConfig struct {
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSec float64       `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int           `yaml:"burst" mapstructure:"burst"`
	Concurrency    int           `yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheConfig controls the text/feature cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig controls the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	JSONPath     string `yaml:"json" mapstructure:"json"`
	MarkdownPath string `yaml:"md" mapstructure:"md"`
	Verbose      bool   `yaml:"verbose" mapstructure:"verbose"`
	KeepResults  bool   `yaml:"keep_results" mapstructure:"keep_results"` // include per-sample results in the report
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			HeldOut: 0.30,
			Seed:    42,
			Folds:   10,
		},
		Train: TrainConfig{
			Epochs: 200,
			Lambda: 0.01,
		},
		Select: SelectConfig{
			Enabled:  true,
			Fraction: 2.0 / 3.0,
		},
		Fetch: FetchConfig{
			UserAgent:      "Stylo/0.1 (+https://github.com/ppiankov/stylo)",
			Timeout:        60 * time.Second,
			MaxBodyBytes:   5_000_000,
			RequestsPerSec: 1,
			Burst:          2,
			Concurrency:    4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   30 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			MaxTokens: 800,
			Timeout:   30,
		},
		Output: OutputConfig{
			JSONPath: "report.json",
		},
	}
}
