package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the segmentation engine. All times are float
// seconds in the file; use the duration accessors in code.
type Config struct {
	// Reels is the target number of windows (K).
	Reels int `yaml:"reels"`

	MinDurationSec  float64 `yaml:"min_duration_sec"`
	MaxDurationSec  float64 `yaml:"max_duration_sec"`
	MinWindowGapSec float64 `yaml:"min_window_gap_sec"`
	PauseBreakSec   float64 `yaml:"pause_break_sec"`
	MinFactGapSec   float64 `yaml:"min_fact_gap_sec"`

	Weights Weights `yaml:"weights"`

	// DiversityOverlap is the keyword-overlap fraction above which a
	// candidate is considered a duplicate topic of a selected window.
	DiversityOverlap float64 `yaml:"diversity_overlap_fraction"`

	// Keywords are the emphasis markers counted by the scorer and used for
	// the diversity check. Empty means the built-in set.
	Keywords []string `yaml:"keywords"`

	// Workers bounds candidate-generation fan-out. 0 means one worker per
	// CPU. Output is identical for any value.
	Workers int `yaml:"workers"`

	Sentiment Sentiment `yaml:"sentiment"`
}

// Weights splits the engagement score between its three signals. Must sum
// to 1.
type Weights struct {
	Sentiment float64 `yaml:"sentiment"`
	Keywords  float64 `yaml:"keywords"`
	Rate      float64 `yaml:"rate"`
}

type Sentiment struct {
	BaseURL    string  `yaml:"base_url"`
	TimeoutSec float64 `yaml:"timeout_sec"`
}

// DefaultKeywords are the emphasis markers the scorer keys on when the
// config supplies none.
var DefaultKeywords = []string{
	"important", "key", "secret", "mistake", "never", "always",
	"remember", "amazing", "incredible", "best", "worst", "first",
}

func Default() *Config {
	return &Config{
		Reels:            3,
		MinDurationSec:   15,
		MaxDurationSec:   60,
		MinWindowGapSec:  30,
		PauseBreakSec:    1.0,
		MinFactGapSec:    1.5,
		Weights:          Weights{Sentiment: 0.5, Keywords: 0.3, Rate: 0.2},
		DiversityOverlap: 0.5,
		Sentiment:        Sentiment{TimeoutSec: 10},
	}
}

// Load reads configuration from path, or from a discovered config file, or
// returns defaults when neither exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Reels <= 0 {
		return fmt.Errorf("reels must be > 0")
	}
	if c.MinDurationSec <= 0 {
		return fmt.Errorf("min duration must be > 0")
	}
	if c.MaxDurationSec < c.MinDurationSec {
		return fmt.Errorf("max duration must be >= min duration")
	}
	if c.MinWindowGapSec < 0 {
		return fmt.Errorf("window gap must be >= 0")
	}
	if c.PauseBreakSec <= 0 {
		return fmt.Errorf("pause break must be > 0")
	}
	if c.MinFactGapSec <= 0 {
		return fmt.Errorf("fact gap must be > 0")
	}
	if c.DiversityOverlap < 0 || c.DiversityOverlap > 1 {
		return fmt.Errorf("diversity overlap fraction must be in [0,1]")
	}
	sum := c.Weights.Sentiment + c.Weights.Keywords + c.Weights.Rate
	if c.Weights.Sentiment < 0 || c.Weights.Keywords < 0 || c.Weights.Rate < 0 {
		return fmt.Errorf("weights must be >= 0")
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

func (c *Config) MinDuration() time.Duration  { return dur(c.MinDurationSec) }
func (c *Config) MaxDuration() time.Duration  { return dur(c.MaxDurationSec) }
func (c *Config) MinWindowGap() time.Duration { return dur(c.MinWindowGapSec) }
func (c *Config) PauseBreak() time.Duration   { return dur(c.PauseBreakSec) }
func (c *Config) MinFactGap() time.Duration   { return dur(c.MinFactGapSec) }

func (c *Config) SentimentTimeout() time.Duration { return dur(c.Sentiment.TimeoutSec) }

// KeywordSet returns the effective keyword set, lowercased.
func (c *Config) KeywordSet() []string {
	if len(c.Keywords) > 0 {
		return c.Keywords
	}
	return DefaultKeywords
}

func findConfigFile() string {
	candidates := []string{
		"./reelcut.yaml",
		"./reelcut.yml",
		filepath.Join(os.Getenv("HOME"), ".reelcut", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func dur(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
