package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero reels", func(c *Config) { c.Reels = 0 }, true},
		{"max below min", func(c *Config) { c.MaxDurationSec = 5 }, true},
		{"negative gap", func(c *Config) { c.MinWindowGapSec = -1 }, true},
		{"weights off", func(c *Config) { c.Weights.Rate = 0.4 }, true},
		{"negative weight", func(c *Config) { c.Weights = Weights{Sentiment: 1.2, Keywords: -0.2} }, true},
		{"overlap above one", func(c *Config) { c.DiversityOverlap = 1.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelcut.yaml")
	body := "reels: 5\nmin_duration_sec: 8\nkeywords: [launch, orbit]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reels != 5 || cfg.MinDurationSec != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxDurationSec != 60 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if len(cfg.KeywordSet()) != 2 {
		t.Fatalf("keywords not applied: %v", cfg.KeywordSet())
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reels != 3 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestKeywordSet_DefaultWhenEmpty(t *testing.T) {
	cfg := Default()
	if len(cfg.KeywordSet()) == 0 {
		t.Fatalf("expected built-in keywords")
	}
}
