package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/reelify/reelcut/internal/config"
	"github.com/reelify/reelcut/internal/domain/reelplan"
	"github.com/reelify/reelcut/internal/engine"
	"github.com/reelify/reelcut/internal/logging"
	"github.com/reelify/reelcut/internal/ports"
	"github.com/reelify/reelcut/internal/ports/adapters/factfile"
	"github.com/reelify/reelcut/internal/ports/adapters/sentimentapi"
	"github.com/reelify/reelcut/internal/ports/adapters/whisperjson"
	"github.com/reelify/reelcut/internal/types"
)

type Config struct {
	TranscriptPath string
	FactsPath      string
	OutDir         string

	SentimentAPIKey string

	Engine *config.Config
}

func (c Config) Validate() error {
	if c.TranscriptPath == "" {
		return errors.New("transcript path is empty")
	}
	if _, err := os.Stat(c.TranscriptPath); err != nil {
		return fmt.Errorf("stat transcript: %w", err)
	}
	if c.FactsPath != "" {
		if _, err := os.Stat(c.FactsPath); err != nil {
			return fmt.Errorf("stat facts: %w", err)
		}
	}
	if c.Engine == nil {
		return errors.New("engine config is nil")
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.Engine.Sentiment.BaseURL != "" {
		return sentimentapi.ValidateBaseURL(c.Engine.Sentiment.BaseURL)
	}
	return nil
}

// Run loads the transcript and fact pool, executes the engine, and writes
// the render descriptor into a per-run output directory.
func Run(ctx context.Context, cfg Config) error {
	log := logging.WithComponent("pipeline")

	tr, err := whisperjson.New().Load(ctx, cfg.TranscriptPath)
	if err != nil {
		return err
	}

	facts, err := loadFacts(ctx, cfg.FactsPath)
	if err != nil {
		return err
	}
	log.Info().Int("segments", len(tr.Segments)).Int("facts", len(facts)).Msg("inputs loaded")

	var sentiment ports.SentimentAnalyzer
	if cfg.Engine.Sentiment.BaseURL != "" {
		sentiment = sentimentapi.New(cfg.SentimentAPIKey, cfg.Engine.Sentiment.BaseURL)
	} else {
		log.Warn().Msg("no sentiment endpoint configured; scoring from keyword/rate features only")
	}

	eng := engine.New(engine.Deps{Sentiment: sentiment})
	plan, report, err := eng.Run(ctx, tr, facts, cfg.Engine)
	if err != nil {
		return err
	}
	if report.DegradedSpans > 0 {
		log.Warn().Int("spans", report.DegradedSpans).Msg("sentiment unavailable for some spans")
	}
	if report.InsufficientContent {
		log.Warn().Int("found", len(plan.Reels)).Int("target", cfg.Engine.Reels).
			Msg("insufficient content for target reel count")
	}

	job := reelplan.Build(plan, cfg.TranscriptPath)

	runDir := buildRunOutDir(cfg.OutDir, cfg.TranscriptPath, time.Now().UTC())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal render job: %w", err)
	}
	planPath := filepath.Join(runDir, "reelplan.json")
	if err := os.WriteFile(planPath, b, 0o644); err != nil {
		return err
	}
	log.Info().Int("reels", len(job.Instructions)).Str("path", planPath).Msg("plan written")
	return nil
}

func loadFacts(ctx context.Context, path string) ([]types.Fact, error) {
	if path == "" {
		return nil, nil
	}
	return factfile.New().Load(ctx, path)
}

func buildRunOutDir(outRoot, transcriptPath string, now time.Time) string {
	if outRoot == "" {
		outRoot = "out"
	}
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	name = normalizePathSegment(name)
	if name == "" {
		name = "transcript"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", transcriptPath, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
