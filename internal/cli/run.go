package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelify/reelcut/internal/config"
	"github.com/reelify/reelcut/internal/pipeline"
)

func run(cmd *cobra.Command, transcriptArg string) error {
	outDir, _ := cmd.Flags().GetString("out")
	factsPath, _ := cmd.Flags().GetString("facts")
	configPath, _ := cmd.Flags().GetString("config")
	reels, _ := cmd.Flags().GetInt("reels")
	workers, _ := cmd.Flags().GetInt("workers")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if reels > 0 {
		cfg.Reels = reels
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if v := os.Getenv("SENTIMENT_API_URL"); v != "" {
		cfg.Sentiment.BaseURL = v
	}

	transcriptPath, err := filepath.Abs(transcriptArg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pcfg := pipeline.Config{
		TranscriptPath:  transcriptPath,
		FactsPath:       factsPath,
		OutDir:          outDir,
		SentimentAPIKey: os.Getenv("SENTIMENT_API_KEY"),
		Engine:          cfg,
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, pcfg)
}
