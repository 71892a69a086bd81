package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reelify/reelcut/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "reelcut <transcript.json>",
		Short:        "Select highlight reels from a timestamped transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.Init(verbose)
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("facts", "", "YAML file with the overlay fact pool")
	root.Flags().String("config", "", "Config file (default: reelcut.yaml)")
	root.Flags().Int("reels", 0, "Number of reels (overrides config)")
	root.Flags().BoolP("verbose", "v", false, "Debug logging")

	// Hidden tuning flag (internal)
	root.Flags().Int("workers", 0, "Candidate generation workers")
	_ = root.Flags().MarkHidden("workers")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
