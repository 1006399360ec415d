package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crucible-vm/crucible/internal/cli/config"
	"github.com/crucible-vm/crucible/internal/watch"
)

var watchVerbose bool

func init() {
	watchCmd.Flags().BoolVar(&watchVerbose, "verbose", false, "Show verbose output")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate substitutors when the manifest changes",
	Long: `Watch the substitution manifest and rerun generation on every change.

Each save triggers a full pass; failures are reported and watching continues.

Examples:
  # Watch with the configured manifest
  crucible watch

  # Enable verbose logging
  crucible watch --verbose
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(watchVerbose)

		regenerate := func() error {
			report, err := runGeneration(cfg, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
				return err
			}
			fmt.Printf("✓ Regenerated %d substitutor(s)", len(report.Emitted))
			if report.Skipped > 0 {
				fmt.Printf(" (%d skipped)", report.Skipped)
			}
			fmt.Println()
			return nil
		}

		// Initial pass before watching
		if err := regenerate(); err != nil {
			return err
		}

		w, err := watch.NewWatcher(cfg.Generator.Manifest, regenerate, logger)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", cfg.Generator.Manifest)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		fmt.Println("\nStopping watch")
		return nil
	},
}
