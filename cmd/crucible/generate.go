package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crucible-vm/crucible/internal/cli/config"
	"github.com/crucible-vm/crucible/internal/cli/ui"
	"github.com/crucible-vm/crucible/internal/subgen/assemble"
	"github.com/crucible-vm/crucible/internal/subgen/driver"
	generrors "github.com/crucible-vm/crucible/internal/subgen/errors"
	"github.com/crucible-vm/crucible/internal/subgen/manifest"
	"github.com/crucible-vm/crucible/internal/subgen/sink"
)

var (
	generateJSON     bool
	generateVerbose  bool
	generateManifest string
	generateOut      string
	generateFlavor   string
)

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output the pass report in JSON format")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Show detailed generation output")
	generateCmd.Flags().StringVar(&generateManifest, "manifest", "", "Substitution manifest path (overrides config)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Output directory (overrides config)")
	generateCmd.Flags().StringVar(&generateFlavor, "flavor", "", "Generator flavor: guest or native (overrides config)")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate substitutors from the manifest",
	Long:  "Read the substitution manifest and emit one adapter per target method plus the aggregate collector",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyGenerateFlags(cfg)

		report, err := runGeneration(cfg, newLogger(generateVerbose))
		if err != nil {
			if list, ok := err.(generrors.List); ok {
				if werr := outputDiagnostics(list); werr != nil {
					return werr
				}
				return fmt.Errorf("manifest validation failed")
			}
			return err
		}

		if generateJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}

		ui.WriteDiagnostics(os.Stderr, report.Diagnostics, ui.DiagnosticOptions{})

		table := ui.NewTable(os.Stdout, []string{"ARTIFACT", "FILE"}, nil)
		for _, id := range report.Emitted {
			table.AddRow(id, cfg.Generator.OutputDir)
		}
		table.Render()

		elapsed := time.Since(startTime)
		if report.Diagnostics.HasErrors() {
			return fmt.Errorf("generation failed: %d artifact(s) skipped", report.Skipped)
		}
		fmt.Printf("\n✓ Generated %d substitutor(s) in %.2fs\n", len(report.Emitted), elapsed.Seconds())
		if report.Skipped > 0 {
			fmt.Printf("  Skipped: %d (see warnings above)\n", report.Skipped)
		}
		fmt.Printf("  Collector: %s\n", cfg.Generator.Collector)
		return nil
	},
}

func applyGenerateFlags(cfg *config.Config) {
	if generateManifest != "" {
		cfg.Generator.Manifest = generateManifest
	}
	if generateOut != "" {
		cfg.Generator.OutputDir = generateOut
	}
	if generateFlavor != "" {
		cfg.Generator.Flavor = generateFlavor
	}
}

// runGeneration runs one full pass: manifest in, artifacts out.
func runGeneration(cfg *config.Config, logger *zap.Logger) (*driver.Report, error) {
	methods, err := manifest.Load(cfg.Generator.Manifest)
	if err != nil {
		return nil, err
	}

	flavor, err := flavorFor(cfg.Generator.Flavor)
	if err != nil {
		return nil, err
	}

	out, err := sink.NewFSSink(cfg.Generator.OutputDir)
	if err != nil {
		return nil, err
	}

	drv, err := driver.New(driver.Options{
		Flavor:          flavor,
		Sink:            out,
		PackageName:     cfg.Generator.Package,
		TargetImport:    cfg.Generator.TargetImport,
		CollectorName:   cfg.Generator.Collector,
		AllowCollisions: cfg.Generator.AllowCollisions,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	if err := drv.Process(methods); err != nil {
		return nil, err
	}
	return drv.Commit()
}

func flavorFor(name string) (assemble.Flavor, error) {
	switch name {
	case "guest":
		return assemble.NewGuestFlavor(), nil
	case "native":
		return assemble.NewNativeFlavor(), nil
	}
	return nil, fmt.Errorf("unknown generator flavor %q", name)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func outputDiagnostics(list generrors.List) error {
	if generateJSON {
		return writeDiagnosticsJSON(os.Stdout, list)
	}
	ui.WriteDiagnostics(os.Stderr, list, ui.DiagnosticOptions{})
	return nil
}

func writeDiagnosticsJSON(w io.Writer, list generrors.List) error {
	output := struct {
		Success     bool           `json:"success"`
		Diagnostics generrors.List `json:"diagnostics"`
	}{
		Success:     false,
		Diagnostics: list,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
