package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xmplr/xmplr/synth"
	"github.com/xmplr/xmplr/synth/model"
	"github.com/xmplr/xmplr/synth/trace"
)

var (
	// CLI flags for generate
	modelPath string  // YAML model spec
	dataDir   string  // Directory for relative resource paths
	seed      int64   // Overrides the model seed when set
	logLevel  string  // Log verbosity level
	batches   int     // Number of batches to emit
	deltaMs   float64 // Elapsed window per batch, in milliseconds
	realtime  bool    // Measure wall-clock windows instead of synthetic deltas
	format    string  // Output format: json or yaml
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "xmplr",
	Short: "Randomized structured data for testing and simulation",
}

// generateCmd emits arrival batches of records built from a model spec
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Emit batches of synthetic records from a model spec",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		if modelPath == "" {
			logrus.Fatalf("--model not provided. Exiting.")
		}
		if err := validateGenerateFlags(batches, deltaMs); err != nil {
			logrus.Fatalf("%v", err)
		}

		spec, err := model.LoadModelSpec(modelPath)
		if err != nil {
			logrus.Fatalf("Failed to load model spec: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			logrus.Infof("CLI --seed %d overrides spec seed %d", seed, spec.Seed)
			spec.Seed = seed
		}

		m, err := model.Build(spec, model.Options{DataDir: dataDir})
		if err != nil {
			logrus.Fatalf("Failed to build model: %v", err)
		}

		w, err := newBatchWriter(format, os.Stdout)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		if err := runBatches(m.Arrival, w, batches, deltaMs, realtime, time.Sleep); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}

		summary := trace.Summarize(m.Trace)
		logrus.Infof("Generated %d record(s) in %d batch(es): mean batch %.2f, max %d, empty %d, %.4f records/ms (took %v)",
			summary.TotalRecords, summary.Batches, summary.MeanBatchSize, summary.MaxBatchSize,
			summary.EmptyBatches, summary.RecordsPerMs, time.Since(startTime))
	},
}

// validateGenerateFlags checks the batch count and window flags of generate.
func validateGenerateFlags(batches int, deltaMs float64) error {
	if batches < 0 {
		return fmt.Errorf("--batches must be non-negative, got %d", batches)
	}
	if !(deltaMs >= 0) || deltaMs > synth.MaxPeriods {
		return fmt.Errorf("--delta-ms must be in [0, %d], got %g", synth.MaxPeriods, deltaMs)
	}
	return nil
}

// setupLogging sets the logrus level or exits on an unknown level.
func setupLogging(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
	logrus.SetOutput(os.Stderr)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	generateCmd.Flags().StringVar(&modelPath, "model", "", "Path to YAML model spec")
	generateCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for relative resource paths (overrides data_dir in the model file)")
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random generation (overrides the model seed when set)")
	generateCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	generateCmd.Flags().IntVar(&batches, "batches", 10, "Number of batches to emit")
	generateCmd.Flags().Float64Var(&deltaMs, "delta-ms", 1000, "Elapsed window per batch in milliseconds")
	generateCmd.Flags().BoolVar(&realtime, "realtime", false, "Sleep delta-ms between batches and measure wall-clock windows")
	generateCmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sampleCmd)
}
