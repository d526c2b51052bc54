package cmd

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string // Path to the YAML simulation config
	seed       int64  // Master seed overriding the config value
	iterations int    // Iteration budget overriding the config value
	logLevel   string // Log verbosity level
)

// envOverrides are environment-variable defaults applied between the config
// file and explicit CLI flags.
type envOverrides struct {
	Seed     *int64 `env:"ATOMSIM_SEED"`
	LogLevel string `env:"ATOMSIM_LOG_LEVEL"`
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "atomsim",
	Short: "Metropolis Monte Carlo simulator for atomic configurations",
}

// runCmd executes one simulation described by a YAML config
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo simulation",
	Run: func(cmd *cobra.Command, args []string) {
		var overrides envOverrides
		if err := env.Parse(&overrides); err != nil {
			logrus.Fatalf("Invalid environment overrides: %v", err)
		}
		if overrides.LogLevel != "" && !cmd.Flags().Changed("log") {
			logLevel = overrides.LogLevel
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadSimConfig(configPath)
		if err != nil {
			logrus.Fatalf("Unable to load simulation config: %v", err)
		}
		if overrides.Seed != nil && !cmd.Flags().Changed("seed") {
			cfg.Seed = *overrides.Seed
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("iterations") {
			cfg.MaxIterations = iterations
		}

		sys, err := cfg.BuildSystem()
		if err != nil {
			logrus.Fatalf("Unable to build initial system: %v", err)
		}
		engine, err := cfg.BuildEngine()
		if err != nil {
			logrus.Fatalf("Unable to build engine: %v", err)
		}

		logrus.Infof("Starting simulation: %d sites, %d iterations, T=%.2fK, seed=%d",
			sys.Len(), engine.MaxIter(), engine.Temperature(), cfg.Seed)
		startTime := time.Now()

		final, err := engine.Run(sys, 0)
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}

		logrus.Infof("Simulation complete: %d sites, final energy %.6f eV, wall time %s",
			final.Len(), final.PotentialEnergy(), time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "sim.yaml", "Path to the YAML simulation config")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all randomness")
	runCmd.Flags().IntVar(&iterations, "iterations", 0, "Total iteration budget (overrides config)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
}
