package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/onboard/internal/benchstore"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/outwriter"
	"github.com/huangsam/onboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// storeManager is the global persistence manager instance.
var storeManager contract.StoreManager

// writer renders every command result.
var writer contract.OutputWriter = outwriter.NewOutWriter()

// clock stamps submissions and calibration fits.
var clock contract.Clock = time.Now

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Score onboarding pages against a weighted heuristic manifest.",
	Long: `Onboard turns measurements of a signup or onboarding page into a 0-100 score,
ranked findings with fixes, and a placement within a benchmark cohort.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configureConfigFile()

	viper.SetEnvPrefix("ONBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("benchmark-backend", schema.SQLiteBackend)
	viper.SetDefault("benchmark-db-connect", "")
	viper.SetDefault("cohort", contract.DefaultCohort)
	viper.SetDefault("calibration-version", contract.DefaultCalibrationVersion)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "info")
}

// configureConfigFile points Viper at --config or the default .onboard.yaml locations.
func configureConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".onboard")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	configureConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// configSetup unmarshals config and runs validation without touching storage.
func configSetup(args []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.MeasurementsPath = ""
	if len(args) == 1 {
		input.MeasurementsPath = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	applyLogging(cfg)
	return nil
}

// sharedSetup runs configSetup and opens the benchmark store.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := configSetup(args); err != nil {
		return err
	}

	// 5. Initialize persistence layer with validated config
	if err := benchstore.InitStores(cfg.BenchmarkBackend, cfg.BenchmarkDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// configSetupWrapper provides PreRunE for commands that never read the benchmark store.
func configSetupWrapper(_ *cobra.Command, args []string) error {
	return configSetup(args)
}

// applyLogging installs the CLI log handler and the color preference.
func applyLogging(c *contract.Config) {
	slog.SetDefault(contract.NewLogger(os.Stderr, c.LogLevel))
	color.NoColor = !c.UseColors
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
