// Package cli implements the Keyfort command-line interface.
//
// This package uses global variables to manage CLI state, which is the
// standard pattern for Cobra-based CLI applications. The globals are
// initialized in PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyfort/keyfort/internal/config"
	"github.com/keyfort/keyfort/internal/secure"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

var (
	// Global flags
	homeDir string
	verbose bool

	// Global state initialized in PersistentPreRunE
	cfg    *config.Config
	logger *config.Logger
)

// BuildInfo carries version metadata injected at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var buildInfo BuildInfo

// SetBuildInfo records build metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "keyfort",
	Short: "A secure wallet seed vault",
	Long: `Keyfort recovers a wallet from a BIP39 mnemonic, entered one word at a
time, and stores the derived seed encrypted under a user password. It
also confirms multisig account configurations cosigner by cosigner.

Example:
  keyfort restore
  keyfort unlock
  keyfort multisig confirm --file account.yaml --verify-xpubs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return kferrors.ExitCode(err)
}

// printError renders an error with its suggestion, if any.
func printError(w *os.File, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var kerr *kferrors.KeyfortError
	if kferrors.As(err, &kerr) && kerr.Suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", kerr.Suggestion)
	}
}

// initGlobals initializes global configuration and the logger.
func initGlobals() error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		return kferrors.Wrap(kferrors.ErrConfigInvalid, "loading config: %v", err)
	}
	cfg.Home = home

	config.ApplyEnvironment(cfg)
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	level := config.ParseLogLevel(cfg.Logging.Level)
	logger, err = config.NewLogger(level, config.ExpandHome(cfg.Logging.File))
	if err != nil {
		// Logging is best effort; never block the workflow on it.
		logger = config.NullLogger()
	}

	secure.SetMemoryLock(cfg.Security.MemoryLock)

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// formatVersion renders build metadata for the version command.
func formatVersion(info BuildInfo) string {
	version := info.Version
	if version == "" {
		version = "dev"
	}
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := info.Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), formatVersion(buildInfo))
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "keyfort data directory (default: ~/.keyfort)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(versionCmd)
}
