// Package cli implements the gwrite command line.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bjaus/gwrite"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("usage error")

// userConfigName is looked up in the home directory when --config is not set.
const userConfigName = ".gwrite.toml"

var (
	version = "dev"

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gwrite",
	Short: "Render vector drawings as G-code and other text formats",
	Long: `gwrite turns a vector document (layers of polylines) into G-code, HPGL,
JSON or any other line-based text format described by a profile of templates.

Profiles are read from the bundled configuration, then from ~/.gwrite.toml
or the file given with --config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file with gwrite profiles")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to a process exit code:
// 2 for usage and configuration problems, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage), errors.Is(err, gwrite.ErrConfiguration):
		return 2
	default:
		return 1
	}
}

// exactArgs wraps cobra.ExactArgs so that arity errors are usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

// loadConfig returns the bundled profiles merged with the user's.
func loadConfig() (*gwrite.Config, error) {
	cfg, err := gwrite.DefaultConfig()
	if err != nil {
		return nil, err
	}
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		candidate := filepath.Join(home, userConfigName)
		if _, err := os.Stat(candidate); err != nil {
			return cfg, nil
		}
		path = candidate
	}
	user, err := gwrite.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gwrite.ErrConfiguration, err)
	}
	slog.Debug("Loaded configuration", "path", path, "profiles", len(user.Profiles))
	return cfg.Merge(user), nil
}
