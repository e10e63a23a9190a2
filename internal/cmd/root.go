// Package cmd implements the failbell command line.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lazyvibe/failbell/internal/app"
	"github.com/lazyvibe/failbell/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set at build time with -ldflags "-X github.com/lazyvibe/failbell/internal/cmd.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "failbell",
	Short: "Ring a bell when a terminal command fails",
	Long: `failbell runs a command (or your shell) in a pseudo-terminal and plays
an alert sound when it exits with a non-zero code or prints a recognizable
error such as "Traceback" or "FATAL". Alerts are rate limited, and the
configuration file is reloaded while the session runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitError carries the wrapped command's exit code out of Execute.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "failbell: %v\n", err)
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/failbell/config.json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Only the command-line options come from the environment; the alert
	// settings live in the config file.
	viper.SetEnvPrefix("FAILBELL")
	_ = viper.BindEnv("config", "FAILBELL_CONFIG")
	_ = viper.BindEnv("log_level", "FAILBELL_LOG_LEVEL")
}

// configPath returns the config file in use.
func configPath() (string, error) {
	if p := viper.GetString("config"); p != "" {
		return p, nil
	}
	dir, err := app.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return app.ConfigPath(dir), nil
}

// dataDir holds the log and the alert history.
func dataDir() (string, error) {
	dir, err := app.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return dir, nil
}

// newLogger opens the log file in the data directory. If that fails the
// returned logger discards everything.
func newLogger() *logging.Logger {
	dir, err := dataDir()
	if err != nil {
		return logging.NopLogger()
	}
	level, err := logging.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failbell: %v, using info\n", err)
	}
	log, err := logging.Open(dir, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failbell: logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return log
}
