package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lazyvibe/failbell/internal/alert"
	"github.com/lazyvibe/failbell/internal/logging"
	"github.com/lazyvibe/failbell/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show the effective configuration and any problems in it",
	Long: `Load the configuration file the way run does and print the resulting
settings: which patterns compiled, which were rejected, which exit codes are
ignored and which sound file will play. Exits non-zero if the file cannot
be read.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	log := logging.NopLogger()

	snap, loadErr := loadSnapshot(path, log)
	_, statErr := os.Stat(path)

	reporter := &alert.MemoryReporter{}
	ctrl := alert.NewController(controllerOptions(log, reporter))
	ctrl.Initialize(snap)
	defer ctrl.Dispose()

	var warnings []string
	for _, n := range reporter.Notices() {
		// Invalid patterns are already listed with the patterns.
		if n.Level >= alert.LevelWarn && len(n.Patterns) == 0 {
			warnings = append(warnings, n.Message)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderSettings(ui.SettingsReport{
		ConfigPath:  path,
		ConfigFound: statErr == nil,
		LoadErr:     loadErr,
		Snapshot:    ctrl.Snapshot(),
		SoundPath:   ctrl.SoundPath(),
		Warnings:    warnings,
	}))
	if loadErr != nil {
		return errors.New("configuration file could not be loaded")
	}
	return nil
}
