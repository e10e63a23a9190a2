package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/lazyvibe/failbell/internal/alert"
	"github.com/lazyvibe/failbell/internal/ui"
	"github.com/spf13/cobra"
)

var testSoundCmd = &cobra.Command{
	Use:   "test-sound [file]",
	Short: "Play the alert sound",
	Long: `Play the configured alert sound, or the given file, to check that
audio playback works on this machine.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTestSound,
}

func init() {
	rootCmd.AddCommand(testSoundCmd)
}

func runTestSound(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Close()

	snap, _ := loadSnapshot(path, log)
	if len(args) == 1 {
		override := *snap
		override.CustomSoundPath = args[0]
		snap = &override
	}

	printer := ui.NewNoticePrinter(cmd.ErrOrStderr(), alert.LevelWarn)
	ctrl := alert.NewController(controllerOptions(log, printer))
	ctrl.Initialize(snap)
	defer ctrl.Dispose()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := ctrl.TestSound(ctx); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Played %s\n", ctrl.SoundPath())
	return nil
}
