package cmd

import (
	"github.com/lazyvibe/failbell/internal/alert"
	"github.com/lazyvibe/failbell/internal/app"
	"github.com/lazyvibe/failbell/internal/logging"
	"github.com/lazyvibe/failbell/internal/notify"
	"github.com/lazyvibe/failbell/internal/settings"
)

// newPlayer plays through the system backends and falls back to the
// terminal beep.
func newPlayer(log *logging.Logger) alert.SoundPlayer {
	return &alert.FallbackPlayer{
		Players: []alert.SoundPlayer{alert.NewSystemPlayer(), alert.NewBeepPlayer()},
		Logger:  log,
	}
}

// loadSnapshot reads the config file, returning the defaults alongside
// any load error.
func loadSnapshot(path string, log *logging.Logger) (*settings.Snapshot, error) {
	snap, err := app.LoadSettings(path)
	if err != nil {
		log.Warn("config load failed, using defaults", "path", path, "error", err.Error())
		return settings.Defaults(), err
	}
	return snap, nil
}

// controllerOptions returns the options shared by every command.
func controllerOptions(log *logging.Logger, reporter alert.Reporter) alert.Options {
	return alert.Options{
		Player:   newPlayer(log),
		Reporter: reporter,
		Logger:   log,
		Notifier: notify.NewDispatcher(),
	}
}
