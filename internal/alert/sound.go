package alert

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lazyvibe/failbell/pkg/utils"
)

//go:embed sounds/alert.wav
var bundledSound []byte

// BundledSoundName is the file name the bundled sound is written to.
const BundledSoundName = "alert.wav"

// InstallBundledSound writes the bundled sound into dir unless an
// identical copy is already there, and returns its path.
func InstallBundledSound(dir string) (string, error) {
	path := filepath.Join(dir, BundledSoundName)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, bundledSound) {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating sound dir: %w", err)
	}
	if err := os.WriteFile(path, bundledSound, 0644); err != nil {
		return "", fmt.Errorf("writing bundled sound: %w", err)
	}
	return path, nil
}

// DefaultSoundDir returns the cache directory holding the bundled sound.
func DefaultSoundDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "failbell")
	}
	return filepath.Join(os.TempDir(), "failbell")
}

// SoundResolution is the outcome of ResolveSound.
type SoundResolution struct {
	// Path is the file to play; empty when no file is available.
	Path string
	// Warning explains a fallback, if one happened.
	Warning string
}

// ResolveSound picks the custom sound when it exists and falls back to the
// bundled one otherwise.
func ResolveSound(custom string, bundled func() (string, error)) SoundResolution {
	var res SoundResolution
	if custom != "" {
		path := utils.ExpandPath(custom)
		info, err := os.Stat(path)
		switch {
		case err != nil:
			res.Warning = fmt.Sprintf("custom sound %q not found, using the bundled sound", custom)
		case info.IsDir():
			res.Warning = fmt.Sprintf("custom sound %q is a directory, using the bundled sound", custom)
		default:
			res.Path = path
			return res
		}
	}

	path, err := bundled()
	if err != nil {
		if res.Warning != "" {
			res.Warning += "; "
		}
		res.Warning += fmt.Sprintf("bundled sound unavailable: %v", err)
		return res
	}
	res.Path = path
	return res
}
