package alert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/lazyvibe/failbell/internal/logging"
)

var (
	// ErrNoBackend is returned when no playback program is installed.
	ErrNoBackend = errors.New("no audio playback backend found")
	// ErrUnsupportedFormat is returned for file types no backend can play.
	ErrUnsupportedFormat = errors.New("unsupported sound file format")
	// ErrUnsupportedPlatform is returned on platforms without playback support.
	ErrUnsupportedPlatform = errors.New("sound playback is not supported on this platform")
)

// SoundPlayer plays a sound file.
type SoundPlayer interface {
	Play(ctx context.Context, path string) error
}

// backend is one external playback program.
type backend struct {
	name    string
	args    func(path string) []string
	formats []string
}

func (b backend) supports(ext string) bool {
	for _, f := range b.formats {
		if f == ext {
			return true
		}
	}
	return false
}

// SystemPlayer plays files with the platform's command-line players.
type SystemPlayer struct {
	backends []backend
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewSystemPlayer returns a player using this platform's backends.
func NewSystemPlayer() *SystemPlayer {
	return &SystemPlayer{
		backends: platformBackends(),
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Play plays path with the first installed backend that supports its
// format.
func (p *SystemPlayer) Play(ctx context.Context, path string) error {
	if len(p.backends) == 0 {
		return ErrUnsupportedPlatform
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("sound file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("sound path is a directory: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var candidates []backend
	for _, b := range p.backends {
		if b.supports(ext) {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(p.formats(), ", "))
	}

	var tried []string
	for _, b := range candidates {
		bin, err := p.lookPath(b.name)
		if err != nil {
			tried = append(tried, b.name)
			continue
		}
		if err := p.run(ctx, bin, b.args(path)...); err != nil {
			return fmt.Errorf("%s failed: %w", b.name, err)
		}
		return nil
	}
	return fmt.Errorf("%w (tried %s)", ErrNoBackend, strings.Join(tried, ", "))
}

func (p *SystemPlayer) formats() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range p.backends {
		for _, f := range b.formats {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// BeepPlayer sounds the system beep. The path is ignored.
type BeepPlayer struct {
	Freq     float64
	Duration int
}

// NewBeepPlayer returns a BeepPlayer with beeep's defaults.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{Freq: beeep.DefaultFreq, Duration: beeep.DefaultDuration}
}

// Play sounds the beep.
func (p *BeepPlayer) Play(_ context.Context, _ string) error {
	if err := beeep.Beep(p.Freq, p.Duration); err != nil {
		return fmt.Errorf("beep failed: %w", err)
	}
	return nil
}

// FallbackError reports that the primary player failed and a later player
// sounded instead. Unwrap returns the primary failure.
type FallbackError struct {
	Primary error
}

func (e *FallbackError) Error() string {
	return "played fallback sound: " + e.Primary.Error()
}

func (e *FallbackError) Unwrap() error { return e.Primary }

// FallbackPlayer tries each player in order until one succeeds. When a
// later player succeeds, the first failure comes back as a *FallbackError.
type FallbackPlayer struct {
	Players []SoundPlayer
	Logger  *logging.Logger
}

// Play plays path with the first player that succeeds.
func (p *FallbackPlayer) Play(ctx context.Context, path string) error {
	if len(p.Players) == 0 {
		return ErrNoBackend
	}
	var first error
	for i, player := range p.Players {
		err := player.Play(ctx, path)
		if err == nil {
			if first != nil {
				return &FallbackError{Primary: first}
			}
			return nil
		}
		if first == nil {
			first = err
		}
		if p.Logger != nil && i < len(p.Players)-1 {
			p.Logger.Warn("sound player failed, trying next", "error", err.Error())
		}
	}
	return first
}
