// Package alert decides when a session failure should sound an alert and
// plays it.
package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lazyvibe/failbell/internal/debounce"
	"github.com/lazyvibe/failbell/internal/detect"
	"github.com/lazyvibe/failbell/internal/logging"
	"github.com/lazyvibe/failbell/internal/model"
	"github.com/lazyvibe/failbell/internal/notify"
	"github.com/lazyvibe/failbell/internal/runtime"
	"github.com/lazyvibe/failbell/internal/settings"
)

// playTimeout bounds a single playback, notification and record.
const playTimeout = 30 * time.Second

// Decision is the outcome of handling an event.
type Decision int

const (
	// DecisionNone means the event was not a failure.
	DecisionNone Decision = iota
	// DecisionSuppressed means a failure was detected but debounced.
	DecisionSuppressed
	// DecisionTriggered means an alert was fired.
	DecisionTriggered
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionSuppressed:
		return "suppressed"
	case DecisionTriggered:
		return "triggered"
	default:
		return "none"
	}
}

// Recorder persists fired alerts.
type Recorder interface {
	Record(ctx context.Context, rec *model.AlertRecord) error
}

// Notifier delivers alerts to extra channels.
type Notifier interface {
	Dispatch(ctx context.Context, cfg notify.Config, rec *model.AlertRecord) error
}

// SessionInfo describes a session for alert messages.
type SessionInfo struct {
	Name    string
	Excerpt string
}

// Options configures a Controller. Player is required; the rest is
// optional.
type Options struct {
	Player       SoundPlayer
	Reporter     Reporter
	Logger       *logging.Logger
	Recorder     Recorder
	Notifier     Notifier
	BundledSound func() (string, error)
	SessionInfo  func(sessionID string) SessionInfo
	Now          func() time.Time
	BufferLimit  int
}

// Controller wires the settings snapshot, the per-session matcher and the
// global debounce gate together. Event handlers must be called from one
// goroutine; playback runs in the background.
type Controller struct {
	opts     Options
	snapshot atomic.Pointer[settings.Snapshot]
	sound    atomic.Pointer[SoundResolution]
	matcher  *detect.Matcher
	gate     *debounce.Gate
	disposed atomic.Bool
	inflight sync.WaitGroup

	playMu      sync.Mutex
	lastPlayErr string
}

// NewController creates a Controller. Call Initialize before use.
func NewController(opts Options) *Controller {
	if opts.Reporter == nil {
		opts.Reporter = NopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BundledSound == nil {
		opts.BundledSound = func() (string, error) {
			return InstallBundledSound(DefaultSoundDir())
		}
	}
	if opts.BufferLimit == 0 {
		opts.BufferLimit = detect.DefaultBufferLimit
	}
	return &Controller{
		opts:    opts,
		matcher: detect.NewMatcher(opts.BufferLimit),
		gate:    debounce.New(settings.DefaultDebounceMs),
	}
}

// Initialize applies the first snapshot.
func (c *Controller) Initialize(s *settings.Snapshot) {
	c.disposed.Store(false)
	c.ApplyConfig(s)
	c.opts.Logger.Info("controller initialized", "debounce_ms", c.Snapshot().DebounceMs)
}

// Dispose stops handling events and waits for in-flight playback.
func (c *Controller) Dispose() {
	c.disposed.Store(true)
	c.inflight.Wait()
	c.opts.Logger.Info("controller disposed")
}

// Snapshot returns the active settings.
func (c *Controller) Snapshot() *settings.Snapshot {
	if s := c.snapshot.Load(); s != nil {
		return s
	}
	return settings.Defaults()
}

// SoundPath returns the resolved sound file, possibly empty.
func (c *Controller) SoundPath() string {
	if r := c.sound.Load(); r != nil {
		return r.Path
	}
	return ""
}

// ApplyConfig swaps in a new snapshot. The debounce window is updated
// without resetting the last trigger time.
func (c *Controller) ApplyConfig(s *settings.Snapshot) {
	if s == nil {
		s = settings.Defaults()
	}
	c.snapshot.Store(s)
	c.gate.UpdateDebounceMs(s.DebounceMs)

	if len(s.InvalidPatterns) > 0 {
		c.opts.Reporter.Report(Notice{
			Level:    LevelWarn,
			Message:  fmt.Sprintf("ignoring invalid error patterns: %s", strings.Join(s.InvalidPatterns, ", ")),
			Patterns: s.InvalidPatterns,
		})
		c.opts.Logger.Warn("invalid error patterns", "patterns", s.InvalidPatterns)
	}

	res := ResolveSound(s.CustomSoundPath, c.opts.BundledSound)
	c.sound.Store(&res)
	if res.Warning != "" {
		c.opts.Reporter.Report(Notice{Level: LevelWarn, Message: res.Warning})
		c.opts.Logger.Warn("sound fallback", "warning", res.Warning)
	}

	c.opts.Logger.Info("configuration applied",
		"enabled", s.Enabled,
		"output_scanning", s.OutputScanningEnabled,
		"debounce_ms", s.DebounceMs,
		"patterns", len(s.Patterns),
		"ignore_exit_codes", s.SortedIgnoreExitCodes(),
		"sound", res.Path,
	)
}

// HandleEvent dispatches a runtime event to the matching handler.
func (c *Controller) HandleEvent(ev runtime.Event) Decision {
	switch ev.Kind {
	case runtime.EventData:
		return c.HandleData(ev.SessionID, ev.Data)
	case runtime.EventExit:
		return c.HandleExit(ev.SessionID, ev.ExitCode)
	case runtime.EventClosed:
		c.HandleClose(ev.SessionID)
	}
	return DecisionNone
}

// HandleData scans a chunk of session output.
func (c *Controller) HandleData(sessionID string, chunk []byte) Decision {
	if c.disposed.Load() {
		return DecisionNone
	}
	s := c.Snapshot()
	if !s.Enabled || !s.OutputScanningEnabled || len(s.Patterns) == 0 {
		return DecisionNone
	}

	key := detect.SessionKey(sessionID)
	re, ok := c.matcher.Match(key, string(chunk), s.Patterns)
	if !ok {
		return DecisionNone
	}
	c.matcher.Clear(key)

	pattern := settings.PatternSource(re)
	rec := model.NewAlertRecord(sessionID, model.AlertKindOutput,
		fmt.Sprintf("output matched error pattern %q", pattern), c.opts.Now())
	rec.Pattern = pattern
	return c.trigger(rec)
}

// HandleExit checks a session's exit code. A nil code means unknown and
// is ignored, as is zero.
func (c *Controller) HandleExit(sessionID string, code *int) Decision {
	if c.disposed.Load() {
		return DecisionNone
	}
	log := c.opts.Logger.WithSession(sessionID)
	s := c.Snapshot()
	if !s.Enabled {
		return DecisionNone
	}
	if code == nil {
		log.Debug("exit code unknown, ignoring")
		return DecisionNone
	}
	if *code == 0 {
		return DecisionNone
	}
	if s.IgnoresExitCode(*code) {
		log.Info("exit code ignored", "exit_code", *code)
		return DecisionNone
	}

	exitCode := *code
	rec := model.NewAlertRecord(sessionID, model.AlertKindExitCode,
		fmt.Sprintf("exited with code %d", exitCode), c.opts.Now())
	rec.ExitCode = &exitCode
	return c.trigger(rec)
}

// HandleClose forgets a session's buffered output.
func (c *Controller) HandleClose(sessionID string) {
	c.matcher.Clear(detect.SessionKey(sessionID))
}

// BufferedSessions returns the number of sessions with buffered output.
func (c *Controller) BufferedSessions() int {
	return c.matcher.Sessions()
}

func (c *Controller) trigger(rec *model.AlertRecord) Decision {
	if c.opts.SessionInfo != nil {
		info := c.opts.SessionInfo(rec.SessionID)
		rec.SessionName = info.Name
		rec.Excerpt = info.Excerpt
	}
	log := c.opts.Logger.WithSession(rec.SessionID)

	if !c.gate.CanTrigger(c.opts.Now()) {
		log.Info("alert suppressed by debounce", "reason", rec.Reason, "window", c.gate.Window().String())
		c.opts.Reporter.Report(Notice{
			Level:     LevelInfo,
			Message:   "alert suppressed by debounce: " + rec.Reason,
			SessionID: rec.SessionID,
			Reason:    rec.Reason,
			Pattern:   rec.Pattern,
			ExitCode:  rec.ExitCode,
		})
		return DecisionSuppressed
	}

	log.Info("alert triggered", "kind", string(rec.Kind), "reason", rec.Reason, "pattern", rec.Pattern)
	c.opts.Reporter.Report(Notice{
		Level:     LevelInfo,
		Message:   "failure detected: " + rec.Reason,
		SessionID: rec.SessionID,
		Reason:    rec.Reason,
		Pattern:   rec.Pattern,
		ExitCode:  rec.ExitCode,
	})

	snapshot := c.Snapshot()
	path := c.SoundPath()
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		c.play(ctx, path)
		c.deliver(ctx, snapshot, rec)
	}()
	return DecisionTriggered
}

// TestSound plays the resolved sound synchronously.
func (c *Controller) TestSound(ctx context.Context) error {
	return c.opts.Player.Play(ctx, c.SoundPath())
}

func (c *Controller) play(ctx context.Context, path string) {
	err := c.opts.Player.Play(ctx, path)
	c.reportPlayback(err)
}

// reportPlayback surfaces a playback failure once. The same failure stays
// quiet until a different one occurs or a playback succeeds. A failure
// covered by a fallback sound is a warning.
func (c *Controller) reportPlayback(err error) {
	c.playMu.Lock()
	defer c.playMu.Unlock()

	if err == nil {
		c.lastPlayErr = ""
		return
	}
	level, prefix := LevelError, "could not play alert sound: "
	var fb *FallbackError
	if errors.As(err, &fb) {
		level, prefix = LevelWarn, "alert sound failed, beeped instead: "
		err = fb.Primary
	}
	c.opts.Logger.Error("sound playback failed", "error", err.Error(), "fallback", fb != nil)
	msg := err.Error()
	if msg == c.lastPlayErr {
		return
	}
	c.lastPlayErr = msg
	c.opts.Reporter.Report(Notice{
		Level:   level,
		Message: prefix + msg,
		Err:     err,
	})
}

func (c *Controller) deliver(ctx context.Context, s *settings.Snapshot, rec *model.AlertRecord) {
	log := c.opts.Logger.WithSession(rec.SessionID)
	if c.opts.Recorder != nil {
		if err := c.opts.Recorder.Record(ctx, rec); err != nil {
			log.Warn("recording alert failed", "error", err.Error())
		}
	}
	cfg := notify.Config{Desktop: s.DesktopNotification, WebhookURL: s.WebhookURL}
	if c.opts.Notifier != nil && cfg.Enabled() {
		if err := c.opts.Notifier.Dispatch(ctx, cfg, rec); err != nil {
			log.Warn("notification failed", "error", err.Error())
		}
	}
}
