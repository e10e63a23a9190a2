package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lazyvibe/failbell/internal/alert"
	"github.com/lazyvibe/failbell/internal/app"
	"github.com/lazyvibe/failbell/internal/logging"
	"github.com/lazyvibe/failbell/internal/model"
	"github.com/lazyvibe/failbell/internal/runtime"
	"github.com/lazyvibe/failbell/internal/runtime/driver"
	"github.com/lazyvibe/failbell/internal/store"
	"github.com/lazyvibe/failbell/internal/ui"
	"github.com/lazyvibe/failbell/pkg/utils"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [--] [command [args...]]",
	Short: "Run a command, or your shell, and ring on failure",
	Long: `Run a command inside a pseudo-terminal and play an alert when it fails.

Without a command, your shell ($SHELL) is started and every command you run
in it is watched for error output. Use -c to pass a whole command line to
the shell instead of an argument list.`,
	Example: `  failbell run -- go test ./...
  failbell run -c "npm run build && npm test"
  failbell run`,
	RunE: runRun,
}

var (
	runCommandLine string
	runShell       string
	runDir         string
	runEnv         []string
	runVerbose     bool
	runNoWatch     bool
)

func init() {
	runCmd.Flags().StringVarP(&runCommandLine, "command", "c", "", "command line to run through the shell")
	runCmd.Flags().StringVar(&runShell, "shell", "", "shell to use (default $SHELL)")
	runCmd.Flags().StringVarP(&runDir, "dir", "C", "", "working directory")
	runCmd.Flags().StringArrayVarP(&runEnv, "env", "e", nil, "extra environment variables (KEY=VALUE, repeatable)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "also print alert and debounce notices")
	runCmd.Flags().BoolVar(&runNoWatch, "no-watch", false, "do not reload the config file on change")
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	spec, err := buildSpec(args)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Close()

	cfgPath, err := configPath()
	if err != nil {
		return err
	}

	minLevel := alert.LevelWarn
	if runVerbose {
		minLevel = alert.LevelInfo
	}
	printer := ui.NewNoticePrinter(cmd.ErrOrStderr(), minLevel)

	snap, loadErr := loadSnapshot(cfgPath, log)
	if loadErr != nil {
		printer.Report(alert.Notice{Level: alert.LevelWarn, Message: "using default settings: " + loadErr.Error(), Err: loadErr})
	}

	var session runtime.Session
	opts := controllerOptions(log, printer)
	opts.SessionInfo = func(string) alert.SessionInfo {
		if session == nil {
			return alert.SessionInfo{Name: spec.DisplayName()}
		}
		return alert.SessionInfo{Name: session.Name(), Excerpt: session.LastLine()}
	}
	if dir, err := dataDir(); err == nil {
		if st, err := store.NewJSONStore(dir); err == nil {
			opts.Recorder = st
		} else {
			log.Warn("alert history disabled", "error", err.Error())
		}
	}
	ctrl := alert.NewController(opts)
	ctrl.Initialize(snap)
	defer ctrl.Dispose()

	ctx, stop := signal.NotifyContext(cmd.Context(), terminationSignals()...)
	defer stop()

	engine := runtime.NewEngineWithConfig(driver.Config{Shell: runShell})
	defer engine.Shutdown()

	stdin, stdout := os.Stdin, cmd.OutOrStdout()
	rows, cols := terminalSize(os.Stdout)
	session, err = engine.CreateSession(ctx, spec, rows, cols)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", spec.DisplayName(), err)
	}
	log = log.WithSession(session.ID())
	log.Info("session started", "name", session.Name(), "command", spec.Command, "args", spec.Args)

	if term, err := makeRaw(stdin); err == nil {
		defer term.Restore()
		printer.SetRaw(true)
	} else if !errors.Is(err, errNotTerminal) {
		log.Warn("raw mode unavailable", "error", err.Error())
	}
	watchResize(ctx, os.Stdout, session)
	go forwardInput(stdin, session, log)

	r := &runner{engine: engine, ctrl: ctrl, log: log, out: stdout, printer: printer, cfgPath: cfgPath}
	if !runNoWatch {
		if w, err := app.NewWatcher(cfgPath); err == nil {
			defer w.Close()
			r.reload, r.watchErrs = w.Changes(), w.Errors()
		} else {
			log.Warn("config watch disabled", "path", cfgPath, "error", err.Error())
		}
	}

	code := r.loop(ctx, session)
	log.Info("session finished", "exit_code", codeAttr(code))
	switch {
	case code == nil:
		return &ExitError{Code: 1}
	case *code != 0:
		return &ExitError{Code: *code}
	}
	return nil
}

// buildSpec turns the command line into a session spec.
func buildSpec(args []string) (*model.SessionSpec, error) {
	if runCommandLine != "" && len(args) > 0 {
		return nil, errors.New("use either -c or a command, not both")
	}
	var spec *model.SessionSpec
	if runCommandLine != "" {
		spec = model.NewShellSpec(runCommandLine)
	} else {
		if len(args) == 1 {
			// A single quoted argument such as "npm test" is split like a shell would.
			split, err := utils.SplitArgs(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid command: %w", err)
			}
			args = split
		}
		spec = model.NewSessionSpec(args)
	}
	spec.Dir = utils.ExpandPath(runDir)
	env, err := utils.ParseEnvFlags(runEnv)
	if err != nil {
		return nil, err
	}
	for k, v := range env {
		spec.SetEnvVar(k, v)
	}
	return spec, nil
}

// runner drives one session: it passes output through, feeds every event
// to the controller and applies config reloads, all from one goroutine.
type runner struct {
	engine    runtime.Engine
	ctrl      *alert.Controller
	log       *logging.Logger
	out       io.Writer
	printer   alert.Reporter
	cfgPath   string
	reload    <-chan struct{}
	watchErrs <-chan error
}

// loop runs until the session closes and returns its exit code, nil when
// unknown.
func (r *runner) loop(ctx context.Context, session runtime.Session) *int {
	var code *int
	stopping := false
	for {
		select {
		case ev := <-r.engine.Events():
			if ev.SessionID != session.ID() {
				r.ctrl.HandleEvent(ev)
				continue
			}
			switch ev.Kind {
			case runtime.EventData:
				if _, err := r.out.Write(ev.Data); err != nil {
					r.log.Debug("output write failed", "error", err.Error())
				}
			case runtime.EventExit:
				code = ev.ExitCode
			}
			r.ctrl.HandleEvent(ev)
			if ev.Kind == runtime.EventClosed {
				if code == nil {
					r.log.Warn("session ended without an exit code", "error", errString(session.ExitError()))
				}
				return code
			}

		case <-r.reload:
			r.reloadConfig()

		case err := <-r.watchErrs:
			r.log.Warn("config watcher error", "error", err.Error())

		case <-ctx.Done():
			if !stopping {
				stopping = true
				r.log.Info("stopping session", "reason", ctx.Err().Error())
				if err := r.engine.CloseSession(session.ID()); err != nil {
					r.log.Warn("stopping session failed", "error", err.Error())
				}
			}
			// Keep draining until the session reports it has closed.
			ctx = context.Background()
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// reloadConfig applies the config file. A broken file keeps the current
// settings.
func (r *runner) reloadConfig() {
	snap, err := app.LoadSettings(r.cfgPath)
	if err != nil {
		r.log.Warn("config reload failed", "path", r.cfgPath, "error", err.Error())
		r.printer.Report(alert.Notice{
			Level:   alert.LevelWarn,
			Message: "config reload failed, keeping previous settings: " + err.Error(),
			Err:     err,
		})
		return
	}
	r.ctrl.ApplyConfig(snap)
	r.log.Info("config reloaded", "path", r.cfgPath)
}

// forwardInput copies stdin to the session until either side closes.
func forwardInput(in io.Reader, session runtime.Session, log *logging.Logger) {
	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if _, werr := session.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("stdin read failed", "error", err.Error())
			}
			return
		}
	}
}

func codeAttr(code *int) any {
	if code == nil {
		return "unknown"
	}
	return *code
}
