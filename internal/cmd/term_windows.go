//go:build windows

package cmd

import (
	"context"
	"os"
	"time"
)

func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// watchResize polls the console size, since Windows has no SIGWINCH.
func watchResize(ctx context.Context, f *os.File, s resizer) {
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		lastRows, lastCols := terminalSize(f)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rows, cols := terminalSize(f)
				if rows != lastRows || cols != lastCols {
					lastRows, lastCols = rows, cols
					syncSize(f, s)
				}
			}
		}
	}()
}
