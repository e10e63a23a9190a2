//go:build !windows

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}

// watchResize follows SIGWINCH until ctx is done.
func watchResize(ctx context.Context, f *os.File, s resizer) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				syncSize(f, s)
			}
		}
	}()
}
