package capture

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InstallShutdownHook calls stop and then then when the process receives
// SIGINT or SIGTERM, so an interrupted recording is still finalized. The
// returned remove func unregisters the hook; it is idempotent and safe to
// call from within stop.
func InstallShutdownHook(stop func(), then func(os.Signal), logger *slog.Logger) (remove func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	var once sync.Once
	remove = func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
	go func() {
		select {
		case sig := <-sigCh:
			if logger != nil {
				logger.Warn("termination signal received; finalizing recording", "signal", sig.String())
			}
			stop()
			remove()
			if then != nil {
				then(sig)
			}
		case <-done:
		}
	}()
	return remove
}
