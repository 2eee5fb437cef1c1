package util

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/small-frappuccino/modsheet/pkg/log"
)

// InterruptContext returns a context cancelled on SIGINT or SIGTERM.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// WaitForInterrupt blocks until ctx is done or an interrupt signal arrives, then
// runs callback (when non-nil).
func WaitForInterrupt(ctx context.Context, callback func()) {
	ctx, stop := InterruptContext(ctx)
	defer stop()

	<-ctx.Done()
	log.ApplicationLogger().Info("Received interrupt; shutting down")

	if callback != nil {
		callback()
	}
}
