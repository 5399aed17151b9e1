package view

import (
	"sync/atomic"
	"time"

	"github.com/soocke/spectator-recorder/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TkScheduler runs capture ticks on the Tk event loop with one-shot TclAfter
// timers re-armed after each tick. Every must be called on the Tk thread.
type TkScheduler struct{}

var _ capture.Scheduler = TkScheduler{}

func (TkScheduler) Every(period time.Duration, fn func()) (cancel func()) {
	if period <= 0 {
		period = time.Millisecond
	}
	// cancel may come from the termination hook goroutine, where Tk must not
	// be touched: it only raises the flag and the pending timer fires empty.
	var stopped atomic.Bool
	var arm func()
	arm = func() {
		TclAfter(period, func() {
			if stopped.Load() {
				return
			}
			fn()
			if !stopped.Load() {
				arm()
			}
		})
	}
	arm()
	return func() { stopped.Store(true) }
}
