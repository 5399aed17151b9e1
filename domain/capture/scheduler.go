package capture

import (
	"sync"
	"time"
)

// TickerScheduler runs each schedule on its own goroutine driven by a
// time.Ticker. Invocations of one schedule never overlap; ticks that arrive
// while fn is still running are coalesced by the ticker.
type TickerScheduler struct{}

var _ Scheduler = TickerScheduler{}

func (TickerScheduler) Every(period time.Duration, fn func()) (cancel func()) {
	if period <= 0 {
		period = time.Millisecond
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}
