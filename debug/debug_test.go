package debug

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soocke/spectator-recorder/domain/capture"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type probe struct {
	st  capture.EncoderStats
	ps  capture.ProcessStats
	err error
}

func (p probe) Stats() capture.EncoderStats                 { return p.st }
func (p probe) ProcessStats() (capture.ProcessStats, error) { return p.ps, p.err }

func TestStartEncoderLogger_LogsLiveEncoder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var out syncBuffer
		logger := slog.New(slog.NewTextHandler(&out, nil))
		ctx, cancel := context.WithCancel(context.Background())
		p := probe{st: capture.EncoderStats{PID: 77, Written: 10}, ps: capture.ProcessStats{CPUPercent: 3, RSSBytes: 4096}}

		StartEncoderLogger(ctx, time.Second, func() EncoderProbe { return p }, logger)
		time.Sleep(1500 * time.Millisecond)
		cancel()
		synctest.Wait()

		assert.Contains(t, out.String(), "encoder-stats")
		assert.Contains(t, out.String(), "pid=77")
		assert.Contains(t, out.String(), "rss=4096")
	})
}

func TestLogEncoder_SkipsExitedAndToleratesProbeErrors(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))

	logEncoder(probe{st: capture.EncoderStats{PID: 5, Exited: true}}, logger)
	assert.Empty(t, out.String())

	logEncoder(probe{st: capture.EncoderStats{PID: 5}, err: errors.New("denied")}, logger)
	assert.Contains(t, out.String(), "pid=5")
	assert.NotContains(t, out.String(), "cpu_percent")
}

func TestStartGoroutineLogger_StopsWithContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var out syncBuffer
		ctx, cancel := context.WithCancel(context.Background())
		StartGoroutineLogger(ctx, time.Second, slog.New(slog.NewTextHandler(&out, nil)))
		time.Sleep(2500 * time.Millisecond)
		cancel()
		synctest.Wait()
		assert.Equal(t, 2, bytes.Count([]byte(out.String()), []byte("goroutine-stacks")))
	})
}
