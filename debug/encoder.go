package debug

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/spectator-recorder/domain/capture"
)

// EncoderProbe is the part of capture.FFmpegEncoder sampled by the logger.
type EncoderProbe interface {
	Stats() capture.EncoderStats
	ProcessStats() (capture.ProcessStats, error)
}

// StartEncoderLogger logs write counters and CPU/RSS of the encoder child
// every interval. current returns the encoder of the active recording, or nil.
func StartEncoderLogger(ctx context.Context, interval time.Duration, current func() EncoderProbe, logger *slog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			if enc := current(); enc != nil {
				logEncoder(enc, logger)
			}
		}
	}()
}

func logEncoder(enc EncoderProbe, logger *slog.Logger) {
	st := enc.Stats()
	if st.PID == 0 || st.Exited {
		return
	}
	attrs := []any{
		slog.Int("pid", st.PID),
		slog.Uint64("written", st.Written),
		slog.Uint64("dropped", st.Dropped),
		slog.Bool("pipe_broken", st.PipeBroken),
	}
	if ps, err := enc.ProcessStats(); err == nil {
		attrs = append(attrs, slog.Float64("cpu_percent", ps.CPUPercent), slog.Uint64("rss", ps.RSSBytes))
	}
	logger.Info("encoder-stats", attrs...)
}
