package capture

import (
	"time"
)

// SessionStats summarises capture loop behaviour for instrumentation.
type SessionStats struct {
	ID          string
	State       SessionState
	FPS         int
	Width       int
	Height      int
	Ticks       uint64
	Frames      int64
	Duplicates  uint64
	CappedTicks uint64
	PaintErrors uint64
	Resizes     uint64
	AvgPaint    time.Duration
	Elapsed     time.Duration
	StartedAt   time.Time
}

// EncoderStats reports the write path of an FFmpegEncoder.
type EncoderStats struct {
	PID        int
	Written    uint64
	Dropped    uint64
	PipeBroken bool
	Exited     bool
	ExitCode   int
	LogPath    string
}

// ProcessStats is a point-in-time resource sample of the encoder process.
type ProcessStats struct {
	CPUPercent float64
	RSSBytes   uint64
}
