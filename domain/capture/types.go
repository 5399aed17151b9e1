package capture

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrEmptyTarget is returned by Session.Start when the capture target
	// reports a zero or negative dimension.
	ErrEmptyTarget = errors.New("capture: target has empty size")
	// ErrEncoderStart wraps any failure to launch the encoder process.
	ErrEncoderStart = errors.New("capture: encoder failed to start")
	// ErrAlreadyStarted is returned when a consumer is started twice.
	ErrAlreadyStarted = errors.New("capture: consumer already started")
)

// CaptureTarget is the renderable surface sampled on every tick. The size may
// change between calls; PaintInto must clip to dst's bounds.
type CaptureTarget interface {
	Width() int
	Height() int
	PaintInto(dst *image.RGBA) error
}

// FrameConsumer accepts a stream of equally sized frames and finalizes an
// output on Close.
//
// Lifecycle: Created -> Started -> Closed, or Created -> Failed when Start
// returns an error. ConsumeFrame is only honoured while started. Close is
// idempotent and a no-op before a successful Start.
type FrameConsumer interface {
	Start(width, height, fps int) error
	ConsumeFrame(frame image.Image, index int64)
	Close()
}

// Scheduler runs fn every period until the returned cancel func is called.
// Implementations must never run two invocations of fn concurrently.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// SessionState is the lifecycle state of a Session.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateStarting
	StateRunning
	StateStopped
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
