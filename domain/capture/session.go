package capture

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	statsLogInterval = 5 * time.Second
	warnInterval     = 2 * time.Second
)

// Session samples a CaptureTarget at a fixed frame rate and forwards every
// sample to a FrameConsumer, inserting duplicate frames so the delivered
// frame count tracks wall-clock time rather than tick count.
//
// Ticks and Stop are serialized by a mutex: a tick in progress completes
// before Stop proceeds, and no tick does any work once Stop has returned.
// Use NewSession to construct an instance.
type Session struct {
	mu         sync.Mutex
	target     CaptureTarget
	consumer   FrameConsumer
	fps        int
	sched      Scheduler
	now        func() time.Time
	logger     *slog.Logger
	id         string
	hookThen   func(os.Signal)
	removeHook func()

	// guarded by mu
	frame  *image.RGBA
	start  time.Time
	cancel func()

	state      atomic.Int32
	frameIndex atomic.Int64
	startNanos atomic.Int64
	stopNanos  atomic.Int64
	width      atomic.Int32
	height     atomic.Int32

	ticks       atomic.Uint64
	duplicates  atomic.Uint64
	cappedTicks atomic.Uint64
	paintErrors atomic.Uint64
	resizes     atomic.Uint64
	paintNanos  atomic.Uint64

	resizeWarn rate.Sometimes
	capWarn    rate.Sometimes
	paintWarn  rate.Sometimes
	statsLog   rate.Sometimes
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. The session adds a recording ID.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScheduler replaces the default TickerScheduler.
func WithScheduler(sched Scheduler) SessionOption {
	return func(s *Session) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// WithClock replaces time.Now for drift correction and statistics.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithShutdownHook makes the running session stop itself on SIGINT/SIGTERM
// and then call then with the received signal. The hook is removed by an
// orderly Stop.
func WithShutdownHook(then func(os.Signal)) SessionOption {
	return func(s *Session) {
		if then == nil {
			then = func(os.Signal) {}
		}
		s.hookThen = then
	}
}

// NewSession constructs an idle session recording target into consumer at fps.
func NewSession(target CaptureTarget, consumer FrameConsumer, fps int, opts ...SessionOption) *Session {
	s := &Session{
		target:     target,
		consumer:   consumer,
		fps:        fps,
		sched:      TickerScheduler{},
		now:        time.Now,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		id:         uuid.NewString(),
		resizeWarn: rate.Sometimes{First: 1, Interval: warnInterval},
		capWarn:    rate.Sometimes{First: 1, Interval: warnInterval},
		paintWarn:  rate.Sometimes{First: 1, Interval: warnInterval},
		statsLog:   rate.Sometimes{Interval: statsLogInterval},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fps <= 0 {
		s.fps = 1
	}
	s.logger = s.logger.With("recording", s.id)
	return s
}

// ID returns the recording identifier used in logs.
func (s *Session) ID() string { return s.id }

// FPS returns the session frame rate.
func (s *Session) FPS() int { return s.fps }

// State returns the lifecycle state.
func (s *Session) State() SessionState { return SessionState(s.state.Load()) }

// Running reports whether the session is between a successful Start and Stop.
func (s *Session) Running() bool { return s.State() == StateRunning }

// FrameCount returns the number of frames handed to the consumer, duplicates
// included.
func (s *Session) FrameCount() int64 { return s.frameIndex.Load() }

func (s *Session) setState(st SessionState) { s.state.Store(int32(st)) }

// period is 1000/fps milliseconds, truncated.
func (s *Session) period() time.Duration {
	return time.Duration(1000/s.fps) * time.Millisecond
}

// Start sizes the frame buffer from the target, starts the consumer and
// schedules ticks. It fails with ErrEmptyTarget when the target has no area
// (the consumer is not touched) and propagates consumer start errors; in
// both cases nothing is scheduled. Calling Start on a session that is not
// idle logs a warning and does nothing.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.State(); st != StateIdle {
		s.logger.Warn("capture session already started", "state", st.String())
		return nil
	}
	if s.target == nil {
		return fmt.Errorf("%w: no target", ErrEmptyTarget)
	}
	w, h := s.target.Width(), s.target.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyTarget, w, h)
	}
	s.setState(StateStarting)
	s.frame = newFrameBuffer(w, h)
	if err := s.consumer.Start(w, h, s.fps); err != nil {
		s.frame = nil
		s.setState(StateStopped)
		s.logger.Error("capture session failed to start", "error", err)
		return err
	}
	s.start = s.now()
	s.startNanos.Store(s.start.UnixNano())
	s.width.Store(int32(w))
	s.height.Store(int32(h))
	s.frameIndex.Store(0)
	s.setState(StateRunning)
	s.cancel = s.sched.Every(s.period(), s.CaptureFrame)
	if s.hookThen != nil {
		s.removeHook = InstallShutdownHook(s.Stop, s.hookThen, s.logger)
	}
	s.logger.Info("capture session started", "size", fmt.Sprintf("%dx%d", w, h), "fps", s.fps, "period", s.period())
	return nil
}

// CaptureFrame runs one tick: paint the target, deliver the frame and then
// deliver duplicates of it until the frame count catches up with wall-clock
// time, at most 2*fps duplicates per tick.
func (s *Session) CaptureFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() != StateRunning || s.target == nil {
		return
	}
	s.ticks.Add(1)

	// The encoder cannot change resolution mid-file: keep the buffer and let
	// the paint clip or letterbox.
	bw, bh := s.frame.Rect.Dx(), s.frame.Rect.Dy()
	if w, h := s.target.Width(), s.target.Height(); w != bw || h != bh {
		s.resizes.Add(1)
		s.resizeWarn.Do(func() {
			s.logger.Warn("capture target size changed; frames may be cropped or padded",
				"recording_size", fmt.Sprintf("%dx%d", bw, bh),
				"target_size", fmt.Sprintf("%dx%d", w, h),
			)
		})
	}

	clearFrame(s.frame)
	paintStart := s.now()
	if err := s.target.PaintInto(s.frame); err != nil {
		s.paintErrors.Add(1)
		s.paintWarn.Do(func() { s.logger.Warn("capture target paint failed", "error", err) })
	}
	if d := s.now().Sub(paintStart); d > 0 {
		s.paintNanos.Add(uint64(d))
	}
	s.deliver()

	expected := s.expectedFrames(s.now())
	limit := 2 * s.fps
	dups := 0
	for s.frameIndex.Load() < expected && dups < limit {
		s.deliver()
		dups++
	}
	s.duplicates.Add(uint64(dups))
	if behind := expected - s.frameIndex.Load(); behind > 0 {
		s.cappedTicks.Add(1)
		s.capWarn.Do(func() {
			s.logger.Warn("duplicate cap reached; output is behind real time",
				"behind_frames", behind,
				"duplicates", dups,
			)
		})
	}
	s.statsLog.Do(s.logStats)
}

func (s *Session) deliver() {
	idx := s.frameIndex.Load()
	s.consumer.ConsumeFrame(s.frame, idx)
	s.frameIndex.Store(idx + 1)
}

func (s *Session) expectedFrames(now time.Time) int64 {
	elapsed := now.Sub(s.start)
	if elapsed <= 0 {
		return 0
	}
	return int64(elapsed) * int64(s.fps) / int64(time.Second)
}

// Stop cancels the tick schedule, closes the consumer and marks the session
// stopped. It waits for an in-flight tick, may be called from any goroutine
// and is a no-op unless the session is running.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() != StateRunning {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.consumer.Close()
	s.stopNanos.Store(s.now().UnixNano())
	s.setState(StateStopped)
	if s.removeHook != nil {
		s.removeHook()
		s.removeHook = nil
	}
	st := s.Stats()
	s.logger.Info("capture session stopped",
		"frames", st.Frames,
		"duplicates", st.Duplicates,
		"ticks", st.Ticks,
		"elapsed", st.Elapsed,
	)
}

// Snapshot calls fn with the most recently painted frame while holding the
// capture lock. fn must not retain the image.
func (s *Session) Snapshot(fn func(*image.RGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.ticks.Load() == 0 {
		return
	}
	fn(s.frame)
}

// Stats returns a snapshot of capture counters. It never blocks on a tick.
func (s *Session) Stats() SessionStats {
	ticks := s.ticks.Load()
	var avg time.Duration
	if ticks > 0 {
		avg = time.Duration(s.paintNanos.Load() / ticks)
	}
	var started time.Time
	var elapsed time.Duration
	if n := s.startNanos.Load(); n != 0 {
		started = time.Unix(0, n)
		end := s.now().UnixNano()
		if stop := s.stopNanos.Load(); stop != 0 {
			end = stop
		}
		elapsed = time.Duration(end - n)
	}
	return SessionStats{
		ID:          s.id,
		State:       s.State(),
		FPS:         s.fps,
		Width:       int(s.width.Load()),
		Height:      int(s.height.Load()),
		Ticks:       ticks,
		Frames:      s.frameIndex.Load(),
		Duplicates:  s.duplicates.Load(),
		CappedTicks: s.cappedTicks.Load(),
		PaintErrors: s.paintErrors.Load(),
		Resizes:     s.resizes.Load(),
		AvgPaint:    avg,
		Elapsed:     elapsed,
		StartedAt:   started,
	}
}

func (s *Session) logStats() {
	st := s.Stats()
	s.logger.Debug("capture.stats",
		"frames", st.Frames,
		"ticks", st.Ticks,
		"duplicates", st.Duplicates,
		"capped_ticks", st.CappedTicks,
		"avg_paint", st.AvgPaint,
		"elapsed", st.Elapsed,
	)
}
