package app

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/debug"
	"github.com/soocke/spectator-recorder/domain/capture"
	"github.com/soocke/spectator-recorder/status"
	"github.com/soocke/spectator-recorder/ui/presenter"
)

// Recorder builds capture sessions from the current configuration and keeps
// the latest one reachable for the UI, the status endpoint and debug logs.
type Recorder struct {
	Config *config.Config
	Logger *slog.Logger
	// Target builds the capture target for a new recording.
	Target func(cfg *config.Config) (capture.CaptureTarget, error)
	// Scheduler overrides the per-session ticker when non-nil.
	Scheduler func(cfg *config.Config) capture.Scheduler
	// OnSignal installs the termination hook on each session when non-nil.
	OnSignal func(os.Signal)
	// Timestamp suffixes every output file with its start time.
	Timestamp bool
	Now       func() time.Time

	mu      sync.Mutex
	session *capture.Session
	encoder *capture.FFmpegEncoder
	output  string
}

var (
	_ presenter.StatsSource = (*Recorder)(nil)
	_ presenter.FrameSource = (*Recorder)(nil)
)

// New returns an idle session wired to a fresh encoder. It replaces the
// previous recording as the one reported by the stats accessors.
func (r *Recorder) New() (*capture.Session, error) {
	if r.Config == nil || r.Target == nil {
		return nil, fmt.Errorf("recorder: not configured")
	}
	cfg := *r.Config
	target, err := r.Target(&cfg)
	if err != nil {
		return nil, fmt.Errorf("capture target: %w", err)
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	output := cfg.OutputPath
	if r.Timestamp {
		output = timestamped(output, now())
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: output dir: %v", capture.ErrEncoderStart, err)
		}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enc := capture.NewFFmpegEncoder(capture.EncoderOptions{
		Binary:     cfg.FFmpegPath,
		OutputPath: output,
		Codec:      cfg.Codec,
		Preset:     cfg.Preset,
		CRF:        cfg.CRF,
	}, logger)
	opts := []capture.SessionOption{capture.WithLogger(logger)}
	if r.Scheduler != nil {
		opts = append(opts, capture.WithScheduler(r.Scheduler(&cfg)))
	}
	if r.OnSignal != nil {
		opts = append(opts, capture.WithShutdownHook(r.OnSignal))
	}
	s := capture.NewSession(target, enc, cfg.FPS, opts...)

	r.mu.Lock()
	r.session, r.encoder, r.output = s, enc, output
	r.mu.Unlock()
	return s, nil
}

// Factory adapts New for the record presenter.
func (r *Recorder) Factory() presenter.RecorderFactory {
	return func() (presenter.Recorder, error) {
		s, err := r.New()
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (r *Recorder) current() (*capture.Session, *capture.FFmpegEncoder, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session, r.encoder, r.output
}

// Stop finalizes the active recording, if any.
func (r *Recorder) Stop() {
	if s, _, _ := r.current(); s != nil {
		s.Stop()
	}
}

func (r *Recorder) SessionStats() (capture.SessionStats, bool) {
	s, _, _ := r.current()
	if s == nil {
		return capture.SessionStats{}, false
	}
	return s.Stats(), true
}

func (r *Recorder) EncoderStats() (capture.EncoderStats, bool) {
	_, enc, _ := r.current()
	if enc == nil {
		return capture.EncoderStats{}, false
	}
	return enc.Stats(), true
}

// Snapshot lends the last painted frame of a running recording.
func (r *Recorder) Snapshot(fn func(img *image.RGBA, seq int64)) bool {
	s, _, _ := r.current()
	if s == nil || !s.Running() {
		return false
	}
	s.Snapshot(func(img *image.RGBA) { fn(img, s.FrameCount()) })
	return true
}

// Status is the status.Provider of the recorder.
func (r *Recorder) Status() *status.Recording {
	s, enc, out := r.current()
	if s == nil {
		return nil
	}
	return &status.Recording{Session: s, Encoder: enc, Output: out}
}

// EncoderProbe returns the active encoder for the debug logger.
func (r *Recorder) EncoderProbe() debug.EncoderProbe {
	if _, enc, _ := r.current(); enc != nil {
		return enc
	}
	return nil
}

// timestamped inserts start time before the extension:
// "clips/match.mp4" -> "clips/match-20060102-150405.mp4".
func timestamped(path string, t time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + t.Format("20060102-150405") + ext
}

// TargetFor returns the capture target factory for cfg.Source. region feeds
// the screen target; nil records the persisted selection.
func TargetFor(region func() image.Rectangle) func(cfg *config.Config) (capture.CaptureTarget, error) {
	return func(cfg *config.Config) (capture.CaptureTarget, error) {
		switch cfg.Source {
		case config.SourcePattern:
			return capture.NewPatternTarget(cfg.PatternWidth, cfg.PatternHeight), nil
		case config.SourceScreen, "":
			rf := region
			if rf == nil {
				sel := cfg.SelectionRect()
				rf = func() image.Rectangle { return sel }
			}
			return capture.NewScreenTarget(rf), nil
		default:
			return nil, fmt.Errorf("unknown source %q", cfg.Source)
		}
	}
}
