package app

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/domain/capture"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func patternConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Source = config.SourcePattern
	cfg.PatternWidth, cfg.PatternHeight = 64, 36
	cfg.OutputPath = filepath.Join(t.TempDir(), "clips", "match.mp4")
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	return cfg
}

func TestTimestamped(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "clips/match-20240309-140507.mp4", timestamped("clips/match.mp4", ts))
	assert.Equal(t, "out-20240309-140507", timestamped("out", ts))
}

func TestTargetFor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source = config.SourcePattern
	cfg.PatternWidth, cfg.PatternHeight = 320, 180
	target, err := TargetFor(nil)(cfg)
	require.NoError(t, err)
	assert.IsType(t, &capture.PatternTarget{}, target)
	assert.Equal(t, 320, target.Width())
	assert.Equal(t, 180, target.Height())

	cfg.Source = config.SourceScreen
	target, err = TargetFor(func() image.Rectangle { return image.Rect(0, 0, 10, 10) })(cfg)
	require.NoError(t, err)
	assert.IsType(t, &capture.ScreenTarget{}, target)

	cfg.Source = "webcam"
	_, err = TargetFor(nil)(cfg)
	assert.Error(t, err)
}

func TestRecorder_Unconfigured(t *testing.T) {
	r := &Recorder{}
	_, err := r.New()
	assert.Error(t, err)
	_, err = r.Factory()()
	assert.Error(t, err)

	assert.Nil(t, r.Status())
	assert.Nil(t, r.EncoderProbe())
	_, ok := r.SessionStats()
	assert.False(t, ok)
	_, ok = r.EncoderStats()
	assert.False(t, ok)
	assert.False(t, r.Snapshot(func(*image.RGBA, int64) { t.Fatal("no frame expected") }))
	r.Stop()
}

func TestRecorder_NewTracksLatestSession(t *testing.T) {
	cfg := patternConfig(t)
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	r := &Recorder{Config: cfg, Logger: quietLogger(), Target: TargetFor(nil), Timestamp: true, Now: func() time.Time { return now }}

	s, err := r.New()
	require.NoError(t, err)
	assert.Equal(t, capture.StateIdle, s.State())
	assert.DirExists(t, filepath.Dir(cfg.OutputPath))

	rec := r.Status()
	require.NotNil(t, rec)
	assert.Equal(t, timestamped(cfg.OutputPath, now), rec.Output)
	assert.NotNil(t, r.EncoderProbe())

	st, ok := r.SessionStats()
	require.True(t, ok)
	assert.Equal(t, s.ID(), st.ID)

	// Idle sessions lend no preview frames.
	assert.False(t, r.Snapshot(func(*image.RGBA, int64) {}))

	s2, err := r.New()
	require.NoError(t, err)
	st, _ = r.SessionStats()
	assert.Equal(t, s2.ID(), st.ID)
	assert.NotEqual(t, s.ID(), s2.ID())
}

func TestRecorder_SnapshotOfConfigAtNew(t *testing.T) {
	cfg := patternConfig(t)
	r := &Recorder{Config: cfg, Logger: quietLogger(), Target: TargetFor(nil)}
	s, err := r.New()
	require.NoError(t, err)
	cfg.FPS = 60
	assert.Equal(t, 30, s.FPS())
}

func TestRecorder_StartFailsWithoutEncoder(t *testing.T) {
	cfg := patternConfig(t)
	r := &Recorder{Config: cfg, Logger: quietLogger(), Target: TargetFor(nil)}
	rec, err := r.Factory()()
	require.NoError(t, err)
	err = rec.Start()
	require.ErrorIs(t, err, capture.ErrEncoderStart)
	assert.False(t, rec.Running())

	enc, ok := r.EncoderStats()
	require.True(t, ok)
	assert.Zero(t, enc.Written)
}

func TestRunHeadless_EncoderMissing(t *testing.T) {
	cfg := patternConfig(t)
	err := RunHeadless(context.Background(), cfg, quietLogger())
	require.ErrorIs(t, err, capture.ErrEncoderStart)
}

func TestRunHeadless_UnknownSource(t *testing.T) {
	cfg := patternConfig(t)
	cfg.Source = "webcam"
	err := RunHeadless(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Dir(cfg.OutputPath))
	assert.True(t, os.IsNotExist(statErr))
}
