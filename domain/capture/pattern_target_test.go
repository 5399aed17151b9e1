package capture

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternTarget_Bars(t *testing.T) {
	pt := NewPatternTarget(70, 8)
	dst := newFrameBuffer(70, 8)
	require.NoError(t, pt.PaintInto(dst))

	for i, want := range barColors {
		assert.Equal(t, want, dst.RGBAAt(i*10+5, 0), "bar %d", i)
	}
	assert.Equal(t, markerColor, dst.RGBAAt(0, 7))
	assert.Equal(t, barColors[0], dst.RGBAAt(0, 0))
}

func TestPatternTarget_MarkerAdvances(t *testing.T) {
	pt := NewPatternTarget(14, 4)
	dst := newFrameBuffer(14, 4)
	for i := 0; i < 3; i++ {
		require.NoError(t, pt.PaintInto(dst))
	}
	assert.Equal(t, int64(3), pt.Paints())
	assert.Equal(t, markerColor, dst.RGBAAt(2, 3))
	assert.Equal(t, barColors[0], dst.RGBAAt(1, 3))
}

func TestPatternTarget_ResizeClipsToBuffer(t *testing.T) {
	pt := NewPatternTarget(4, 4)
	dst := newFrameBuffer(4, 4)
	pt.Resize(2, 2)
	clearFrame(dst)
	require.NoError(t, pt.PaintInto(dst))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(3, 3))
	assert.NotEqual(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(1, 0))

	pt.Resize(40, 40)
	require.NoError(t, pt.PaintInto(dst))
	assert.Equal(t, 40, pt.Width())

	pt.Resize(0, -1)
	assert.ErrorIs(t, pt.PaintInto(dst), ErrEmptyTarget)
	assert.Equal(t, 0, pt.Height())
}

func TestPatternTarget_RecordsThroughSession(t *testing.T) {
	pt := NewPatternTarget(16, 8)
	hs := newHarness(t, 30, 0, 0)
	s := NewSession(pt, hs.consumer, 30, WithScheduler(hs.sched), WithClock(hs.clock.Now), WithLogger(discardLogger))
	require.NoError(t, s.Start())
	for i := 0; i < 5; i++ {
		hs.clock.Advance(33 * time.Millisecond)
		hs.sched.tick()
	}
	s.Stop()
	assert.Equal(t, int64(5), pt.Paints())
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, hs.consumer.indices)
	assert.Equal(t, 16, hs.consumer.w)
}
