package presenter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockModel struct{ enabled bool }

func (m *mockModel) Enabled() bool     { return m.enabled }
func (m *mockModel) SetEnabled(b bool) { m.enabled = b }

type mockRecorder struct {
	started, stopped int
	startErr         error
}

func (r *mockRecorder) Start() error {
	r.started++
	return r.startErr
}
func (r *mockRecorder) Stop()         { r.stopped++ }
func (r *mockRecorder) Running() bool { return r.started > r.stopped && r.startErr == nil }

type mockView struct {
	reset, editableCalls int
	lastEditable         bool
	lastError            string
}

func (v *mockView) PreviewReset()         { v.reset++ }
func (v *mockView) ConfigEditable(b bool) { v.editableCalls++; v.lastEditable = b }
func (v *mockView) ShowError(msg string)  { v.lastError = msg }

func factoryOf(recs ...*mockRecorder) (RecorderFactory, *int) {
	built := 0
	return func() (Recorder, error) {
		r := recs[built]
		built++
		return r, nil
	}, &built
}

func TestRecordPresenter_EnableDisable_Idempotent(t *testing.T) {
	m := &mockModel{}
	rec := &mockRecorder{}
	factory, built := factoryOf(rec)
	view := &mockView{}
	p := NewRecordPresenter(m, factory, view, nil)

	p.Enable()
	assert.True(t, m.Enabled())
	assert.Equal(t, 1, rec.started)
	assert.False(t, view.lastEditable)
	assert.Equal(t, 1, view.editableCalls)

	p.Enable()
	assert.Equal(t, 1, *built)
	assert.Equal(t, 1, rec.started)

	p.Disable()
	assert.False(t, m.Enabled())
	assert.Equal(t, 1, rec.stopped)
	assert.Equal(t, 1, view.reset)
	assert.True(t, view.lastEditable)

	p.Disable()
	assert.Equal(t, 1, rec.stopped)
	assert.Equal(t, 1, view.reset)
}

func TestRecordPresenter_ToggleBuildsFreshRecorder(t *testing.T) {
	first, second := &mockRecorder{}, &mockRecorder{}
	factory, built := factoryOf(first, second)
	m := &mockModel{}
	p := NewRecordPresenter(m, factory, &mockView{}, nil)

	p.Toggle()
	p.Toggle()
	p.Toggle()
	assert.Equal(t, 2, *built)
	assert.Equal(t, 1, first.stopped)
	assert.Equal(t, 1, second.started)
	assert.True(t, m.Enabled())
}

func TestRecordPresenter_StartFailureShowsError(t *testing.T) {
	rec := &mockRecorder{startErr: errors.New("ffmpeg not found")}
	factory, _ := factoryOf(rec)
	m := &mockModel{}
	view := &mockView{}
	p := NewRecordPresenter(m, factory, view, nil)

	p.Enable()
	assert.False(t, m.Enabled())
	assert.Contains(t, view.lastError, "ffmpeg not found")
	assert.Zero(t, view.editableCalls)

	p.Disable()
	assert.Zero(t, rec.stopped)
}

func TestRecordPresenter_FactoryFailure(t *testing.T) {
	m := &mockModel{}
	view := &mockView{}
	p := NewRecordPresenter(m, func() (Recorder, error) { return nil, errors.New("no display") }, view, nil)
	p.Toggle()
	assert.False(t, m.Enabled())
	assert.Contains(t, view.lastError, "no display")
}

func TestRecordPresenter_SyncAfterExternalStop(t *testing.T) {
	rec := &mockRecorder{}
	factory, _ := factoryOf(rec)
	m := &mockModel{}
	view := &mockView{}
	p := NewRecordPresenter(m, factory, view, nil)

	p.Enable()
	p.Sync()
	assert.True(t, m.Enabled())

	rec.stopped++ // stopped by the termination hook
	p.Sync()
	assert.False(t, m.Enabled())
	assert.True(t, view.lastEditable)
}
