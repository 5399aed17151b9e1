package presenter

import (
	"log/slog"
)

// RecordingModel provides recording on/off state access.
type RecordingModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// Recorder is the lifecycle the presenter needs from a capture session.
type Recorder interface {
	Start() error
	Stop()
	Running() bool
}

// RecorderFactory builds a fresh, idle recorder from the current settings.
type RecorderFactory func() (Recorder, error)

// RecordView updates UI elements affected by toggling recording.
type RecordView interface {
	PreviewReset()
	ConfigEditable(bool)
	ShowError(msg string)
}

// RecordPresenter owns presentation logic for toggling recording.
type RecordPresenter struct {
	model       RecordingModel
	newRecorder RecorderFactory
	view        RecordView
	logger      *slog.Logger
	active      Recorder
}

func NewRecordPresenter(model RecordingModel, factory RecorderFactory, view RecordView, logger *slog.Logger) *RecordPresenter {
	return &RecordPresenter{model: model, newRecorder: factory, view: view, logger: logger}
}

func (p *RecordPresenter) ready() bool {
	return p != nil && p.model != nil && p.newRecorder != nil && p.view != nil
}

// Enable builds and starts a new recording. Idempotent. Start failures are
// shown to the user and leave recording off.
func (p *RecordPresenter) Enable() {
	if !p.ready() || p.model.Enabled() {
		return
	}
	rec, err := p.newRecorder()
	if err == nil {
		err = rec.Start()
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Error("recording failed to start", "error", err)
		}
		p.view.ShowError("Recording failed: " + err.Error())
		return
	}
	p.active = rec
	p.model.SetEnabled(true)
	p.view.ShowError("")
	p.view.ConfigEditable(false)
}

// Disable stops the active recording, finalizing the file. Idempotent.
func (p *RecordPresenter) Disable() {
	if !p.ready() || !p.model.Enabled() {
		return
	}
	if p.active != nil {
		p.active.Stop()
	}
	p.model.SetEnabled(false)
	p.view.PreviewReset()
	p.view.ConfigEditable(true)
}

// Toggle flips recording delegating to Enable/Disable.
func (p *RecordPresenter) Toggle() {
	if !p.ready() {
		return
	}
	if p.model.Enabled() {
		p.Disable()
		return
	}
	p.Enable()
}

// Sync reconciles the model with a recording that was stopped elsewhere,
// e.g. by the termination hook.
func (p *RecordPresenter) Sync() {
	if !p.ready() || !p.model.Enabled() || p.active == nil {
		return
	}
	if !p.active.Running() {
		p.Disable()
	}
}
