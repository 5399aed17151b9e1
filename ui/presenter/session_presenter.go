package presenter

import (
	"time"

	"github.com/soocke/spectator-recorder/domain/capture"
	"github.com/soocke/spectator-recorder/ui/model"
)

// StatsSource exposes counters of the current (or last) recording.
type StatsSource interface {
	SessionStats() (capture.SessionStats, bool)
	EncoderStats() (capture.EncoderStats, bool)
}

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats recording durations from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	src  StatsSource
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src StatsSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, view: view}
}

// Tick samples the recorder into the model and pushes durations to the view.
func (p *SessionPresenter) Tick() {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil {
		return
	}
	if st, ok := p.src.SessionStats(); ok {
		p.sess.Observe(st)
	}
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
