package presenter

import (
	"fmt"

	"github.com/soocke/spectator-recorder/domain/capture"
	"github.com/soocke/spectator-recorder/ui/model"
)

// CountersView shows frame counters of the current recording.
type CountersView interface {
	SetCounters(text string)
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatsPresenter reflects recording state and frame counters. Views are only
// touched when the rendered text changes.
type StatsPresenter struct {
	sess      *model.SessionModel
	src       StatsSource
	counters  CountersView
	state     StateView
	lastState string
	lastCount string
}

func NewStatsPresenter(sess *model.SessionModel, src StatsSource, counters CountersView, state StateView) *StatsPresenter {
	return &StatsPresenter{sess: sess, src: src, counters: counters, state: state}
}

// Tick must run after SessionPresenter.Tick so the model holds fresh counters.
func (p *StatsPresenter) Tick() {
	if p == nil || p.src == nil {
		return
	}
	st, ok := p.src.SessionStats()
	enc, encOK := p.src.EncoderStats()

	label := "State: " + capture.StateIdle.String()
	if ok {
		label = "State: " + st.State.String()
		if st.State == capture.StateRunning && encOK && (enc.PipeBroken || enc.Exited) {
			label += " (encoder stopped)"
		}
	}
	if p.state != nil && label != p.lastState {
		p.lastState = label
		p.state.SetStateLabel(label)
	}

	frames, dups := p.sess.Counters()
	text := fmt.Sprintf("Frames: %d  Dup: %d", frames, dups)
	if encOK && enc.Dropped > 0 {
		text += fmt.Sprintf("  Dropped: %d", enc.Dropped)
	}
	if p.counters != nil && text != p.lastCount {
		p.lastCount = text
		p.counters.SetCounters(text)
	}
}
