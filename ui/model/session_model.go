package model

import (
	"time"

	"github.com/soocke/spectator-recorder/domain/capture"
)

// SessionModel tracks the duration of the current recording and the total
// recorded time across recordings of this process. Durations come from the
// capture session's own clock, so a stopped recording keeps its final length.
// The zero value is ready to use.
type SessionModel struct {
	id          string
	current     time.Duration
	accumulated time.Duration
	frames      int64
	duplicates  uint64
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// Observe folds a stats sample into the model. A new recording ID closes the
// previous recording into the total.
func (m *SessionModel) Observe(st capture.SessionStats) {
	if m == nil || st.ID == "" {
		return
	}
	if st.ID != m.id {
		m.accumulated += m.current
		m.id = st.ID
		m.current = 0
	}
	m.current = st.Elapsed
	m.frames = st.Frames
	m.duplicates = st.Duplicates
}

// Values returns the current recording duration and the total including it.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	return m.current, m.accumulated + m.current
}

// Counters returns frame and duplicate counts of the current recording.
func (m *SessionModel) Counters() (frames int64, duplicates uint64) {
	if m == nil {
		return 0, 0
	}
	return m.frames, m.duplicates
}
