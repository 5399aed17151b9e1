package model

import (
	"sync/atomic"
)

// RecordingModel tracks whether the user has recording switched on. The zero
// value is off and usable. The flag is atomic because the shutdown hook may
// stop a recording off the UI thread.
type RecordingModel struct {
	enabled atomic.Bool
	started atomic.Int64
}

// Enabled reports whether recording is on.
func (m *RecordingModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the flag; each off -> on transition counts one recording.
func (m *RecordingModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	if m.enabled.Swap(b) == b {
		return
	}
	if b {
		m.started.Add(1)
	}
}

// Recordings returns how many recordings were started in this process.
func (m *RecordingModel) Recordings() int64 {
	if m == nil {
		return 0
	}
	return m.started.Load()
}
