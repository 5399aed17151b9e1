package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Record   *RecordPresenter
	Session  *SessionPresenter
	Stats    *StatsPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(record *RecordPresenter, sess *SessionPresenter, stats *StatsPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Record: record, Session: sess, Stats: stats, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// A recording stopped by a signal must flip the toggle back first.
	if l.Record != nil {
		l.Record.Sync()
	}
	if l.Session != nil {
		l.Session.Tick()
	}
	if l.Stats != nil {
		l.Stats.Tick()
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
