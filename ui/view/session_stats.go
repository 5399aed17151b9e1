package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows recording durations and frame counters.
type SessionStats interface {
	SetSession(session, total time.Duration)
	SetCounters(text string)
}

type sessionStats struct {
	sessionLbl  *LabelWidget
	totalLbl    *LabelWidget
	countersLbl *LabelWidget
}

// NewSessionStats creates the duration labels at (row, startCol) and
// (row, startCol+1) and the counters label one row below spanning both.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(16)), totalLbl: Label(Width(16)), countersLbl: Label(Anchor("w"))}
	if parent != nil {
		Grid(s.sessionLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
		Grid(s.countersLbl, In(parent), Row(row+1), Column(startCol), Columnspan(2), Sticky("we"), Padx("0.2m"))
	} else {
		Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
		Grid(s.countersLbl, Row(row+1), Column(startCol), Columnspan(2), Sticky("we"), Padx("0.2m"))
	}
	s.SetSession(0, 0)
	s.SetCounters("Frames: 0  Dup: 0")
	return s
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	h, m, sec := seconds/3600, (seconds/60)%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// SetSession updates both duration displays.
func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Recording: " + clock(session)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
}

func (s *sessionStats) SetCounters(text string) {
	if s == nil || s.countersLbl == nil {
		return
	}
	s.countersLbl.Configure(Txt(text))
}
