package status

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"github.com/soocke/spectator-recorder/domain/capture"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionSource is the part of capture.Session the endpoint reads.
type SessionSource interface {
	Stats() capture.SessionStats
}

// EncoderSource is the part of capture.FFmpegEncoder the endpoint reads.
type EncoderSource interface {
	Stats() capture.EncoderStats
	ProcessStats() (capture.ProcessStats, error)
}

// Recording is what a Provider hands out for the active recording.
type Recording struct {
	Session SessionSource
	Encoder EncoderSource
	Output  string
}

// Provider returns the current recording, or nil when nothing was started.
type Provider func() *Recording

type EncoderReport struct {
	PID        int     `json:"pid"`
	Written    uint64  `json:"written"`
	Dropped    uint64  `json:"dropped"`
	PipeBroken bool    `json:"pipe_broken"`
	Exited     bool    `json:"exited"`
	ExitCode   int     `json:"exit_code"`
	CPUPercent float64 `json:"cpu_percent"`
	RSSBytes   uint64  `json:"rss_bytes"`
}

type Report struct {
	ID          string         `json:"id,omitempty"`
	State       string         `json:"state"`
	Running     bool           `json:"running"`
	FPS         int            `json:"fps,omitempty"`
	Width       int            `json:"width,omitempty"`
	Height      int            `json:"height,omitempty"`
	Frames      int64          `json:"frames"`
	Ticks       uint64         `json:"ticks"`
	Duplicates  uint64         `json:"duplicates"`
	CappedTicks uint64         `json:"capped_ticks"`
	PaintErrors uint64         `json:"paint_errors"`
	ElapsedMs   int64          `json:"elapsed_ms"`
	Output      string         `json:"output,omitempty"`
	Encoder     *EncoderReport `json:"encoder,omitempty"`
}

const sampleInterval = 500 * time.Millisecond

type API struct {
	logger   *slog.Logger
	provider Provider

	// Process sampling walks /proc or the Win32 API; cache it between polls
	// of the same encoder process.
	mu       sync.Mutex
	sample   rate.Sometimes
	lastPID  int
	lastProc capture.ProcessStats
}

func NewAPI(provider Provider, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		logger:   logger,
		provider: provider,
		sample:   rate.Sometimes{Interval: sampleInterval},
	}
}

func (a *API) RegisterRoutes(mux *httprouter.Router) {
	mux.HandlerFunc("GET", "/api/v1/recording", a.GetRecording)
	mux.HandlerFunc("GET", "/healthz", a.Health)
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (a *API) GetRecording(w http.ResponseWriter, r *http.Request) {
	rep := a.Report()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		a.logger.Warn("failed to write status response", "error", err)
	}
}

// Report builds the current status document.
func (a *API) Report() Report {
	var rec *Recording
	if a.provider != nil {
		rec = a.provider()
	}
	if rec == nil || rec.Session == nil {
		return Report{State: capture.StateIdle.String()}
	}
	st := rec.Session.Stats()
	rep := Report{
		ID:          st.ID,
		State:       st.State.String(),
		Running:     st.State == capture.StateRunning,
		FPS:         st.FPS,
		Width:       st.Width,
		Height:      st.Height,
		Frames:      st.Frames,
		Ticks:       st.Ticks,
		Duplicates:  st.Duplicates,
		CappedTicks: st.CappedTicks,
		PaintErrors: st.PaintErrors,
		ElapsedMs:   st.Elapsed.Milliseconds(),
		Output:      rec.Output,
	}
	if rec.Encoder != nil {
		es := rec.Encoder.Stats()
		er := &EncoderReport{
			PID:        es.PID,
			Written:    es.Written,
			Dropped:    es.Dropped,
			PipeBroken: es.PipeBroken,
			Exited:     es.Exited,
			ExitCode:   es.ExitCode,
		}
		if !es.Exited && es.PID > 0 {
			ps := a.processStats(rec.Encoder, es.PID)
			er.CPUPercent, er.RSSBytes = ps.CPUPercent, ps.RSSBytes
		}
		rep.Encoder = er
	}
	return rep
}

func (a *API) processStats(enc EncoderSource, pid int) capture.ProcessStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	if pid != a.lastPID {
		a.lastPID, a.lastProc = pid, capture.ProcessStats{}
		a.sample = rate.Sometimes{Interval: sampleInterval}
	}
	a.sample.Do(func() {
		ps, err := enc.ProcessStats()
		if err != nil {
			a.logger.Debug("encoder process stats unavailable", "error", err)
			return
		}
		a.lastProc = ps
	})
	return a.lastProc
}
