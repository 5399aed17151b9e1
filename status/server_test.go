package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/spectator-recorder/domain/capture"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubSession struct{ st capture.SessionStats }

func (s stubSession) Stats() capture.SessionStats { return s.st }

type stubEncoder struct {
	st    capture.EncoderStats
	ps    capture.ProcessStats
	err   error
	polls int
}

func (e *stubEncoder) Stats() capture.EncoderStats { return e.st }
func (e *stubEncoder) ProcessStats() (capture.ProcessStats, error) {
	e.polls++
	return e.ps, e.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAPI_IdleRecording(t *testing.T) {
	s, err := NewServer(func() *Recording { return nil }, Logger(quiet))
	require.NoError(t, err)

	rec := get(t, s.Handler(), "/api/v1/recording")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rep Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "idle", rep.State)
	assert.False(t, rep.Running)
	assert.Nil(t, rep.Encoder)
}

func TestAPI_RunningRecording(t *testing.T) {
	enc := &stubEncoder{
		st: capture.EncoderStats{PID: 4242, Written: 90, Dropped: 2},
		ps: capture.ProcessStats{CPUPercent: 12.5, RSSBytes: 1 << 20},
	}
	rec := &Recording{
		Session: stubSession{capture.SessionStats{
			ID: "abc", State: capture.StateRunning, FPS: 30, Width: 640, Height: 480,
			Frames: 92, Ticks: 90, Duplicates: 2, Elapsed: 3 * time.Second,
		}},
		Encoder: enc,
		Output:  "out.mp4",
	}
	s, err := NewServer(func() *Recording { return rec }, Logger(quiet))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/api/v1/recording").Body.Bytes(), &body))
	assert.Equal(t, "abc", body["id"])
	assert.Equal(t, "running", body["state"])
	assert.Equal(t, true, body["running"])
	assert.EqualValues(t, 92, body["frames"])
	assert.EqualValues(t, 2, body["duplicates"])
	assert.EqualValues(t, 3000, body["elapsed_ms"])
	assert.Equal(t, "out.mp4", body["output"])

	encBody, ok := body["encoder"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4242, encBody["pid"])
	assert.EqualValues(t, 90, encBody["written"])
	assert.EqualValues(t, 12.5, encBody["cpu_percent"])
	assert.EqualValues(t, 1<<20, encBody["rss_bytes"])
}

func TestAPI_ProcessStatsAreThrottled(t *testing.T) {
	enc := &stubEncoder{st: capture.EncoderStats{PID: 1}, ps: capture.ProcessStats{RSSBytes: 7}}
	api := NewAPI(func() *Recording {
		return &Recording{Session: stubSession{}, Encoder: enc}
	}, quiet)

	for i := 0; i < 5; i++ {
		assert.EqualValues(t, 7, api.Report().Encoder.RSSBytes)
	}
	assert.Equal(t, 1, enc.polls)
}

func TestAPI_NewEncoderIsSampledImmediately(t *testing.T) {
	first := &stubEncoder{st: capture.EncoderStats{PID: 10}, ps: capture.ProcessStats{RSSBytes: 7}}
	second := &stubEncoder{st: capture.EncoderStats{PID: 11}, ps: capture.ProcessStats{RSSBytes: 9}}
	current := first
	api := NewAPI(func() *Recording {
		return &Recording{Session: stubSession{}, Encoder: current}
	}, quiet)

	assert.EqualValues(t, 7, api.Report().Encoder.RSSBytes)
	current = second
	assert.EqualValues(t, 9, api.Report().Encoder.RSSBytes)
	assert.EqualValues(t, 9, api.Report().Encoder.RSSBytes)
	assert.Equal(t, 1, first.polls)
	assert.Equal(t, 1, second.polls)
}

func TestAPI_ExitedEncoderIsNotSampled(t *testing.T) {
	enc := &stubEncoder{st: capture.EncoderStats{PID: 1, Exited: true, ExitCode: 1}, err: errors.New("gone")}
	api := NewAPI(func() *Recording {
		return &Recording{Session: stubSession{}, Encoder: enc}
	}, quiet)
	rep := api.Report()
	assert.Equal(t, 0, enc.polls)
	assert.Equal(t, 1, rep.Encoder.ExitCode)
}

func TestServer_Health(t *testing.T) {
	s, err := NewServer(nil, Logger(quiet), RequestLogger(quiet))
	require.NoError(t, err)
	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/nope").Code)
}

func TestServer_NilLoggerRejected(t *testing.T) {
	_, err := NewServer(nil, Logger(nil))
	assert.Error(t, err)
}

func TestServer_ListenAndServeShutsDownOnCancel(t *testing.T) {
	s, err := NewServer(nil, Address("127.0.0.1:0"), Logger(quiet))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	var addr string
	select {
	case a := <-s.Ready():
		addr = a.String()
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	}

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
