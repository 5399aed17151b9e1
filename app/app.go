package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/spectator-recorder/debug"
	"github.com/soocke/spectator-recorder/status"
	"github.com/soocke/spectator-recorder/ui/theme"
)

const (
	uiTick = 100 * time.Millisecond
)

// app is the Tk recorder window.
type app struct {
	c       *AppContainer
	title   string
	width   int
	height  int
	afterID string
	cancel  context.CancelFunc
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, title: title, width: width, height: height}
	// A terminal signal stops the recording on the hook goroutine; Tk must not
	// be touched from there, so the process exits once the file is finalized.
	c.Recorder.OnSignal = func(sig os.Signal) {
		c.Logger.Info("recording finalized after signal; exiting", "signal", sig.String())
		os.Exit(1)
	}
	return a
}

// Start builds the window and blocks in the Tk event loop.
func (a *app) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	theme.InitStyles(a.c.Config.DarkMode)
	App.WmTitle(a.title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))

	a.c.RootView.Build(a.c.RecordPresenter.Toggle, a.c.Overlay.OpenOrFocus, a.exitHandler)
	a.startBackground(ctx)

	a.c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) startBackground(ctx context.Context) {
	cfg, logger := a.c.Config, a.c.Logger
	if cfg.StatusAddr != "" {
		srv, err := status.NewServer(a.c.Recorder.Status, status.Address(cfg.StatusAddr), status.Logger(logger))
		if err != nil {
			logger.Error("status server disabled", "error", err)
		} else {
			go func() {
				if err := srv.ListenAndServe(ctx); err != nil {
					logger.Error("status server stopped", "error", err)
				}
			}()
		}
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 10*time.Second, logger)
		debug.StartMemLogger(ctx, 10*time.Second, logger)
		debug.StartEncoderLogger(ctx, 5*time.Second, a.c.Recorder.EncoderProbe, logger)
	}
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(uiTick, a.c.Loop.Tick)
}

// exitHandler finalizes a running recording before the window goes away.
func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.RecordPresenter.Disable()
	a.c.Recorder.Stop()
	a.c.PreviewPresenter.Close()
	if a.cancel != nil {
		a.cancel()
	}
	a.c.Logger.Info("exiting", slog.String("config", a.c.ConfigPath))
	Destroy(App)
}
