package app

import (
	"log/slog"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/domain/capture"
	"github.com/soocke/spectator-recorder/ui/model"
	"github.com/soocke/spectator-recorder/ui/presenter"
	"github.com/soocke/spectator-recorder/ui/view"
)

// AppContainer assembles models, the recorder, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Recording  *model.RecordingModel
	Session    *model.SessionModel
	Selection  *model.SelectionModel
	Recorder   *Recorder
	RootView   *view.RootView
	Overlay    view.SelectionOverlay

	// Presenters
	RecordPresenter  *presenter.RecordPresenter
	SessionPresenter *presenter.SessionPresenter
	StatsPresenter   *presenter.StatsPresenter
	PreviewPresenter *presenter.PreviewPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. No Tk widgets are created here;
// RootView.Build runs later on the Tk thread.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Recording = &model.RecordingModel{}
	c.Session = model.NewSessionModel()
	c.Selection = model.NewSelectionModel(cfg.SelectionRect())
	c.Recorder = &Recorder{
		Config:    cfg,
		Logger:    logger,
		Target:    TargetFor(c.Selection.Region),
		Scheduler: guiScheduler,
		Timestamp: true,
	}
	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.Overlay = view.NewSelectionOverlay(c.Selection, cfg, cfgPath, logger)
	// Presenters
	c.RecordPresenter = presenter.NewRecordPresenter(c.Recording, c.Recorder.Factory(), c.RootView, logger)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Recorder, c.RootView)
	c.StatsPresenter = presenter.NewStatsPresenter(c.Session, c.Recorder, c.RootView, c.RootView)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Recording.Enabled, c.Recorder, c.RootView, view.MaxPreviewW, view.MaxPreviewH, logger)
	c.Loop = presenter.NewLoop(c.RecordPresenter, c.SessionPresenter, c.StatsPresenter, c.PreviewPresenter, nil)
	return c
}

// guiScheduler picks the tick driver for a GUI recording.
func guiScheduler(cfg *config.Config) capture.Scheduler {
	if cfg.Scheduler == config.SchedulerTk {
		return view.TkScheduler{}
	}
	return capture.TickerScheduler{}
}
