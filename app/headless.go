package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/debug"
	"github.com/soocke/spectator-recorder/status"
)

// RunHeadless records cfg's source until ctx is done, SIGINT/SIGTERM arrives
// or MaxDurationSeconds elapses, then finalizes the file. It serves the
// status endpoint when StatusAddr is set.
func RunHeadless(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.MaxDurationSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.MaxDurationSeconds)*time.Second)
		defer cancel()
	}
	return record(ctx, &Recorder{Config: cfg, Logger: logger, Target: TargetFor(nil)}, logger)
}

func record(ctx context.Context, rec *Recorder, logger *slog.Logger) error {
	cfg := rec.Config
	session, err := rec.New()
	if err != nil {
		return err
	}
	if err := session.Start(); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	if cfg.StatusAddr != "" {
		srv, err := status.NewServer(rec.Status, status.Address(cfg.StatusAddr), status.Logger(logger))
		if err != nil {
			session.Stop()
			return err
		}
		eg.Go(func() error { return srv.ListenAndServe(ctx) })
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 10*time.Second, logger)
		debug.StartMemLogger(ctx, 10*time.Second, logger)
		debug.StartEncoderLogger(ctx, 5*time.Second, rec.EncoderProbe, logger)
	}
	eg.Go(func() error {
		<-ctx.Done()
		session.Stop()
		st, _ := rec.SessionStats()
		enc, _ := rec.EncoderStats()
		logger.Info("recording finished",
			"output", rec.Status().Output,
			"frames", st.Frames,
			"duplicates", st.Duplicates,
			"elapsed", st.Elapsed,
			"written", enc.Written,
			"dropped", enc.Dropped,
			"exit_code", enc.ExitCode,
		)
		return nil
	})
	return eg.Wait()
}
