package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/soocke/spectator-recorder/app"
	"github.com/soocke/spectator-recorder/config"
)

func main() {
	var (
		cfgPath  = flag.String("config", "config.json", "path to the JSON config file")
		headless = flag.Bool("headless", false, "record without the window until interrupted")
		output   = flag.String("output", "", "output video path (overrides config)")
		fps      = flag.Int("fps", 0, "frames per second (overrides config)")
		source   = flag.String("source", "", "capture source: screen or pattern (overrides config)")
		duration = flag.Int("duration", 0, "headless recording limit in seconds (overrides config)")
		status   = flag.String("status", "", "status endpoint address, e.g. 127.0.0.1:8089 (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v (using defaults)\n", *cfgPath, err)
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *duration > 0 {
		cfg.MaxDurationSeconds = *duration
	}
	if *status != "" {
		cfg.StatusAddr = *status
	}
	_ = cfg.Validate()

	logger, closeLog, err := loggerFor(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if *headless {
		if err := app.RunHeadless(context.Background(), cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("recording failed", "error", err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	c := app.BuildContainer(cfg, logger, *cfgPath)
	app.NewApp("Spectator Recorder", 800, 600, c).Start()
}
