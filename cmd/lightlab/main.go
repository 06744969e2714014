package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gekko3d/lightlab"
	"github.com/gekko3d/lightlab/host"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	headless := flag.Bool("headless", false, "Run without a window or GPU")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (headless; 0 runs until interrupted)")
	snapshots := flag.String("snapshots", "", "Directory for F2 panel snapshots")
	flag.Parse()

	cfg := lightlab.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = lightlab.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	cfg.Debug = cfg.Debug || *debug
	logger := lightlab.NewDefaultLogger("lightlab", cfg.Debug)

	var err error
	if *headless {
		err = runHeadless(cfg, logger, *frames)
	} else {
		err = runWindow(cfg, logger, *snapshots)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func runWindow(cfg lightlab.Config, logger lightlab.Logger, snapshots string) error {
	win, err := host.OpenWindow(cfg.Window, logger)
	if err != nil {
		return err
	}
	defer win.Close()
	win.SnapshotDir = snapshots

	gpu, err := host.NewGPU(win)
	if err != nil {
		return err
	}
	defer gpu.Release()

	app, err := lightlab.NewDemoApp(cfg, lightlab.Host{
		Display:  win,
		Surface:  gpu,
		Renderer: gpu,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if err := win.Attach(app); err != nil {
		return err
	}

	queue := lightlab.NewFrameQueue()
	return win.Run(queue, app.Start(queue))
}

const headlessFrameRate = 60

// runHeadless drives the scene from a ticker. With a frame limit the clock
// advances a fixed step per frame so runs are reproducible.
func runHeadless(cfg lightlab.Config, logger lightlab.Logger, frames uint64) error {
	var clock lightlab.Clock = lightlab.NewSystemClock()
	manual := &lightlab.ManualClock{}
	if frames > 0 {
		clock = manual
	}
	renderer := &lightlab.LogRenderer{Logger: logger, Every: headlessFrameRate}

	app, err := lightlab.NewDemoApp(cfg, lightlab.Host{
		Display:  &lightlab.HeadlessDisplay{Width: cfg.Window.Width, Height: cfg.Window.Height, Ratio: 1},
		Surface:  &lightlab.HeadlessSurface{},
		Renderer: renderer,
		Clock:    clock,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	queue := lightlab.NewFrameQueue()
	loop := app.Start(queue)
	ticker := time.NewTicker(time.Second / headlessFrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			loop.Stop()
			logger.Infof("interrupted after %d frames", loop.Ticks())
			return nil
		case <-ticker.C:
		}
		if frames > 0 {
			manual.Advance(1.0 / headlessFrameRate)
		}
		if err := queue.Fire(); err != nil {
			return err
		}
		if frames > 0 && loop.Ticks() >= frames {
			loop.Stop()
		}
		if s := loop.State(); s == lightlab.LoopStopped || s == lightlab.LoopFailed {
			logger.Infof("loop %s after %d frames", s, loop.Ticks())
			return loop.Err()
		}
	}
}
