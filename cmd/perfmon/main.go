package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dboone323/perfmon"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := perfmon.DefaultConfig()
	var (
		targetFPS float64
		interval  time.Duration
		duration  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "perfmon",
		Short: "Drive a synthetic render loop and report frame and memory health",
		Long: "perfmon runs a synthetic render loop at the requested frame rate,\n" +
			"feeds it into the performance monitor, and periodically reports the\n" +
			"derived FPS, resident memory and degradation signal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, targetFPS, interval, duration)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&targetFPS, "target-fps", 60, "frame rate of the synthetic render loop")
	flags.DurationVar(&interval, "interval", time.Second, "how often to report metrics")
	flags.DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	flags.IntVar(&cfg.MaxFrameHistory, "max-history", cfg.MaxFrameHistory, "frame timestamp ring capacity")
	flags.IntVar(&cfg.FPSSampleWindow, "fps-window", cfg.FPSSampleWindow, "frames averaged for the FPS estimate")
	flags.Float64Var(&cfg.FPSThreshold, "fps-threshold", cfg.FPSThreshold, "FPS below this counts as degraded")
	flags.Float64Var(&cfg.MemoryThresholdMB, "memory-threshold-mb", cfg.MemoryThresholdMB, "resident MB above this counts as degraded")

	return cmd
}

func run(ctx context.Context, cfg perfmon.Config, targetFPS float64, interval, duration time.Duration) error {
	if targetFPS <= 0 {
		return fmt.Errorf("target fps must be greater than zero, got %g", targetFPS)
	}
	if interval <= 0 {
		return fmt.Errorf("report interval must be greater than zero, got %s", interval)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	cfg.Logger = logger
	monitor, err := perfmon.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	// The render loop is the monitor's single writer; reporting happens on
	// this goroutine, exercising the concurrent read path.
	go renderLoop(ctx, monitor, targetFPS)

	logger.Info("monitoring started",
		zap.Float64("target_fps", targetFPS),
		zap.Float64("fps_threshold", cfg.FPSThreshold),
		zap.Float64("memory_threshold_mb", cfg.MemoryThresholdMB))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("monitoring stopped")
			return nil
		case <-ticker.C:
			snap := monitor.Snapshot()
			logger.Info("performance",
				zap.Float64("fps", snap.FPS),
				zap.Float64("memory_mb", snap.MemoryMB),
				zap.Bool("degraded", snap.Degraded),
				zap.Int("samples", snap.SampleCount),
				zap.Uint64("probe_failures", snap.ProbeFailures))
		}
	}
}

// renderLoop stands in for a real render/update loop, recording one frame
// per tick at the requested rate.
func renderLoop(ctx context.Context, monitor *perfmon.Monitor, targetFPS float64) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / targetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.RecordFrame()
		}
	}
}
