// Package main runs the ocean simulation headless and writes PNG snapshots.
package main

import (
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Li-Hsiu/waterSimulationTest/internal/config"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/debug"
	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
	"github.com/Li-Hsiu/waterSimulationTest/internal/sim"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Ocean Simulation ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("simulation finished")
}

func run(cfg *config.Config) error {
	if cfg.Simulation.Backend != config.BackendCPU {
		logger.Warn("headless runs have no GL context, using the CPU device",
			zap.String("backend", cfg.Simulation.Backend))
	}
	dev := gpu.NewCPUDevice(cfg.Simulation.Workers)

	s, err := sim.New(cfg, dev)
	if err != nil {
		return err
	}
	defer s.Release()

	capture := debug.NewScreenshotCapture(cfg.Output.Dir, cfg.Output.Prefix)
	ticks := cfg.Simulation.Ticks
	every := cfg.Output.Every

	err = s.Run(ticks, func(tick int) error {
		if every > 0 && tick%every == 0 && tick != ticks {
			logger.Info("tick", s.Stats().Field())
			return snapshot(s, capture, cfg.Output.ImageSize, tick)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("final state", s.Stats().Field())
	if lo, hi, ok := s.Deform(cfg.Camera.Position).HeightRange(); ok {
		logger.Info("surface grid",
			zap.Int("vertices", len(s.Grid().Positions)),
			zap.Float32("min_height", lo),
			zap.Float32("max_height", hi),
		)
	}
	return snapshot(s, capture, cfg.Output.ImageSize, ticks)
}

// snapshot writes the shaded view and the height and normal maps of the
// first source.
func snapshot(s *sim.Simulator, capture *debug.ScreenshotCapture, size, tick int) error {
	src := s.Sources()[0]
	images := []struct {
		name string
		img  image.Image
	}{
		{"view", s.Snapshot(size)},
		{"height", debug.HeightMap(src.Displacement())},
		{"normal", debug.NormalMap(src.Normals())},
	}

	for _, it := range images {
		path, err := capture.Save(it.img, fmt.Sprintf("%06d_%s", tick, it.name))
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", it.name, err)
		}
		logger.Debug("snapshot saved", zap.String("path", path))
	}
	return nil
}
