package main

import (
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Li-Hsiu/waterSimulationTest/internal/config"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/debug"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/gldevice"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/input"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/lighting"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/window"
	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
	"github.com/Li-Hsiu/waterSimulationTest/internal/sim"
)

// viewer owns the window, the pass device and the simulation.
type viewer struct {
	cfg       *config.Config
	window    *window.Window
	input     *input.Input
	glDevice  *gldevice.Device
	presenter *gldevice.Presenter
	sim       *sim.Simulator
	capture   *debug.ScreenshotCapture
	frame     *image.RGBA

	running bool
	paused  bool

	sunAzimuth   float32
	sunElevation float32
}

// Degrees the sun turns per arrow key press.
const sunStep = 15

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg:     cfg,
		input:   input.New(),
		capture: debug.NewScreenshotCapture(cfg.Output.Dir, cfg.Output.Prefix),
		frame:   image.NewRGBA(image.Rect(0, 0, cfg.Output.ImageSize, cfg.Output.ImageSize)),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  "Ocean",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	v.presenter, err = gldevice.NewPresenter()
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("presenter: %w", err)
	}

	var dev gpu.Device
	switch cfg.Simulation.Backend {
	case config.BackendGL:
		v.glDevice, err = gldevice.New()
		if err != nil {
			v.Close()
			return nil, fmt.Errorf("gl device: %w", err)
		}
		dev = v.glDevice
	default:
		dev = gpu.NewCPUDevice(cfg.Simulation.Workers)
	}

	v.sim, err = sim.New(cfg, dev)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.sunAzimuth, v.sunElevation = lighting.SunAngles(cfg.Shading.SunDirection)
	return v, nil
}

// Run drives the frame loop until the window closes or Esc is pressed.
func (v *viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop", zap.String("backend", v.cfg.Simulation.Backend))

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if !v.paused {
			if err := v.sim.Tick(float32(dt)); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
		}

		v.sim.Render(v.frame, v.cfg.Camera, v.cfg.Output.Extent)
		width, height := v.window.GetSize()
		if err := v.presenter.Present(v.frame, width, height); err != nil {
			return err
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot(width, height)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := v.sim.Stats()
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000), st.Field())
			v.window.SetTitle(fmt.Sprintf("Ocean - %d fps - t=%.1fs", frameCount, st.Elapsed))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *viewer) handleEvents() {
	for _, event := range v.input.Events() {
		if event.Type != input.EventKeyDown {
			continue
		}
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_SPACE:
			v.paused = !v.paused
			logger.Info("pause toggled", zap.Bool("paused", v.paused))
		case sdl.SCANCODE_LEFT:
			v.turnSun(-sunStep)
		case sdl.SCANCODE_RIGHT:
			v.turnSun(sunStep)
		}
	}
}

// turnSun rotates the sun around the vertical axis. The shading reads the
// shared config every frame.
func (v *viewer) turnSun(degrees float32) {
	v.sunAzimuth += degrees
	v.cfg.Shading.SunDirection = lighting.SunDirection(v.sunAzimuth, v.sunElevation)
	logger.Debug("sun moved", zap.Float32("azimuth", v.sunAzimuth))
}

func (v *viewer) screenshot(width, height int) {
	path, err := v.capture.CaptureFromPixels(v.presenter.ReadPixels(width, height), width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the simulation, GL objects and the window.
func (v *viewer) Close() {
	if v.sim != nil {
		v.sim.Release()
		v.sim = nil
	}
	if v.glDevice != nil {
		v.glDevice.Destroy()
		v.glDevice = nil
	}
	if v.presenter != nil {
		v.presenter.Destroy()
		v.presenter = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
