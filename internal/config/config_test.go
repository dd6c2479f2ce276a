package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ocean.Resolution != 64 {
		t.Errorf("expected resolution 64, got %d", cfg.Ocean.Resolution)
	}
	if cfg.Ocean.DomainSize != 250 {
		t.Errorf("expected domain size 250, got %f", cfg.Ocean.DomainSize)
	}
	if cfg.Ocean.Wind.X != 10 || cfg.Ocean.Wind.Y != 10 {
		t.Errorf("expected wind (10, 10), got %v", cfg.Ocean.Wind)
	}
	if cfg.Ocean.Choppiness != 1.5 {
		t.Errorf("expected choppiness 1.5, got %f", cfg.Ocean.Choppiness)
	}
	if cfg.Ocean.MaxSources != 6 {
		t.Errorf("expected 6 sources, got %d", cfg.Ocean.MaxSources)
	}
	if cfg.Simulation.Backend != BackendCPU {
		t.Errorf("expected cpu backend, got %s", cfg.Simulation.Backend)
	}
	if cfg.Regions.Mode != ModeDelaunay {
		t.Errorf("expected delaunay layout, got %s", cfg.Regions.Mode)
	}
	if cfg.Regions.DisplacementFade.Far != 5000 || cfg.Regions.NormalFade.Far != 30000 {
		t.Errorf("unexpected fades %+v %+v", cfg.Regions.DisplacementFade, cfg.Regions.NormalFade)
	}
	if cfg.Shading.Exposure != 0.15 {
		t.Errorf("expected exposure 0.15, got %f", cfg.Shading.Exposure)
	}
	if cfg.Camera.FovY != 55 {
		t.Errorf("expected fov 55, got %f", cfg.Camera.FovY)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ocean.yaml")

	yamlContent := `
ocean:
  resolution: 128
  domain_size: 500
  wind: {x: 5, y: -3}
  choppiness: 2
  parallel_sources: true

simulation:
  backend: gl
  ticks: 10
  delta_time: 0.033

regions:
  mode: pairs
  points_file: points.json
  normal_fade: {near: 100, far: 20000}

shading:
  exposure: 0.35

output:
  dir: out
  every: 5

logging:
  level: "debug"
  log_file: "ocean.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Ocean.Resolution != 128 {
		t.Errorf("expected resolution 128, got %d", cfg.Ocean.Resolution)
	}
	if cfg.Ocean.Wind.X != 5 || cfg.Ocean.Wind.Y != -3 {
		t.Errorf("expected wind (5, -3), got %v", cfg.Ocean.Wind)
	}
	if !cfg.Ocean.ParallelSources {
		t.Error("expected parallel sources")
	}
	if cfg.Simulation.Backend != BackendGL || cfg.Simulation.Ticks != 10 {
		t.Errorf("unexpected simulation %+v", cfg.Simulation)
	}
	if cfg.Regions.Mode != ModePairs || cfg.Regions.PointsFile != "points.json" {
		t.Errorf("unexpected regions %+v", cfg.Regions)
	}
	if cfg.Regions.NormalFade.Near != 100 || cfg.Regions.NormalFade.Far != 20000 {
		t.Errorf("unexpected normal fade %+v", cfg.Regions.NormalFade)
	}
	// Untouched nested values keep their defaults.
	if cfg.Regions.DisplacementFade.Far != 5000 {
		t.Errorf("displacement fade default lost: %+v", cfg.Regions.DisplacementFade)
	}
	if cfg.Shading.Exposure != 0.35 {
		t.Errorf("expected exposure 0.35, got %f", cfg.Shading.Exposure)
	}
	if cfg.Shading.SunDirection.X != -1 {
		t.Errorf("sun direction default lost: %v", cfg.Shading.SunDirection)
	}
	if cfg.Output.Dir != "out" || cfg.Output.Every != 5 {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
	if cfg.Logging.LogFile != "ocean.log" {
		t.Errorf("expected log file 'ocean.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
ocean:
  resolution: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/ocean.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"resolution not power of two", func(c *Config) { c.Ocean.Resolution = 100 }, false},
		{"resolution one", func(c *Config) { c.Ocean.Resolution = 1 }, false},
		{"zero domain size", func(c *Config) { c.Ocean.DomainSize = 0 }, false},
		{"no sources", func(c *Config) { c.Ocean.MaxSources = 0 }, false},
		{"tiny grid", func(c *Config) { c.Ocean.GridResolution = 1 }, false},
		{"unknown backend", func(c *Config) { c.Simulation.Backend = "vulkan" }, false},
		{"negative ticks", func(c *Config) { c.Simulation.Ticks = -1 }, false},
		{"negative dt", func(c *Config) { c.Simulation.DeltaTime = -0.1 }, false},
		{"unknown mode", func(c *Config) { c.Regions.Mode = "voronoi" }, false},
		{"zero image", func(c *Config) { c.Output.ImageSize = 0 }, false},
		{"zero extent", func(c *Config) { c.Output.Extent = 0 }, false},
		{"gl backend", func(c *Config) { c.Simulation.Backend = BackendGL }, true},
		{"band mode", func(c *Config) { c.Regions.Mode = ModeBand }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateClampsChoppiness(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{1.5, 1.5},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Ocean.Choppiness = tt.in
		if err := cfg.Validate(); err != nil {
			t.Fatal(err)
		}
		if cfg.Ocean.Choppiness != tt.want {
			t.Errorf("choppiness %v clamped to %v, want %v", tt.in, cfg.Ocean.Choppiness, tt.want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "ocean.yaml")
	if err := os.WriteFile(configPath, []byte("ocean:\n  resolution: 32\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find ocean.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "simulation flags",
			setup: func() {
				*flagBackend = "gl"
				*flagTicks = 0
				*flagResolution = 256
				*flagSeed = 42
			},
			verify: func(cfg *Config) {
				if cfg.Simulation.Backend != "gl" || cfg.Simulation.Ticks != 0 {
					t.Errorf("unexpected simulation %+v", cfg.Simulation)
				}
				if cfg.Ocean.Resolution != 256 || cfg.Ocean.Seed != 42 {
					t.Errorf("unexpected ocean %+v", cfg.Ocean)
				}
			},
			teardown: func() {
				*flagBackend = ""
				*flagTicks = -1
				*flagResolution = 0
				*flagSeed = 0
			},
		},
		{
			name: "layout flags",
			setup: func() {
				*flagMode = "band"
				*flagPoints = "p.yaml"
				*flagOut = "shots"
				*flagParallel = true
			},
			verify: func(cfg *Config) {
				if cfg.Regions.Mode != "band" || cfg.Regions.PointsFile != "p.yaml" {
					t.Errorf("unexpected regions %+v", cfg.Regions)
				}
				if cfg.Output.Dir != "shots" {
					t.Errorf("expected output dir shots, got %s", cfg.Output.Dir)
				}
				if !cfg.Ocean.ParallelSources {
					t.Error("expected parallel sources")
				}
			},
			teardown: func() {
				*flagMode = ""
				*flagPoints = ""
				*flagOut = ""
				*flagParallel = false
			},
		},
		{
			name:  "unset flags keep defaults",
			setup: func() {},
			verify: func(cfg *Config) {
				if cfg.Simulation.Ticks != 100 {
					t.Errorf("expected 100 ticks, got %d", cfg.Simulation.Ticks)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ocean.yaml")

	yamlContent := `
ocean:
  resolution: 32
  domain_size: 400
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagResolution = 128
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Resolution from the flag wins over the file.
	if cfg.Ocean.Resolution != 128 {
		t.Errorf("expected resolution 128 from flag, got %d", cfg.Ocean.Resolution)
	}
	if cfg.Ocean.DomainSize != 400 {
		t.Errorf("expected domain size 400 from file, got %f", cfg.Ocean.DomainSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ocean.yaml")
	if err := os.WriteFile(configPath, []byte("ocean:\n  resolution: 48\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ocean.yaml")
	cfg := Default()
	cfg.Ocean.Resolution = 256
	cfg.Regions.Mode = ModeSingle

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Ocean.Resolution != 256 || loaded.Regions.Mode != ModeSingle {
		t.Errorf("saved values not reloaded: %+v %+v", loaded.Ocean, loaded.Regions)
	}
}
