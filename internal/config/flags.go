package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagBackend    = flag.String("backend", "", "Pass device: cpu or gl")
	flagTicks      = flag.Int("ticks", -1, "Number of simulation ticks")
	flagResolution = flag.Int("resolution", 0, "FFT resolution (power of two)")
	flagSeed       = flag.Uint64("seed", 0, "Phase seed")
	flagMode       = flag.String("mode", "", "Region layout: delaunay, pairs, band or single")
	flagPoints     = flag.String("points", "", "Parameter points file")
	flagOut        = flag.String("out", "", "Snapshot output directory")
	flagParallel   = flag.Bool("parallel", false, "Simulate sources concurrently")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBackend != "" {
		cfg.Simulation.Backend = *flagBackend
	}
	if *flagTicks >= 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagResolution > 0 {
		cfg.Ocean.Resolution = *flagResolution
	}
	if *flagSeed != 0 {
		cfg.Ocean.Seed = *flagSeed
	}
	if *flagMode != "" {
		cfg.Regions.Mode = *flagMode
	}
	if *flagPoints != "" {
		cfg.Regions.PointsFile = *flagPoints
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagParallel {
		cfg.Ocean.ParallelSources = true
	}
}
