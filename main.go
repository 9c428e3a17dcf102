package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/schelling/config"
	"github.com/pthm-cable/schelling/sim"
	"github.com/pthm-cable/schelling/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	algorithm := flag.String("algorithm", "", "Relocation algorithm (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, config 0 = time-based)")
	maxIterations := flag.Int("max-iterations", -1, "Iteration budget (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV history and snapshot (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Log per-iteration stats")
	listAlgorithms := flag.Bool("list-algorithms", false, "Print registered algorithm names and exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *listAlgorithms {
		for _, name := range sim.Names() {
			os.Stdout.WriteString(name + "\n")
		}
		return
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI flags override config
	if *algorithm != "" {
		cfg.Run.Algorithm = *algorithm
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *maxIterations >= 0 {
		cfg.Run.MaxIterations = *maxIterations
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *logStats {
		cfg.Output.LogStats = true
	}

	rngSeed := cfg.Run.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if _, err := sim.Lookup(cfg.Run.Algorithm); err != nil {
		slog.Error("unknown algorithm", "error", err)
		os.Exit(1)
	}

	s, err := sim.New(cfg.Sim(), rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	s.SetObserver(func(st sim.IterationStats) {
		if err := om.WriteHistory(telemetry.Record(st)); err != nil {
			slog.Error("failed to write history row", "error", err)
		}
		if cfg.Output.LogStats {
			slog.Info("iteration",
				"iteration", st.Iteration,
				"unsatisfied", st.Unsatisfied,
				"empties", st.Empties,
				"mean_ratio", st.MeanRatio,
			)
		}
	})

	slog.Info("starting simulation",
		"algorithm", cfg.Run.Algorithm,
		"size", cfg.Board.Size,
		"threshold", cfg.Model.Threshold,
		"seed", rngSeed,
		"max_iterations", cfg.Run.MaxIterations,
	)

	res, err := s.Run(cfg.Run.MaxIterations, cfg.Run.Algorithm)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	if err := om.WriteSnapshot(telemetry.NewSnapshot(s, rngSeed, cfg.Run.Algorithm, res)); err != nil {
		slog.Error("failed to write snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("simulation finished",
		"reason", res.Reason.String(),
		"iterations", res.Iterations,
		"unsatisfied", len(sim.Unsatisfied(s.Grid(), cfg.Model.Threshold)),
		"mean_ratio", s.MeanRatio(),
	)
}
