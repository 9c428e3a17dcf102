// Package main sweeps the satisfaction threshold and measures how strongly
// each relocation algorithm segregates the board.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/schelling/config"
	"github.com/pthm-cable/schelling/sim"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// pointResult aggregates runs at one threshold value.
type pointResult struct {
	threshold      float64
	meanRatio      float64
	meanIterations float64
	converged      int
	deadEnds       int
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	algorithm := flag.String("algorithm", "", "Algorithm to sweep (empty = use config)")
	points := flag.Int("points", 21, "Number of threshold values across [0,1]")
	seeds := flag.Int("seeds", 5, "Number of seeds per threshold value")
	maxIterations := flag.Int("max-iterations", 0, "Iteration budget per run (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *points < 2 {
		log.Fatal("--points must be at least 2")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	algo := cfg.Run.Algorithm
	if *algorithm != "" {
		algo = *algorithm
	}
	if _, err := sim.Lookup(algo); err != nil {
		log.Fatalf("invalid algorithm: %v", err)
	}

	budget := cfg.Run.MaxIterations
	if *maxIterations > 0 {
		budget = *maxIterations
	}

	thresholds := make([]float64, *points)
	floats.Span(thresholds, 0, 1)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "sweep.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"threshold", "mean_ratio", "mean_iterations", "converged", "dead_ends"})

	fmt.Printf("Sweeping %s over %d thresholds, %d seeds each, budget %d\n",
		algo, *points, *seeds, budget)

	results := make([]pointResult, 0, *points)
	startTime := time.Now()

	for i, threshold := range thresholds {
		pr := pointResult{threshold: threshold}
		ratios := make([]float64, 0, *seeds)
		iters := make([]float64, 0, *seeds)

		for _, seed := range evalSeeds {
			sc := cfg.Sim()
			sc.Threshold = threshold
			s, err := sim.New(sc, seed)
			if err != nil {
				log.Fatalf("failed to build simulation: %v", err)
			}
			res, err := s.Run(budget, algo)
			if err != nil {
				log.Fatalf("run failed: %v", err)
			}

			ratios = append(ratios, s.MeanRatio())
			iters = append(iters, float64(res.Iterations))
			switch res.Reason {
			case sim.Converged:
				pr.converged++
			case sim.DeadEnd:
				pr.deadEnds++
			}
		}

		pr.meanRatio = stat.Mean(ratios, nil)
		pr.meanIterations = stat.Mean(iters, nil)
		results = append(results, pr)

		logWriter.Write([]string{
			fmt.Sprintf("%.4f", pr.threshold),
			fmt.Sprintf("%.6f", pr.meanRatio),
			fmt.Sprintf("%.2f", pr.meanIterations),
			strconv.Itoa(pr.converged),
			strconv.Itoa(pr.deadEnds),
		})
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerPoint := elapsed / time.Duration(i+1)
		remaining := time.Duration(*points-i-1) * avgPerPoint
		fmt.Printf("Point %d/%d: threshold=%.2f ratio=%.3f iters=%.1f | elapsed: %s, ETA: %s\n",
			i+1, *points, pr.threshold, pr.meanRatio, pr.meanIterations,
			formatDuration(elapsed), formatDuration(remaining))
	}

	// Fit mean ratio against threshold to summarize the sweep.
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, pr := range results {
		xs[i] = pr.threshold
		ys[i] = pr.meanRatio
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	fmt.Printf("\nSweep complete in %s\n", formatDuration(time.Since(startTime)))
	fmt.Printf("Linear fit: mean_ratio = %.4f + %.4f * threshold\n", alpha, beta)
	fmt.Printf("Results saved to: %s\n", logPath)
}
