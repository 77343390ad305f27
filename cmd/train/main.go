// xornet-train: trains the three layer network on the XOR truth table
//
// Usage:
//
//	xornet-train --epochs=100000 --rate=0.3 --momentum=0.6 --init=row --runs=1
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"xornet/m"
	"xornet/sweep"
	"xornet/utils"
)

var (
	envFile      = flag.String("env", ".env", "dotenv file with XORNET_* settings")
	hidden       = flag.Int("hidden", 2, "Number of hidden nodes")
	epochs       = flag.Int("epochs", 100000, "Number of training epochs")
	learningRate = flag.Float64("rate", 0.3, "Learning rate")
	momentum     = flag.Float64("momentum", 0.6, "Momentum")
	initMode     = flag.String("init", "row", "Weight init: row (one draw per node) or connection")
	seed         = flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	runs         = flag.Int("runs", 1, "Number of independently seeded networks")
	workers      = flag.Int("workers", 0, "Networks trained at once (default: number of CPUs)")
	verbose      = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                      xornet Trainer                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Topology:      %d-%d-%d\n", config.Architecture[0], config.Architecture[1], config.Architecture[2])
	fmt.Printf("  Epochs:        %d\n", config.Epochs)
	fmt.Printf("  Learning Rate: %.4f\n", config.LearningRate)
	fmt.Printf("  Momentum:      %.4f\n", config.Momentum)
	fmt.Printf("  Weight Init:   %s\n", config.Init)
	fmt.Printf("  Runs:          %d\n", config.Runs)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	results, err := sweep.Run(ctx, config, m.XOR())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error training: %v\n", err)
		os.Exit(1)
	}
	stats.TrainTime = time.Since(totalStart)

	for _, r := range results {
		if config.Runs > 1 {
			fmt.Printf("run %d (seed %d): ", r.Run, r.Seed)
		}
		fmt.Printf("E_1 = %v E_2 = %v %%learned = %v\n", r.First, r.Last, r.Learned)
	}

	best, _ := sweep.Best(results)
	inferStart := time.Now()
	out, err := best.Network.Activate([]float64{1, 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error activating: %v\n", err)
		os.Exit(1)
	}
	stats.InferenceTime = time.Since(inferStart)
	fmt.Printf("XOR(1, 1) = %v (expected 0)\n", out[0])

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats, config.Epochs*config.Runs)
}

// loadConfig starts from the defaults, overlays the dotenv file and then the
// flags given on the command line.
func loadConfig() (utils.Config, error) {
	config := utils.DefaultConfig()
	if err := utils.LoadEnv(*envFile, &config); err != nil {
		return config, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hidden":
			config.Architecture = []int{2, *hidden, 1}
		case "epochs":
			config.Epochs = *epochs
		case "rate":
			config.LearningRate = *learningRate
		case "momentum":
			config.Momentum = *momentum
		case "init":
			config.Init = *initMode
		case "seed":
			config.Seed = *seed
		case "runs":
			config.Runs = *runs
		case "workers":
			config.Workers = *workers
		}
	})

	if err := utils.ValidateConfig(&config); err != nil {
		return config, err
	}
	if config.Architecture[0] != 2 || config.Architecture[2] != 1 {
		return config, fmt.Errorf("XOR needs 2 inputs and 1 output, got %v", config.Architecture)
	}
	return config, nil
}
