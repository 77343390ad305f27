// xornet-infer: trains on a CSV dataset and answers queries with the trained network
//
// Usage:
//
//	xornet-infer --data=and.csv --arch="2 2 1" --query="0,1;1,1"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"xornet/m"
	"xornet/nn"
	"xornet/utils"
)

var (
	envFile      = flag.String("env", ".env", "dotenv file with XORNET_* settings")
	dataFile     = flag.String("data", "", "CSV file: inputs followed by targets on every line")
	arch         = flag.String("arch", "2 2 1", "Node counts of the input, hidden and output layers")
	epochs       = flag.Int("epochs", 100000, "Number of training epochs")
	learningRate = flag.Float64("rate", 0.3, "Learning rate")
	momentum     = flag.Float64("momentum", 0.6, "Momentum")
	initMode     = flag.String("init", "row", "Weight init: row (one draw per node) or connection")
	seed         = flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	limit        = flag.Int("limit", 0, "Train on the first N lines only (0 for all)")
	normalize    = flag.Bool("normalize", false, "Standardise inputs with the dataset mean and deviation")
	query        = flag.String("query", "", "Semicolon separated inputs to predict, e.g. 0,1;1,1")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	if *dataFile == "" {
		fmt.Fprintln(os.Stderr, "a dataset must be specified with --data")
		os.Exit(1)
	}

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	inputNum, outputNum := config.Architecture[0], config.Architecture[2]

	lines, err := readLines(*dataFile, inputNum, outputNum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't get lines from file: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 {
		lines = m.LineSplitter(*limit, 0, lines)
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "no training lines")
		os.Exit(1)
	}
	fmt.Printf("Read %d lines...\n", len(lines))

	queries, err := parseQueries(*query, inputNum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing query: %v\n", err)
		os.Exit(1)
	}

	if *normalize {
		std, mean := m.CalculateStdDev(lines), m.CalculateMean(lines)
		lines = m.NormalizeLines(lines, std, mean)
		queries = m.NormalizeLines(queries, std, mean)
	}

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	nc, err := config.Network(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	network := nn.NewNetwork(nc)
	stats.InitTime = time.Since(totalStart)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Started training...")
	trainStart := time.Now()
	inputs, targets := lines.Split()
	errs, err := network.TrainContext(ctx, inputs, targets, config.Epochs, config.LearningRate, config.Momentum)
	stats.TrainTime = time.Since(trainStart)
	if err != nil && len(errs) == 0 {
		fmt.Fprintf(os.Stderr, "training network: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Training stopped after %d of %d epochs: %v\n", len(errs), config.Epochs, err)
	}
	first, last := errs[0], errs[len(errs)-1]
	fmt.Printf("E_1 = %v E_2 = %v %%learned = %v\n", first, last, 100*first/last)

	inferStart := time.Now()
	for _, q := range queries {
		prediction, err := network.Activate(q.Inputs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "predicting %v: %v\n", q.Inputs, err)
			os.Exit(1)
		}
		fmt.Println("Prediction:", prediction)
	}
	stats.InferenceTime = time.Since(inferStart)

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats, len(errs))
}

func loadConfig() (utils.Config, error) {
	config := utils.DefaultConfig()
	if err := utils.LoadEnv(*envFile, &config); err != nil {
		return config, err
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "arch":
			config.Architecture, err = utils.ParseArchitecture(*arch)
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
		}
	})
	if err != nil {
		return config, fmt.Errorf("parsing architecture: %w", err)
	}

	return config, utils.ValidateConfig(&config)
}

func readLines(path string, inputNum, outputNum int) (m.Lines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return m.GetLines(f, inputNum, outputNum)
}

// parseQueries reads "0,1;1,1" into lines without targets.
func parseQueries(s string, inputNum int) (m.Lines, error) {
	var queries m.Lines
	for _, q := range strings.Split(s, ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		splits := strings.Split(q, ",")
		if len(splits) != inputNum {
			return nil, fmt.Errorf("query %q: expected %d values, got %d", q, inputNum, len(splits))
		}
		inputs := make([]float64, inputNum)
		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if err != nil {
				return nil, fmt.Errorf("query %q: %w", q, err)
			}
			inputs[i] = num
		}
		queries = append(queries, m.Line{Inputs: inputs})
	}
	return queries, nil
}
