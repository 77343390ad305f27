package utils

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"xornet/nn"
)

// Config holds training configuration
type Config struct {
	Architecture []int // inputs, hiddens, outputs
	Epochs       int
	LearningRate float64
	Momentum     float64
	Init         string
	Seed         uint64
	Runs         int
	Workers      int
}

// DefaultConfig is the XOR demonstration: 2-2-1, 100000 epochs, rate 0.3,
// momentum 0.6.
func DefaultConfig() Config {
	return Config{
		Architecture: []int{2, 2, 1},
		Epochs:       100000,
		LearningRate: 0.3,
		Momentum:     0.6,
		Init:         nn.RowBroadcast.String(),
		Runs:         1,
		Workers:      runtime.NumCPU(),
	}
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(strings.ReplaceAll(archStr, ",", " "))
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) != 3 {
		return fmt.Errorf("architecture must have exactly 3 layers (input, hidden, output), got %d", len(config.Architecture))
	}

	for i, n := range config.Architecture {
		if n <= 0 {
			return fmt.Errorf("layer %d must have a positive node count, got %d", i, n)
		}
	}

	if config.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}

	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Momentum < 0 || config.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1)")
	}

	if _, err := nn.ParseInitMode(config.Init); err != nil {
		return err
	}

	if config.Runs <= 0 {
		return fmt.Errorf("runs must be positive")
	}

	if config.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	return nil
}

// Network returns the network configuration described by config, with seed
// offset added to the configured seed. A zero configured seed stays zero so
// the network seeds itself from the clock.
func (config Config) Network(offset uint64) (nn.Config, error) {
	if err := ValidateConfig(&config); err != nil {
		return nn.Config{}, err
	}
	mode, _ := nn.ParseInitMode(config.Init)
	seed := config.Seed
	if seed != 0 {
		seed += offset
	}
	return nn.Config{
		InputNum:  config.Architecture[0],
		HiddenNum: config.Architecture[1],
		OutputNum: config.Architecture[2],
		Init:      mode,
		Seed:      seed,
	}, nil
}

// Environment keys read by LoadEnv.
const (
	EnvArchitecture = "XORNET_ARCH"
	EnvEpochs       = "XORNET_EPOCHS"
	EnvLearningRate = "XORNET_RATE"
	EnvMomentum     = "XORNET_MOMENTUM"
	EnvInit         = "XORNET_INIT"
	EnvSeed         = "XORNET_SEED"
	EnvRuns         = "XORNET_RUNS"
	EnvWorkers      = "XORNET_WORKERS"
)

// LoadEnv overlays the XORNET_* keys of a dotenv file onto config. A missing
// file leaves config unchanged.
func LoadEnv(path string, config *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return ApplyEnv(env, config)
}

// ApplyEnv overlays the XORNET_* keys present in env onto config.
func ApplyEnv(env map[string]string, config *Config) error {
	var err error
	for key, value := range env {
		switch key {
		case EnvArchitecture:
			config.Architecture, err = ParseArchitecture(value)
		case EnvEpochs:
			config.Epochs, err = strconv.Atoi(value)
		case EnvLearningRate:
			config.LearningRate, err = strconv.ParseFloat(value, 64)
		case EnvMomentum:
			config.Momentum, err = strconv.ParseFloat(value, 64)
		case EnvInit:
			config.Init = value
		case EnvSeed:
			config.Seed, err = strconv.ParseUint(value, 10, 64)
		case EnvRuns:
			config.Runs, err = strconv.Atoi(value)
		case EnvWorkers:
			config.Workers, err = strconv.Atoi(value)
		}
		if err != nil {
			return errors.Wrapf(err, "parsing %s", key)
		}
	}
	return nil
}
