package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for one training run
type TimingStats struct {
	TotalTime     time.Duration
	InitTime      time.Duration
	TrainTime     time.Duration
	InferenceTime time.Duration
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, epochs int) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	if epochs > 0 {
		fmt.Fprintf(Output, "Average time per epoch: %.3fµs\n", DurationUS(stats.TrainTime)/float64(epochs))
	}
	fmt.Fprintf(Output, "Epochs completed: %d\n", epochs)
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Network initialization: %v (%.1f%%)\n", stats.InitTime, percentOf(stats.InitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Training: %v (%.1f%%)\n", stats.TrainTime, percentOf(stats.TrainTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Inference: %v (%.1f%%)\n", stats.InferenceTime, percentOf(stats.InferenceTime, stats.TotalTime))
}

func percentOf(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
