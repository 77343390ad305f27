package utils

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func TestPrintTimingStats(t *testing.T) {
	var buf bytes.Buffer
	oldOutput, oldVerbose := Output, Verbose
	Output, Verbose = &buf, true
	defer func() { Output, Verbose = oldOutput, oldVerbose }()

	stats := &TimingStats{
		TotalTime:     4 * time.Second,
		InitTime:      time.Second,
		TrainTime:     2 * time.Second,
		InferenceTime: time.Second,
	}
	PrintTimingStats(stats, 1000)
	out := buf.String()
	if !strings.Contains(out, "Training: 2s (50.0%)") {
		t.Fatalf("missing training share in:\n%s", out)
	}
	if !strings.Contains(out, "Average time per epoch: 2000.000µs") {
		t.Fatalf("missing per-epoch average in:\n%s", out)
	}

	buf.Reset()
	Verbose = false
	PrintTimingStats(stats, 1000)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}
}
