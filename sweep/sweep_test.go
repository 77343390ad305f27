package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"xornet/m"
	"xornet/nn"
	"xornet/utils"
)

func smallConfig() utils.Config {
	c := utils.DefaultConfig()
	c.Epochs = 200
	c.Runs = 4
	c.Workers = 2
	c.Seed = 7
	return c
}

func TestRunOrderedAndSeeded(t *testing.T) {
	results, err := Run(context.Background(), smallConfig(), m.XOR())
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		require.Equal(t, i, r.Run)
		require.Equal(t, uint64(7+i), r.Seed)
		require.Equal(t, 100*r.First/r.Last, r.Learned)
		require.NotNil(t, r.Network)
	}
}

func TestRunMatchesSingleNetwork(t *testing.T) {
	c := smallConfig()
	results, err := Run(context.Background(), c, m.XOR())
	require.NoError(t, err)

	nc, err := c.Network(2)
	require.NoError(t, err)
	inputs, targets := m.XOR().Split()
	errs, err := nn.NewNetwork(nc).Train(inputs, targets, c.Epochs, c.LearningRate, c.Momentum)
	require.NoError(t, err)

	require.Equal(t, errs[0], results[2].First)
	require.Equal(t, errs[len(errs)-1], results[2].Last)
}

func TestRunClockSeed(t *testing.T) {
	c := smallConfig()
	c.Seed = 0
	c.Runs = 2
	results, err := Run(context.Background(), c, m.XOR())
	require.NoError(t, err)
	require.NotZero(t, results[0].Seed)
	require.Equal(t, results[0].Seed+1, results[1].Seed)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallConfig(), m.XOR())
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRunRejectsBadInput(t *testing.T) {
	c := smallConfig()
	c.Workers = 0
	_, err := Run(context.Background(), c, m.XOR())
	require.Error(t, err)

	_, err = Run(context.Background(), smallConfig(), nil)
	require.Error(t, err)

	// three inputs against a two input network
	lines := m.Lines{{Inputs: []float64{0, 1, 1}, Targets: []float64{1}}}
	_, err = Run(context.Background(), smallConfig(), lines)
	require.ErrorIs(t, err, nn.ErrDimensionMismatch)
}

func TestBest(t *testing.T) {
	_, ok := Best(nil)
	require.False(t, ok)

	best, ok := Best([]Result{{Run: 0, Last: 0.2}, {Run: 1, Last: 0.01}, {Run: 2, Last: 0.125}})
	require.True(t, ok)
	require.Equal(t, 1, best.Run)
}
