package nn

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config describes the topology of a Network and how its weights are seeded.
type Config struct {
	InputNum  int
	HiddenNum int
	OutputNum int
	Init      InitMode
	Seed      uint64 // 0 seeds from the clock
}

// Network is a fully connected input → hidden → output network trained with
// backpropagation and momentum. The input and hidden layers each carry one
// node beyond the configured count; nothing writes to the extra input node,
// but it still takes part in every weighted sum.
//
// A Network is not safe for concurrent use.
type Network struct {
	config    Config
	activator Sigmoid
	input     *Layer
	hidden    *Layer
	output    *Layer
}

// New returns a network with the given node counts and default weight
// initialisation.
func New(inputs, hiddens, outputs int) *Network {
	return NewNetwork(Config{
		InputNum:  inputs,
		HiddenNum: hiddens,
		OutputNum: outputs,
	})
}

// NewNetwork builds the layers back to front, since every layer sizes its
// weight matrix from the layer it feeds.
func NewNetwork(c Config) *Network {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dist := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(seed)}

	output := newLayer(c.OutputNum, nil, dist, c.Init)
	hidden := newLayer(c.HiddenNum+1, output, dist, c.Init)
	input := newLayer(c.InputNum+1, hidden, dist, c.Init)

	return &Network{
		config: c,
		input:  input,
		hidden: hidden,
		output: output,
	}
}

func (net *Network) Config() Config {
	return net.config
}

func (net *Network) Input() *Layer  { return net.input }
func (net *Network) Hidden() *Layer { return net.hidden }
func (net *Network) Output() *Layer { return net.output }

// SetWeights replaces both weight matrices and clears the momentum history.
func (net *Network) SetWeights(inputHidden, hiddenOutput mat.Matrix) error {
	if err := checkDims("input weights", inputHidden, net.input.nodes, net.hidden.nodes); err != nil {
		return err
	}
	if err := checkDims("hidden weights", hiddenOutput, net.hidden.nodes, net.output.nodes); err != nil {
		return err
	}
	net.input.weights.Copy(inputHidden)
	net.hidden.weights.Copy(hiddenOutput)
	net.input.changes.Zero()
	net.hidden.changes.Zero()
	return nil
}

func checkDims(name string, m mat.Matrix, rows, cols int) error {
	r, c := m.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("%s: expected %dx%d matrix, got %dx%d", name, rows, cols, r, c)
	}
	return nil
}

// Activate runs a forward pass and returns a copy of the output activations.
func (net *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != net.input.nodes-1 {
		return nil, &DimensionError{Op: OpActivate, Want: net.input.nodes - 1, Got: len(inputs)}
	}

	copy(net.input.activations, inputs)
	net.feedForward(net.input, net.hidden)
	net.feedForward(net.hidden, net.output)

	return net.output.Activations(), nil
}

// feedForward sets every activation of to from the weighted sum over all
// nodes of from.
func (net *Network) feedForward(from, to *Layer) {
	for i := 0; i < to.nodes; i++ {
		sum := 0.0
		for j := 0; j < from.nodes; j++ {
			sum += from.activations[j] * from.weights.At(j, i)
		}
		to.activations[i] = net.activator.Activate(sum)
	}
}

// RunBackpropagation adjusts the weights towards target using the activations
// left by the last call to Activate, and returns the halved squared error of
// that forward pass. On a dimension mismatch it returns -1.
func (net *Network) RunBackpropagation(target []float64, learningRate, momentum float64) (float64, error) {
	if len(target) != net.output.nodes {
		return -1, &DimensionError{Op: OpBackpropagate, Want: net.output.nodes, Got: len(target)}
	}

	outputDeltas := make([]float64, net.output.nodes)
	for i, y := range net.output.activations {
		outputDeltas[i] = net.activator.Deactivate(y) * (target[i] - y)
	}

	// Both deltas are taken before any weight moves.
	hiddenDeltas := make([]float64, net.hidden.nodes)
	for i, y := range net.hidden.activations {
		sum := 0.0
		for j, d := range outputDeltas {
			sum += net.hidden.weights.At(i, j) * d
		}
		hiddenDeltas[i] = net.activator.Deactivate(y) * sum
	}

	update(net.hidden, outputDeltas, learningRate, momentum)
	update(net.input, hiddenDeltas, learningRate, momentum)

	e := 0.0
	for i, y := range net.output.activations {
		d := target[i] - y
		e += 0.5 * d * d
	}
	return e, nil
}

// update moves the outgoing weights of l by the deltas of the next layer and
// records the raw change for the next momentum term.
func update(l *Layer, deltas []float64, learningRate, momentum float64) {
	for i, a := range l.activations {
		for j, d := range deltas {
			w := l.weights.At(i, j) + learningRate*d*a + momentum*l.changes.At(i, j)
			l.weights.Set(i, j, w)
			l.changes.Set(i, j, d*a)
		}
	}
}

// Train runs iterations epochs over the examples in order and returns the
// summed error of every epoch.
func (net *Network) Train(inputs, targets [][]float64, iterations int, learningRate, momentum float64) ([]float64, error) {
	return net.TrainContext(context.Background(), inputs, targets, iterations, learningRate, momentum)
}

// TrainContext is Train with cancellation checked between epochs. When ctx is
// done it returns the errors of the completed epochs together with ctx.Err().
func (net *Network) TrainContext(ctx context.Context, inputs, targets [][]float64, iterations int, learningRate, momentum float64) ([]float64, error) {
	if len(inputs) != len(targets) {
		return nil, &DimensionError{Op: OpTrain, Want: len(inputs), Got: len(targets)}
	}

	epochErrors := make([]float64, 0, iterations)
	for epoch := 0; epoch < iterations; epoch++ {
		if err := ctx.Err(); err != nil {
			return epochErrors, err
		}

		total := 0.0
		for i := range inputs {
			if _, err := net.Activate(inputs[i]); err != nil {
				return nil, fmt.Errorf("epoch %d, example %d: %w", epoch, i, err)
			}
			e, err := net.RunBackpropagation(targets[i], learningRate, momentum)
			if err != nil {
				return nil, fmt.Errorf("epoch %d, example %d: %w", epoch, i, err)
			}
			total += e
		}
		epochErrors = append(epochErrors, total)
	}
	return epochErrors, nil
}
