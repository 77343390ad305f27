package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InitMode selects how many random draws seed a layer's outgoing weights.
type InitMode int

const (
	// RowBroadcast draws one value per node and repeats it across every
	// outgoing connection of that node.
	RowBroadcast InitMode = iota
	// PerConnection draws every weight independently.
	PerConnection
)

var initModeNames = map[InitMode]string{
	RowBroadcast:  "row",
	PerConnection: "connection",
}

func (m InitMode) String() string {
	if name, ok := initModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("InitMode(%d)", int(m))
}

// ParseInitMode maps "row" and "connection" to their InitMode.
func ParseInitMode(s string) (InitMode, error) {
	for mode, name := range initModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown weight init mode %q", s)
}

// Layer holds the activations of one layer of nodes and the weights that
// connect it to the following layer. The terminal layer has no weights.
type Layer struct {
	nodes       int
	activations []float64
	weights     *mat.Dense // nodes × next.nodes
	changes     *mat.Dense // previous deltas, used as momentum
}

func newLayer(nodes int, next *Layer, dist distuv.Uniform, mode InitMode) *Layer {
	l := &Layer{
		nodes:       nodes,
		activations: make([]float64, nodes),
	}
	if next == nil {
		return l
	}

	l.weights = mat.NewDense(nodes, next.nodes, nil)
	l.changes = mat.NewDense(nodes, next.nodes, nil)
	for i := 0; i < nodes; i++ {
		w := dist.Rand()
		for j := 0; j < next.nodes; j++ {
			if mode == PerConnection && j > 0 {
				w = dist.Rand()
			}
			l.weights.Set(i, j, w)
		}
	}
	return l
}

// Nodes returns the number of nodes in the layer.
func (l *Layer) Nodes() int {
	return l.nodes
}

// Activations returns a copy of the layer's current activation values.
func (l *Layer) Activations() []float64 {
	return append([]float64(nil), l.activations...)
}

// Weights returns a copy of the outgoing weight matrix, or nil for the
// terminal layer.
func (l *Layer) Weights() *mat.Dense {
	if l.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(l.weights)
}

// Changes returns a copy of the momentum matrix, or nil for the terminal layer.
func (l *Layer) Changes() *mat.Dense {
	if l.changes == nil {
		return nil
	}
	return mat.DenseCopyOf(l.changes)
}
