package nn

import "math"

// Sigmoid is the logistic activation used by every layer of the network.
type Sigmoid struct{}

// Activate returns 1/(1+e^-sum).
func (s Sigmoid) Activate(sum float64) float64 {
	return 1.0 / (1.0 + math.Exp(-sum))
}

// Deactivate returns the derivative of the sigmoid expressed through an
// already activated value y = σ(x), i.e. y(1-y).
func (s Sigmoid) Deactivate(y float64) float64 {
	return y * (1.0 - y)
}

func (s Sigmoid) String() string {
	return "sigmoid"
}
