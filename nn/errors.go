package nn

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is matched by every *DimensionError via errors.Is.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Op names the network operation that rejected its arguments.
type Op string

const (
	OpActivate      Op = "activate"
	OpBackpropagate Op = "backpropagate"
	OpTrain         Op = "train"
)

// DimensionError reports a vector or dataset whose length does not fit the
// network topology.
type DimensionError struct {
	Op   Op
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: expected %d values, got %d", e.Op, e.Want, e.Got)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
