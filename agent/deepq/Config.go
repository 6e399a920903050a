package deepq

import (
	"fmt"

	"github.com/samuelfneumann/snakeq/initwfn"
	"github.com/samuelfneumann/snakeq/network"
	"github.com/samuelfneumann/snakeq/solver"
)

// Config implements a configuration for a QNet
type Config struct {
	Features    int                   // Length of a feature vector
	Actions     int                   // Number of actions
	HiddenSizes []int                 // Layer sizes in neural net
	Activations []*network.Activation // Activation of each hidden layer
	Solver      *solver.Solver        // Solver for learning weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	Gamma float64 // Discount factor

	// BatchSize is the largest batch the model is updated with. Larger
	// batches are rejected by Update.
	BatchSize int

	// Filename is where the model is saved
	Filename string
}

// Validate checks a Config to ensure it is a valid configuration of a
// QNet.
func (c Config) Validate() error {
	if c.Features < 1 {
		return fmt.Errorf("new: features must be positive \n\twant(>0) "+
			"\n\thave(%v)", c.Features)
	}

	if c.Actions < 1 {
		return fmt.Errorf("new: actions must be positive \n\twant(>0) "+
			"\n\thave(%v)", c.Actions)
	}

	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("new: invalid number of activations\n\twant(%v)"+
			"\n\thave(%v)", len(c.HiddenSizes), len(c.Activations))
	}

	if c.Solver == nil {
		return fmt.Errorf("new: solver cannot be nil")
	}

	if c.InitWFn == nil {
		return fmt.Errorf("new: weight initializer cannot be nil")
	}

	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("new: discount must be in [0, 1] \n\thave(%v)",
			c.Gamma)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("new: batch size must be positive \n\twant(>0) "+
			"\n\thave(%v)", c.BatchSize)
	}

	if c.Filename == "" {
		return fmt.Errorf("new: filename cannot be empty")
	}

	return nil
}
