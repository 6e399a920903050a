// Package policy implements the epsilon greedy behaviour policy used to
// select actions in the snake game
package policy

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// ExploreGames is the number of games after which the policy never
	// explores
	ExploreGames = 80

	// ExploreRange bounds the exploration draw, which is uniform over
	// [0, ExploreRange]
	ExploreRange = 200
)

// Rand is a source of uniformly random integers. Both *rand.Rand from
// golang.org/x/exp/rand and *rand.Rand from math/rand satisfy Rand.
type Rand interface {
	// Intn returns a uniform random integer in [0, n)
	Intn(n int) int
}

// Predictor predicts the value of each action given a feature vector
type Predictor interface {
	Predict(features mat.Vector) ([]float64, error)
}

// EGreedy implements an ε-greedy policy where ε decays linearly with
// the number of games played. With probability (80 - n) / 201 a
// uniformly random action is taken, where n is the number of games
// played so far. Otherwise, the action of maximum predicted value is
// taken, ties going to the lowest index.
type EGreedy struct {
	predictor Predictor
	actions   int
	rng       Rand
}

// NewEGreedy returns a new EGreedy policy over actions actions which
// uses predictor to predict action values
func NewEGreedy(predictor Predictor, actions int, rng Rand) (*EGreedy,
	error) {
	if actions < 1 {
		return nil, fmt.Errorf("newegreedy: number of actions must be "+
			"positive \n\twant(>0) \n\thave(%v)", actions)
	}
	if predictor == nil {
		return nil, fmt.Errorf("newegreedy: predictor cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("newegreedy: rng cannot be nil")
	}

	return &EGreedy{
		predictor: predictor,
		actions:   actions,
		rng:       rng,
	}, nil
}

// Epsilon returns the exploration threshold after episodes games.
//
// The threshold is not floored at zero. Once episodes exceeds
// ExploreGames it is negative and the exploration draw never falls
// below it.
func Epsilon(episodes int) int {
	return ExploreGames - episodes
}

// SelectAction selects an action for the feature vector features after
// episodes games have been played. The returned action is a one-hot
// vector.
func (e *EGreedy) SelectAction(features mat.Vector,
	episodes int) (*mat.VecDense, error) {
	action := mat.NewVecDense(e.actions, nil)

	if e.rng.Intn(ExploreRange+1) < Epsilon(episodes) {
		action.SetVec(e.rng.Intn(e.actions), 1.0)
		return action, nil
	}

	values, err := e.predictor.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("selectaction: could not predict action "+
			"values: %v", err)
	}
	if len(values) != e.actions {
		return nil, fmt.Errorf("selectaction: invalid number of action "+
			"values \n\twant(%v) \n\thave(%v)", e.actions, len(values))
	}

	action.SetVec(floats.MaxIdx(values), 1.0)
	return action, nil
}

// Actions returns the number of actions the policy selects between
func (e *EGreedy) Actions() int {
	return e.actions
}
