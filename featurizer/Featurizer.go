// Package featurizer converts snake game observations into the fixed
// size binary feature vectors that the agent learns from
package featurizer

import (
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/snakeq/environment"
)

// Indices of each feature in a feature vector
const (
	DangerStraight = iota
	DangerRight
	DangerLeft

	MovingLeft
	MovingRight
	MovingUp
	MovingDown

	FoodLeft
	FoodRight
	FoodUp
	FoodDown

	// Features is the length of a feature vector
	Features
)

// Featurize returns the feature vector of an observation.
//
// The first three features flag danger one cell ahead relative to the
// current heading (straight, right turn, left turn). The next four are
// a one-hot encoding of the absolute heading (left, right, up, down).
// The last four flag whether the food lies strictly left of, right of,
// above, or below the head. All features are 0 or 1.
func Featurize(obs env.Observation) *mat.VecDense {
	features := mat.NewVecDense(Features, nil)

	head := obs.Head()
	heading := obs.Heading()

	setIf(features, DangerStraight, obs.IsCollision(heading.Step(head)))
	setIf(features, DangerRight,
		obs.IsCollision(heading.Clockwise().Step(head)))
	setIf(features, DangerLeft,
		obs.IsCollision(heading.CounterClockwise().Step(head)))

	setIf(features, MovingLeft, heading == env.Left)
	setIf(features, MovingRight, heading == env.Right)
	setIf(features, MovingUp, heading == env.Up)
	setIf(features, MovingDown, heading == env.Down)

	food := obs.Food()
	setIf(features, FoodLeft, food.X < head.X)
	setIf(features, FoodRight, food.X > head.X)
	setIf(features, FoodUp, food.Y < head.Y)
	setIf(features, FoodDown, food.Y > head.Y)

	return features
}

func setIf(v *mat.VecDense, i int, flag bool) {
	if flag {
		v.SetVec(i, 1.0)
	}
}
