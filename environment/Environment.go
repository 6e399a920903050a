// Package environment outlines the interfaces and types needed to
// implement grid game environments that an agent can be trained on
package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Point is a cell on the game grid. X grows to the right and Y grows
// downward, so moving up decreases Y.
type Point struct {
	X, Y int
}

// Add returns the point translated by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Observation exposes the parts of the game state that are needed to
// featurize it
type Observation interface {
	// Head returns the position of the head of the snake
	Head() Point

	// Heading returns the direction the snake is currently moving
	Heading() Direction

	// IsCollision returns whether moving into the point p would end
	// the episode
	IsCollision(p Point) bool

	// Food returns the position of the food
	Food() Point
}

// Environment implements a simulated game that an agent acts in.
//
// Actions are one-hot vectors of length Actions, interpreted relative
// to the current heading: straight, turn right, turn left.
type Environment interface {
	Observation

	// Reset starts a new episode
	Reset()

	// PlayStep advances the game by one step using the argument
	// action, returning the reward for the step, whether the episode
	// ended, and the score of the current episode.
	PlayStep(action mat.Vector) (reward float64, done bool, score int,
		err error)
}
