package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Direction is an absolute heading on the grid
type Direction int

// Directions are enumerated clockwise so that turning right is the next
// Direction and turning left the previous one
const (
	Right Direction = iota
	Down
	Left
	Up
)

// Relative actions, as indices into a one-hot action vector
const (
	Straight = iota
	TurnRight
	TurnLeft

	// Actions is the length of an action vector
	Actions
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Up:
		return "Up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Clockwise returns the direction after turning right
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// CounterClockwise returns the direction after turning left
func (d Direction) CounterClockwise() Direction {
	return (d + 3) % 4
}

// Turn returns the direction after taking a relative action
func (d Direction) Turn(action int) Direction {
	switch action {
	case TurnRight:
		return d.Clockwise()
	case TurnLeft:
		return d.CounterClockwise()
	default:
		return d
	}
}

// Step returns the point one cell away from p in direction d
func (d Direction) Step(p Point) Point {
	switch d {
	case Right:
		return p.Add(1, 0)
	case Down:
		return p.Add(0, 1)
	case Left:
		return p.Add(-1, 0)
	case Up:
		return p.Add(0, -1)
	}
	return p
}

// ActionIndex returns the index of the single non-zero entry in a
// one-hot action vector. An error is returned if the vector has the
// wrong length or is not one-hot.
func ActionIndex(action mat.Vector) (int, error) {
	if action.Len() != Actions {
		return -1, fmt.Errorf("actionindex: invalid action length "+
			"\n\twant(%v) \n\thave(%v)", Actions, action.Len())
	}

	index := -1
	for i := 0; i < action.Len(); i++ {
		switch action.AtVec(i) {
		case 0:
		case 1:
			if index != -1 {
				return -1, fmt.Errorf("actionindex: action is not one-hot: %v",
					mat.Formatted(action.T()))
			}
			index = i
		default:
			return -1, fmt.Errorf("actionindex: action is not one-hot: %v",
				mat.Formatted(action.T()))
		}
	}
	if index == -1 {
		return -1, fmt.Errorf("actionindex: no action selected")
	}
	return index, nil
}

// OneHot returns the one-hot action vector for a relative action
func OneHot(action int) *mat.VecDense {
	v := mat.NewVecDense(Actions, nil)
	v.SetVec(action, 1.0)
	return v
}
