// Package timestep implements the transitions recorded during the
// agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transition packages together a single step of experience: the state
// the agent was in, the one-hot action it took, the reward it received,
// the state it ended up in, and whether that state was terminal.
//
// Transitions are values. NewTransition copies the argument vectors so
// that a Transition never aliases vectors owned by the caller.
type Transition struct {
	State     *mat.VecDense
	Action    *mat.VecDense
	Reward    float64
	NextState *mat.VecDense
	Done      bool
}

// NewTransition creates and returns a new Transition
func NewTransition(state mat.Vector, action mat.Vector, reward float64,
	nextState mat.Vector, done bool) Transition {
	return Transition{
		State:     copyVec(state),
		Action:    copyVec(action),
		Reward:    reward,
		NextState: copyVec(nextState),
		Done:      done,
	}
}

// ActionIndex returns the index of the action taken in the one-hot
// action vector, or -1 if no action is set
func (t Transition) ActionIndex() int {
	for i := 0; i < t.Action.Len(); i++ {
		if t.Action.AtVec(i) != 0 {
			return i
		}
	}
	return -1
}

func (t Transition) String() string {
	str := "Transition | Action: %v  |  Reward:  %.2f  |  Done: %v"
	return fmt.Sprintf(str, t.ActionIndex(), t.Reward, t.Done)
}

func copyVec(v mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}
