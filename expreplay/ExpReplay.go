// Package expreplay implements a fixed capacity experience replay buffer
package expreplay

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/samuelfneumann/snakeq/timestep"
)

// ReplayBuffer implements an experience replay buffer with a fixed
// maximum capacity. Transitions are removed in a FiFo manner: once the
// buffer is full, adding a transition overwrites the single oldest
// transition. Sampling is uniformly random without replacement.
//
// The buffer is stored as a ring so that adding is O(1). A ReplayBuffer
// is not safe for concurrent use.
type ReplayBuffer struct {
	transitions []timestep.Transition

	// next is the position the next transition is written to. When the
	// buffer is full it is also the position of the oldest transition.
	next int
	full bool

	src rand.Source
}

// New creates and returns a new ReplayBuffer that can hold at most
// capacity transitions. The src parameter is the source of randomness
// used when sampling.
func New(capacity int, src rand.Source) (*ReplayBuffer, error) {
	if capacity < 1 {
		return nil, &ExpReplayError{
			Op:  "new",
			Err: fmt.Errorf("%w (have %v)", errInvalidCapacity, capacity),
		}
	}

	return &ReplayBuffer{
		transitions: make([]timestep.Transition, 0, capacity),
		src:         src,
	}, nil
}

// Add adds a transition to the buffer, evicting the oldest transition if
// the buffer is at capacity
func (r *ReplayBuffer) Add(t timestep.Transition) {
	if !r.full {
		r.transitions = append(r.transitions, t)
	} else {
		r.transitions[r.next] = t
	}

	r.next = (r.next + 1) % cap(r.transitions)
	if r.next == 0 {
		r.full = true
	}
}

// Sample returns a batch of at most k transitions. If the buffer holds
// k or fewer transitions, all of them are returned, oldest first.
// Otherwise k distinct transitions are drawn uniformly randomly. The
// order of a random sample is unspecified. Sample never modifies the
// buffer.
func (r *ReplayBuffer) Sample(k int) timestep.Batch {
	if k < 0 {
		k = 0
	}

	if r.Len() <= k {
		batch := make(timestep.Batch, 0, r.Len())
		for _, index := range r.insertOrder() {
			batch = append(batch, r.transitions[index])
		}
		return batch
	}

	indices := make([]int, k)
	sampleuv.WithoutReplacement(indices, r.Len(), r.src)

	batch := make(timestep.Batch, k)
	for i, index := range indices {
		batch[i] = r.transitions[index]
	}
	return batch
}

// insertOrder returns the indices of stored transitions, oldest first
func (r *ReplayBuffer) insertOrder() []int {
	order := make([]int, 0, r.Len())
	if r.full {
		for i := r.next; i < len(r.transitions); i++ {
			order = append(order, i)
		}
		for i := 0; i < r.next; i++ {
			order = append(order, i)
		}
		return order
	}

	for i := range r.transitions {
		order = append(order, i)
	}
	return order
}

// Len returns the current number of transitions in the buffer
func (r *ReplayBuffer) Len() int {
	return len(r.transitions)
}

// Capacity returns the maximum number of transitions the buffer holds
func (r *ReplayBuffer) Capacity() int {
	return cap(r.transitions)
}

// String returns the string representation of the buffer
func (r *ReplayBuffer) String() string {
	return fmt.Sprintf("ReplayBuffer | Len: %v  |  Capacity: %v", r.Len(),
		r.Capacity())
}
