// Package agent implements the snake playing agent: it featurizes
// observations, selects actions with an epsilon greedy policy, remembers
// transitions in a replay buffer, and trains its model on single
// transitions (short memory) and on batches sampled from the replay
// buffer (long memory).
package agent

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/snakeq/agent/policy"
	env "github.com/samuelfneumann/snakeq/environment"
	"github.com/samuelfneumann/snakeq/expreplay"
	"github.com/samuelfneumann/snakeq/featurizer"
	"github.com/samuelfneumann/snakeq/timestep"
)

// Model is a learned action value function
type Model interface {
	policy.Predictor

	// Update performs a single learning step on a batch of transitions
	Update(timestep.Batch) error

	// Save persists the model's current weights
	Save() error
}

// RunState is the state of a training run. It is created once per
// process and never reset.
type RunState struct {
	NGames  int     // Number of games finished
	Epsilon int     // Exploration threshold used in the last decision
	Gamma   float64 // Discount factor
	Record  int     // Best score seen so far
}

// Agent learns to play the snake game with online deep Q-learning
type Agent struct {
	RunState

	policy    *policy.EGreedy
	replay    *expreplay.ReplayBuffer
	model     Model
	batchSize int
}

// New returns a new Agent which learns the action values of model.
// Transitions are remembered in replay and batchSize transitions are
// sampled from replay for each long memory update.
func New(model Model, replay *expreplay.ReplayBuffer, rng policy.Rand,
	batchSize int, gamma float64) (*Agent, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("new: batch size must be positive "+
			"\n\twant(>0) \n\thave(%v)", batchSize)
	}
	if replay == nil {
		return nil, fmt.Errorf("new: replay buffer cannot be nil")
	}

	p, err := policy.NewEGreedy(model, env.Actions, rng)
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy: %v", err)
	}

	return &Agent{
		RunState: RunState{
			Epsilon: policy.Epsilon(0),
			Gamma:   gamma,
		},
		policy:    p,
		replay:    replay,
		model:     model,
		batchSize: batchSize,
	}, nil
}

// State returns the feature vector of an observation
func (a *Agent) State(obs env.Observation) *mat.VecDense {
	return featurizer.Featurize(obs)
}

// SelectAction returns the one-hot action to take in state. The
// exploration threshold is recomputed from the number of games played
// before every decision.
func (a *Agent) SelectAction(state mat.Vector) (*mat.VecDense, error) {
	a.Epsilon = policy.Epsilon(a.NGames)
	return a.policy.SelectAction(state, a.NGames)
}

// TrainShortMemory updates the model on the single transition t
func (a *Agent) TrainShortMemory(t timestep.Transition) error {
	if err := a.model.Update(timestep.Batch{t}); err != nil {
		return fmt.Errorf("trainshortmemory: %v", err)
	}
	return nil
}

// Remember stores t in the replay buffer
func (a *Agent) Remember(t timestep.Transition) {
	a.replay.Add(t)
}

// TrainLongMemory updates the model on a batch sampled from the replay
// buffer. If the buffer holds no more than the batch size, the batch
// is the entire buffer.
func (a *Agent) TrainLongMemory() error {
	batch := a.replay.Sample(a.batchSize)
	if err := a.model.Update(batch); err != nil {
		return fmt.Errorf("trainlongmemory: %v", err)
	}
	return nil
}

// Save saves the agent's model
func (a *Agent) Save() error {
	if err := a.model.Save(); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Memory returns the number of transitions remembered
func (a *Agent) Memory() int {
	return a.replay.Len()
}

// BatchSize returns the maximum number of transitions in a long memory
// update
func (a *Agent) BatchSize() int {
	return a.batchSize
}
