package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/snakeq/agent"
	env "github.com/samuelfneumann/snakeq/environment"
	"github.com/samuelfneumann/snakeq/experiment/tracker"
	ts "github.com/samuelfneumann/snakeq/timestep"
	"github.com/samuelfneumann/snakeq/utils/floatutils"
)

// Online is an Experiment that trains an agent online. The agent
// learns from every step it takes and from a batch of remembered steps
// after every game.
type Online struct {
	env.Environment
	agent    *agent.Agent
	trackers []tracker.Tracker

	start      time.Time
	now        func() time.Time
	totalScore int
}

// NewOnline creates and returns a new online experiment of agent a in
// environment e. Each finished game is reported to t.
func NewOnline(e env.Environment, a *agent.Agent,
	t ...tracker.Tracker) *Online {
	return newOnline(e, a, time.Now, t...)
}

func newOnline(e env.Environment, a *agent.Agent, now func() time.Time,
	t ...tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		agent:       a,
		trackers:    t,
		start:       now(),
		now:         now,
	}
}

// Register registers a tracker.Tracker with an Experiment so that
// games finished afterwards are reported to it
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode plays a single game of the experiment and returns its
// summary
func (o *Online) RunEpisode() (tracker.Episode, error) {
	for steps := 1; ; steps++ {
		state := o.agent.State(o.Environment)
		action, err := o.agent.SelectAction(state)
		if err != nil {
			return tracker.Episode{}, fmt.Errorf("runepisode: %v", err)
		}

		reward, done, score, err := o.PlayStep(action)
		if err != nil {
			return tracker.Episode{}, fmt.Errorf("runepisode: %v", err)
		}

		next := o.agent.State(o.Environment)
		t := ts.NewTransition(state, action, reward, next, done)

		// The step is remembered even if the update on it failed
		err = o.agent.TrainShortMemory(t)
		o.agent.Remember(t)
		if err != nil {
			return tracker.Episode{}, fmt.Errorf("runepisode: %v", err)
		}

		if done {
			return o.finish(score, steps)
		}
	}
}

// finish ends a game with the argument score which lasted for steps
// steps
func (o *Online) finish(score, steps int) (tracker.Episode, error) {
	o.Reset()
	o.agent.NGames++

	if err := o.agent.TrainLongMemory(); err != nil {
		return tracker.Episode{}, fmt.Errorf("runepisode: %v", err)
	}

	newRecord := score > o.agent.Record
	if newRecord {
		o.agent.Record = score
		if err := o.agent.Save(); err != nil {
			return tracker.Episode{}, fmt.Errorf("runepisode: %v", err)
		}
	}

	o.totalScore += score
	mean := float64(o.totalScore) / float64(o.agent.NGames)

	e := tracker.Episode{
		Index:     o.agent.NGames,
		Score:     score,
		Record:    o.agent.Record,
		NewRecord: newRecord,
		Steps:     steps,
		Elapsed:   o.now().Sub(o.start),
		MeanScore: floatutils.Round(mean, 1),
	}

	for _, t := range o.trackers {
		if err := t.Track(e); err != nil {
			return e, fmt.Errorf("runepisode: %v", err)
		}
	}
	return e, nil
}

// Run plays games until an error occurs and returns the error
func (o *Online) Run() error {
	for {
		if _, err := o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}
}
