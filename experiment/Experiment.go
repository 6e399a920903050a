// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/samuelfneumann/snakeq/experiment/tracker"
)

// Experiment runs an agent in an environment. RunEpisode runs a single
// game and returns its summary, and Run runs games until an error
// occurs.
//
// Experiments report each finished game to Trackers. New Trackers can
// be registered with an Experiment through the constructor or through
// its Register() method, which may be called between games.
type Experiment interface {
	Run() error
	RunEpisode() (tracker.Episode, error)
	Register(t tracker.Tracker)
}
