// Package tracker outlines Trackers, which receive a summary of every
// finished game of a training run
package tracker

import (
	"fmt"
	"time"
)

// Episode summarizes a finished game
type Episode struct {
	Index     int           // Number of games finished, including this one
	Score     int           // Score of the game
	Record    int           // Best score so far, including this game
	NewRecord bool          // Whether this game set the record
	Steps     int           // Number of steps in the game
	Elapsed   time.Duration // Time since training started
	MeanScore float64       // Mean score over all games, to 1 decimal
}

// String implements the fmt.Stringer interface
func (e Episode) String() string {
	return fmt.Sprintf("Episode{%d: score %d, record %d, mean %.1f}",
		e.Index, e.Score, e.Record, e.MeanScore)
}

// Tracker keeps track of finished games. Track is called once after
// every game; an error ends the training run.
type Tracker interface {
	Track(Episode) error
}

// Func adapts a function to a Tracker
type Func func(Episode) error

// Track calls f(e)
func (f Func) Track(e Episode) error {
	return f(e)
}
