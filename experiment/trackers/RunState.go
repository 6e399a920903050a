package trackers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/snakeq/experiment/tracker"
)

// RunState overwrites a file with the record and the number of games
// played after every game. The file holds two lines, `record = N` and
// `n_games = M`, and is never read back.
type RunState struct {
	filename string
}

// NewRunState returns a new RunState tracker writing to filename
func NewRunState(filename string) tracker.Tracker {
	return &RunState{filename}
}

// Track writes the run state after e
func (r *RunState) Track(e tracker.Episode) error {
	if err := os.MkdirAll(filepath.Dir(r.filename), 0755); err != nil {
		return fmt.Errorf("track: could not create directory: %v", err)
	}

	data := fmt.Sprintf("record = %d\nn_games = %d\n", e.Record, e.Index)
	if err := os.WriteFile(r.filename, []byte(data), 0644); err != nil {
		return fmt.Errorf("track: could not write run state: %v", err)
	}
	return nil
}
