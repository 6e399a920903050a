// Package trackers implements Trackers that report a training run to
// the console and to files
package trackers

import (
	"fmt"
	"io"
	"time"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/snakeq/experiment/tracker"
)

// Console prints one line per game. Lines of games that set a new
// record are printed in green when colours are enabled.
type Console struct {
	w  io.Writer
	au aurora.Aurora
}

// NewConsole returns a new Console tracker printing to w
func NewConsole(w io.Writer, colors bool) tracker.Tracker {
	return &Console{w: w, au: aurora.NewAurora(colors)}
}

// Track prints the summary line of e
func (c *Console) Track(e tracker.Episode) error {
	line := Line(e)

	var err error
	if e.NewRecord {
		_, err = fmt.Fprintln(c.w, c.au.Green(line))
	} else {
		_, err = fmt.Fprintln(c.w, line)
	}
	if err != nil {
		return fmt.Errorf("track: could not print episode: %v", err)
	}
	return nil
}

// Line formats the summary line of e
func Line(e tracker.Episode) string {
	return fmt.Sprintf("# %d   %d / %d   Elapsed time: %s", e.Index, e.Score,
		e.Record, Elapsed(e.Elapsed))
}

// Elapsed formats d as days followed by hours, minutes and seconds
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	seconds %= 60

	return fmt.Sprintf("%d d, %02d:%02d.%02d", days, hours, minutes, seconds)
}
