package trackers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samuelfneumann/snakeq/experiment/tracker"
)

func TestElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 d, 00:00.00"},
		{1500 * time.Millisecond, "0 d, 00:00.01"},
		{61 * time.Second, "0 d, 00:01.01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "0 d, 03:04.05"},
		{50*time.Hour + 59*time.Second, "2 d, 02:00.59"},
		{-time.Second, "0 d, 00:00.00"},
	}

	for _, test := range tests {
		if have := Elapsed(test.d); have != test.want {
			t.Errorf("elapsed(%v): \n\twant(%v) \n\thave(%v)", test.d,
				test.want, have)
		}
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	e := tracker.Episode{Index: 12, Score: 5, Record: 9,
		Elapsed: 83 * time.Second}
	if err := c.Track(e); err != nil {
		t.Fatal(err)
	}

	want := "# 12   5 / 9   Elapsed time: 0 d, 00:01.23\n"
	if buf.String() != want {
		t.Errorf("console: \n\twant(%q) \n\thave(%q)", want, buf.String())
	}
}

func TestConsoleRecord(t *testing.T) {
	var plain, colored bytes.Buffer
	e := tracker.Episode{Index: 3, Score: 7, Record: 7, NewRecord: true}

	if err := NewConsole(&plain, false).Track(e); err != nil {
		t.Fatal(err)
	}
	if err := NewConsole(&colored, true).Track(e); err != nil {
		t.Fatal(err)
	}

	line := Line(e)
	if !strings.Contains(colored.String(), line) {
		t.Errorf("console: record line \n\twant(%q) \n\thave(%q)", line,
			colored.String())
	}
	if colored.String() == plain.String() {
		t.Errorf("console: record line is not coloured")
	}
	if !strings.HasPrefix(colored.String(), "\x1b[") {
		t.Errorf("console: expected an escape sequence \n\thave(%q)",
			colored.String())
	}
}

func TestRunState(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "model", "vars.conf")
	r := NewRunState(filename)

	for i, record := range []int{3, 3, 7} {
		e := tracker.Episode{Index: i + 1, Record: record}
		if err := r.Track(e); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	want := "record = 7\nn_games = 3\n"
	if string(data) != want {
		t.Errorf("runstate: \n\twant(%q) \n\thave(%q)", want, data)
	}
}

func TestScores(t *testing.T) {
	dir := t.TempDir()
	pngFile := filepath.Join(dir, "scores.png")
	s := NewScores(pngFile, "")

	episodes := []tracker.Episode{
		{Index: 1, Score: 3, MeanScore: 3},
		{Index: 2, Score: 1, MeanScore: 2},
		{Index: 3, Score: 7, MeanScore: 3.7},
	}
	for _, e := range episodes {
		if err := s.Track(e); err != nil {
			t.Fatal(err)
		}
	}

	scores, means := s.Scores(), s.MeanScores()
	for i, e := range episodes {
		if scores[i] != float64(e.Score) || means[i] != e.MeanScore {
			t.Errorf("scores %v: \n\twant(%v %v) \n\thave(%v %v)", i,
				e.Score, e.MeanScore, scores[i], means[i])
		}
	}

	if _, err := os.Stat(pngFile); err != nil {
		t.Errorf("scores: plot not drawn: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "scores.html")); err == nil {
		t.Errorf("scores: chart drawn without a file name")
	}
}
