package trackers

import (
	"fmt"

	"github.com/samuelfneumann/snakeq/experiment/plot"
	"github.com/samuelfneumann/snakeq/experiment/tracker"
)

// Scores tracks the score and the mean score of each game and redraws
// both series after every game. A file name that is empty is not
// drawn.
type Scores struct {
	scores     []float64
	meanScores []float64

	pngFile  string
	htmlFile string
}

// NewScores returns a new Scores tracker that draws a PNG plot to
// pngFile and an HTML chart to htmlFile
func NewScores(pngFile, htmlFile string) *Scores {
	return &Scores{pngFile: pngFile, htmlFile: htmlFile}
}

// Track records the score of e and redraws the plots
func (s *Scores) Track(e tracker.Episode) error {
	s.scores = append(s.scores, float64(e.Score))
	s.meanScores = append(s.meanScores, e.MeanScore)

	if s.pngFile != "" {
		if err := plot.PNG(s.pngFile, s.scores, s.meanScores); err != nil {
			return fmt.Errorf("track: %v", err)
		}
	}
	if s.htmlFile != "" {
		if err := plot.HTML(s.htmlFile, s.scores, s.meanScores); err != nil {
			return fmt.Errorf("track: %v", err)
		}
	}
	return nil
}

// Scores returns the score of each game tracked
func (s *Scores) Scores() []float64 {
	return append([]float64(nil), s.scores...)
}

// MeanScores returns the mean score after each game tracked
func (s *Scores) MeanScores() []float64 {
	return append([]float64(nil), s.meanScores...)
}
