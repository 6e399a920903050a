// Package plot draws the score of each game and the running mean score
// of a training run, either as a PNG image or as an HTML line chart.
package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/snakeq/utils/floatutils"
)

// Labels of the plot
const (
	Title  = "Training..."
	XLabel = "Number of Games"
	YLabel = "Score"
)

// Size of the PNG plot in pixels
const (
	width  = 640
	height = 480
	margin = 48
)

// Series names
const (
	ScoreSeries = "Score"
	MeanSeries  = "Mean Score"
)

// PNG draws scores and means as two lines and saves the image to
// filename. The last value of each line is written next to its end.
func PNG(filename string, scores, means []float64) error {
	if len(scores) != len(means) {
		return fmt.Errorf("png: series have different lengths \n\twant(%v) "+
			"\n\thave(%v)", len(scores), len(means))
	}
	if err := mkdir(filename); err != nil {
		return fmt.Errorf("png: %v", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Axes
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, height-margin)
	dc.DrawLine(margin, height-margin, width-margin, height-margin)
	dc.Stroke()
	dc.DrawStringAnchored(Title, width/2, margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(XLabel, width/2, height-margin/2, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, margin/3, height/2)
	dc.DrawStringAnchored(YLabel, margin/3, height/2, 0.5, 0.5)
	dc.Pop()

	if len(scores) == 0 {
		return save(dc, filename)
	}

	// The y axis always starts at 0
	yMax := math.Max(floats.Max(scores), floats.Max(means))
	if yMax <= 0 {
		yMax = 1
	}
	xMax := float64(len(scores) - 1)
	if xMax == 0 {
		xMax = 1
	}
	dc.DrawStringAnchored(fmt.Sprint(yMax), margin-4, margin, 1, 0.5)
	dc.DrawStringAnchored("0", margin-4, height-margin, 1, 0.5)

	x := func(i int) float64 {
		return margin + float64(i)/xMax*(width-2*margin)
	}
	y := func(v float64) float64 {
		v = floatutils.Clip(v, 0, yMax)
		return height - margin - v/yMax*(height-2*margin)
	}

	for _, series := range []struct {
		values  []float64
		r, g, b float64
	}{
		{scores, 0.12, 0.47, 0.71},
		{means, 1.0, 0.5, 0.05},
	} {
		dc.SetRGB(series.r, series.g, series.b)
		dc.SetLineWidth(2)
		dc.MoveTo(x(0), y(series.values[0]))
		for i, v := range series.values[1:] {
			dc.LineTo(x(i+1), y(v))
		}
		dc.Stroke()

		last := len(series.values) - 1
		dc.DrawString(fmt.Sprint(series.values[last]), x(last)+2,
			y(series.values[last]))
	}

	return save(dc, filename)
}

// HTML renders scores and means as an interactive line chart and saves
// the page to filename
func HTML(filename string, scores, means []float64) error {
	if len(scores) != len(means) {
		return fmt.Errorf("html: series have different lengths \n\twant(%v) "+
			"\n\thave(%v)", len(scores), len(means))
	}
	if err := mkdir(filename); err != nil {
		return fmt.Errorf("html: %v", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("html: could not create file: %v", err)
	}
	defer file.Close()

	if err := Chart(file, scores, means); err != nil {
		return fmt.Errorf("html: %v", err)
	}
	return nil
}

// Chart renders scores and means as an HTML line chart to w
func Chart(w io.Writer, scores, means []float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: YLabel}),
	)

	games := make([]string, len(scores))
	for i := range games {
		games[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(games).
		AddSeries(ScoreSeries, lineData(scores)).
		AddSeries(MeanSeries, lineData(means))

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

func mkdir(filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory: %v", err)
		}
	}
	return nil
}

func save(dc *gg.Context, filename string) error {
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("png: could not save plot: %v", err)
	}
	return nil
}
