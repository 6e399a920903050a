package snake

import (
	"fmt"

	"github.com/fogleman/gg"
)

// BlockSize is the number of pixels per cell when rendering
const BlockSize = 20

// Render draws the current board and saves it as a PNG image
func (g *Game) Render(filename string) error {
	dc := gg.NewContext(g.cols*BlockSize, g.rows*BlockSize)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	// Body, with the head drawn lighter than the rest
	for i, p := range g.snake {
		if i == 0 {
			dc.SetRGB(0.4, 0.6, 1.0)
		} else {
			dc.SetRGB(0.0, 0.0, 1.0)
		}
		dc.DrawRectangle(float64(p.X*BlockSize), float64(p.Y*BlockSize),
			BlockSize, BlockSize)
		dc.Fill()
	}

	// Food
	dc.SetRGB(0.8, 0.0, 0.0)
	dc.DrawRectangle(float64(g.food.X*BlockSize), float64(g.food.Y*BlockSize),
		BlockSize, BlockSize)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawString(fmt.Sprintf("Score: %d", g.score), 4, 14)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save frame: %v", err)
	}
	return nil
}
