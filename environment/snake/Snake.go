// Package snake implements the snake grid game environment
package snake

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/snakeq/environment"
)

const (
	// FoodReward is the reward for eating the food
	FoodReward float64 = 10.0

	// DeathReward is the reward for colliding with a wall or the body
	DeathReward float64 = -10.0

	// FrameLimit bounds the length of an episode to FrameLimit times
	// the length of the snake
	FrameLimit int = 100

	// DefaultCols and DefaultRows give a 640x480 board at a block
	// size of 20
	DefaultCols int = 32
	DefaultRows int = 24
)

// Game implements the snake game. The snake starts in the centre of the
// board heading right with a body of three cells. Each step the snake
// moves one cell; eating the food grows the snake by one cell and
// increments the score. The episode ends when the head hits a wall or
// the body, or when the episode runs for too many frames.
type Game struct {
	cols, rows int

	snake   []env.Point // Head at index 0
	heading env.Direction
	food    env.Point
	score   int
	frame   int

	rng *rand.Rand
}

// New creates and returns a new Game with the given number of columns
// and rows. The seed determines food placement.
func New(cols, rows int, seed uint64) (*Game, error) {
	if cols < 4 || rows < 1 {
		return nil, fmt.Errorf("new: board of %vx%v is too small to start "+
			"the snake", cols, rows)
	}

	g := &Game{
		cols: cols,
		rows: rows,
		rng:  rand.New(rand.NewSource(seed)),
	}
	g.Reset()
	return g, nil
}

// Dims returns the columns and rows of the board
func (g *Game) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// Reset starts a new episode
func (g *Game) Reset() {
	g.heading = env.Right

	head := env.Point{X: g.cols / 2, Y: g.rows / 2}
	g.snake = []env.Point{head, head.Add(-1, 0), head.Add(-2, 0)}

	g.score = 0
	g.frame = 0
	g.placeFood()
}

// PlayStep moves the snake one cell using the relative action encoded
// in the one-hot action vector
func (g *Game) PlayStep(action mat.Vector) (float64, bool, int, error) {
	turn, err := env.ActionIndex(action)
	if err != nil {
		return 0, false, g.score, fmt.Errorf("playstep: %v", err)
	}
	g.frame++

	g.heading = g.heading.Turn(turn)
	head := g.heading.Step(g.snake[0])
	g.snake = append([]env.Point{head}, g.snake...)

	if g.IsCollision(head) || g.frame > FrameLimit*len(g.snake) {
		return DeathReward, true, g.score, nil
	}

	reward := 0.0
	if head == g.food {
		g.score++
		reward = FoodReward
		g.placeFood()
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	return reward, false, g.score, nil
}

// IsCollision returns whether p is outside the board or on the body of
// the snake (excluding the head)
func (g *Game) IsCollision(p env.Point) bool {
	if p.X < 0 || p.X >= g.cols || p.Y < 0 || p.Y >= g.rows {
		return true
	}
	for _, body := range g.snake[1:] {
		if body == p {
			return true
		}
	}
	return false
}

// Head returns the position of the head of the snake
func (g *Game) Head() env.Point {
	return g.snake[0]
}

// Heading returns the current direction of the snake
func (g *Game) Heading() env.Direction {
	return g.heading
}

// Food returns the position of the food
func (g *Game) Food() env.Point {
	return g.food
}

// Score returns the score of the current episode
func (g *Game) Score() int {
	return g.score
}

// Body returns a copy of the cells occupied by the snake, head first
func (g *Game) Body() []env.Point {
	body := make([]env.Point, len(g.snake))
	copy(body, g.snake)
	return body
}

func (g *Game) String() string {
	str := "Snake | Head: %v  |  Heading: %v  |  Food: %v  |  Score: %d"
	return fmt.Sprintf(str, g.Head(), g.heading, g.food, g.score)
}

// placeFood places the food uniformly randomly on a cell not occupied
// by the snake. If the board is full the food is left where it is.
func (g *Game) placeFood() {
	occupied := make(map[env.Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}

	free := make([]env.Point, 0, g.cols*g.rows-len(g.snake))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if p := (env.Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) > 0 {
		g.food = free[g.rng.Intn(len(free))]
	}
}
