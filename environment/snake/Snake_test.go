package snake

import (
	"path/filepath"
	"testing"

	env "github.com/samuelfneumann/snakeq/environment"
	"gonum.org/v1/gonum/mat"
)

func TestReset(t *testing.T) {
	g, err := New(DefaultCols, DefaultRows, 1)
	if err != nil {
		t.Fatal(err)
	}

	if head := g.Head(); head != (env.Point{X: 16, Y: 12}) {
		t.Errorf("reset: head should start in the centre, have %v", head)
	}
	if g.Heading() != env.Right {
		t.Errorf("reset: heading should be right, have %v", g.Heading())
	}
	if len(g.Body()) != 3 {
		t.Errorf("reset: body length \n\twant(3) \n\thave(%v)", len(g.Body()))
	}
	for _, p := range g.Body() {
		if p == g.Food() {
			t.Errorf("reset: food placed on the snake at %v", p)
		}
	}
}

func TestPlayStepMoves(t *testing.T) {
	tests := []struct {
		action  int
		heading env.Direction
		head    env.Point
	}{
		{env.Straight, env.Right, env.Point{X: 17, Y: 12}},
		{env.TurnRight, env.Down, env.Point{X: 16, Y: 13}},
		{env.TurnLeft, env.Up, env.Point{X: 16, Y: 11}},
	}

	for _, test := range tests {
		g, _ := New(DefaultCols, DefaultRows, 1)
		g.food = env.Point{X: 0, Y: 0}

		reward, done, score, err := g.PlayStep(env.OneHot(test.action))
		if err != nil {
			t.Fatal(err)
		}
		if done || reward != 0 || score != 0 {
			t.Errorf("action %v: unexpected (%v, %v, %v)", test.action,
				reward, done, score)
		}
		if g.Heading() != test.heading {
			t.Errorf("action %v: heading \n\twant(%v) \n\thave(%v)",
				test.action, test.heading, g.Heading())
		}
		if g.Head() != test.head {
			t.Errorf("action %v: head \n\twant(%v) \n\thave(%v)",
				test.action, test.head, g.Head())
		}
		if len(g.Body()) != 3 {
			t.Errorf("action %v: snake should not grow", test.action)
		}
	}
}

func TestPlayStepEatsFood(t *testing.T) {
	g, _ := New(DefaultCols, DefaultRows, 1)
	g.food = g.Head().Add(1, 0)

	reward, done, score, err := g.PlayStep(env.OneHot(env.Straight))
	if err != nil {
		t.Fatal(err)
	}
	if reward != FoodReward || done || score != 1 {
		t.Errorf("eat: want (%v, false, 1) have (%v, %v, %v)", FoodReward,
			reward, done, score)
	}
	if len(g.Body()) != 4 {
		t.Errorf("eat: body length \n\twant(4) \n\thave(%v)", len(g.Body()))
	}
	if g.Food() == g.Head() {
		t.Error("eat: food should be placed again")
	}
}

func TestPlayStepWallCollision(t *testing.T) {
	g, _ := New(6, 1, 1)
	g.food = env.Point{X: 0, Y: 0}

	var (
		reward float64
		done   bool
		err    error
	)
	for i := 0; i < 3 && !done; i++ {
		reward, done, _, err = g.PlayStep(env.OneHot(env.Straight))
		if err != nil {
			t.Fatal(err)
		}
	}

	if !done || reward != DeathReward {
		t.Errorf("wall: want (%v, true) have (%v, %v)", DeathReward, reward,
			done)
	}
}

func TestPlayStepFrameLimit(t *testing.T) {
	g, _ := New(DefaultCols, DefaultRows, 1)
	g.food = env.Point{X: 0, Y: 0}

	// Circle in place on a 2x2 loop until the frame limit ends the
	// episode
	turns := 0
	for {
		_, done, _, err := g.PlayStep(env.OneHot(env.TurnRight))
		if err != nil {
			t.Fatal(err)
		}
		turns++
		if done {
			break
		}
		if turns > FrameLimit*4 {
			t.Fatal("framelimit: episode did not end")
		}
	}

	if want := FrameLimit*4 + 1; turns != want {
		t.Errorf("framelimit: episode length \n\twant(%v) \n\thave(%v)",
			want, turns)
	}
}

func TestPlayStepInvalidAction(t *testing.T) {
	g, _ := New(DefaultCols, DefaultRows, 1)

	actions := []*mat.VecDense{
		mat.NewVecDense(3, []float64{1, 1, 0}),
		mat.NewVecDense(3, []float64{0, 0, 0}),
		mat.NewVecDense(2, []float64{1, 0}),
		mat.NewVecDense(3, []float64{0.5, 0, 0}),
	}
	for _, a := range actions {
		if _, _, _, err := g.PlayStep(a); err == nil {
			t.Errorf("playstep: expected error for action %v",
				mat.Formatted(a.T()))
		}
	}
}

func TestRender(t *testing.T) {
	g, _ := New(DefaultCols, DefaultRows, 1)
	if err := g.Render(filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Error(err)
	}
}
