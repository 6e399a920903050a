package agent

import (
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/snakeq/environment"
	"github.com/samuelfneumann/snakeq/expreplay"
	"github.com/samuelfneumann/snakeq/featurizer"
	"github.com/samuelfneumann/snakeq/timestep"
)

// recorder is a Model which records the size of each update batch
type recorder struct {
	updates []int
	saves   int
}

func (r *recorder) Predict(mat.Vector) ([]float64, error) {
	return []float64{0, 1, 0}, nil
}

func (r *recorder) Update(b timestep.Batch) error {
	r.updates = append(r.updates, b.Len())
	return nil
}

func (r *recorder) Save() error {
	r.saves++
	return nil
}

func newAgent(t *testing.T, capacity, batchSize int) (*Agent, *recorder) {
	replay, err := expreplay.New(capacity, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	model := &recorder{}
	a, err := New(model, replay, rand.New(rand.NewSource(1)), batchSize, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	return a, model
}

func transition(reward float64) timestep.Transition {
	state := mat.NewVecDense(featurizer.Features, nil)
	return timestep.NewTransition(state, env.OneHot(env.Straight), reward,
		state, false)
}

func TestTrainLongMemoryBatchSize(t *testing.T) {
	const batchSize = 5
	a, model := newAgent(t, 100, batchSize)

	for n := 1; n <= 12; n++ {
		a.Remember(transition(float64(n)))
		if err := a.TrainLongMemory(); err != nil {
			t.Fatal(err)
		}

		want := n
		if n > batchSize {
			want = batchSize
		}
		have := model.updates[len(model.updates)-1]
		if have != want {
			t.Errorf("buffer length %v: batch size \n\twant(%v) \n\thave(%v)",
				n, want, have)
		}
	}
}

func TestTrainShortMemory(t *testing.T) {
	a, model := newAgent(t, 10, 5)

	if err := a.TrainShortMemory(transition(10)); err != nil {
		t.Fatal(err)
	}
	if len(model.updates) != 1 || model.updates[0] != 1 {
		t.Errorf("trainshortmemory: updates \n\twant([1]) \n\thave(%v)",
			model.updates)
	}
	if a.Memory() != 0 {
		t.Errorf("trainshortmemory: should not remember transitions")
	}
}

func TestRememberBounded(t *testing.T) {
	a, _ := newAgent(t, 4, 2)
	for i := 0; i < 10; i++ {
		a.Remember(transition(0))
	}
	if a.Memory() != 4 {
		t.Errorf("remember: memory \n\twant(4) \n\thave(%v)", a.Memory())
	}
}

func TestSelectActionEpsilon(t *testing.T) {
	a, _ := newAgent(t, 4, 2)
	state := mat.NewVecDense(featurizer.Features, nil)

	for _, games := range []int{0, 10, 80, 100} {
		a.NGames = games
		action, err := a.SelectAction(state)
		if err != nil {
			t.Fatal(err)
		}
		if a.Epsilon != 80-games {
			t.Errorf("ngames %v: epsilon \n\twant(%v) \n\thave(%v)", games,
				80-games, a.Epsilon)
		}
		if _, err := env.ActionIndex(action); err != nil {
			t.Errorf("ngames %v: %v", games, err)
		}
	}

	// Past the exploration window the greedy action is always taken
	a.NGames = 100
	for i := 0; i < 50; i++ {
		action, _ := a.SelectAction(state)
		if index, _ := env.ActionIndex(action); index != env.TurnRight {
			t.Fatalf("selectaction: \n\twant(%v) \n\thave(%v)", env.TurnRight,
				index)
		}
	}
}

func TestNewInvalid(t *testing.T) {
	replay, _ := expreplay.New(4, rand.NewSource(1))
	rng := rand.New(rand.NewSource(1))

	if _, err := New(&recorder{}, replay, rng, 0, 0.9); err == nil {
		t.Errorf("new: expected error with zero batch size")
	}
	if _, err := New(&recorder{}, nil, rng, 5, 0.9); err == nil {
		t.Errorf("new: expected error with nil replay buffer")
	}
}
