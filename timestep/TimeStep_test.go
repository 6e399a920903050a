package timestep

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewTransitionCopies(t *testing.T) {
	state := mat.NewVecDense(3, []float64{1, 0, 1})
	action := mat.NewVecDense(3, []float64{0, 1, 0})
	next := mat.NewVecDense(3, []float64{0, 0, 1})

	tr := NewTransition(state, action, 10, next, true)

	state.SetVec(0, 5)
	action.SetVec(0, 1)
	next.SetVec(2, 7)

	if tr.State.AtVec(0) != 1 {
		t.Errorf("newtransition: state aliased \n\twant(1) \n\thave(%v)",
			tr.State.AtVec(0))
	}
	if tr.Action.AtVec(0) != 0 {
		t.Errorf("newtransition: action aliased \n\twant(0) \n\thave(%v)",
			tr.Action.AtVec(0))
	}
	if tr.NextState.AtVec(2) != 1 {
		t.Errorf("newtransition: next state aliased \n\twant(1) \n\thave(%v)",
			tr.NextState.AtVec(2))
	}
	if tr.ActionIndex() != 1 {
		t.Errorf("actionindex: \n\twant(1) \n\thave(%v)", tr.ActionIndex())
	}
}

func TestBatchAccessors(t *testing.T) {
	b := Batch{
		NewTransition(
			mat.NewVecDense(2, []float64{1, 2}),
			mat.NewVecDense(3, []float64{1, 0, 0}),
			-10,
			mat.NewVecDense(2, []float64{3, 4}),
			true,
		),
		NewTransition(
			mat.NewVecDense(2, []float64{5, 6}),
			mat.NewVecDense(3, []float64{0, 0, 1}),
			0,
			mat.NewVecDense(2, []float64{7, 8}),
			false,
		),
	}

	if b.Len() != 2 {
		t.Fatalf("len: \n\twant(2) \n\thave(%v)", b.Len())
	}

	floatTests := []struct {
		name string
		have []float64
		want []float64
	}{
		{"states", b.States(), []float64{1, 2, 5, 6}},
		{"next states", b.NextStates(), []float64{3, 4, 7, 8}},
		{"actions", b.Actions(), []float64{1, 0, 0, 0, 0, 1}},
		{"rewards", b.Rewards(), []float64{-10, 0}},
	}
	for _, test := range floatTests {
		if len(test.have) != len(test.want) {
			t.Errorf("%v: length \n\twant(%v) \n\thave(%v)", test.name,
				len(test.want), len(test.have))
			continue
		}
		for i := range test.want {
			if test.have[i] != test.want[i] {
				t.Errorf("%v: \n\twant(%v) \n\thave(%v)", test.name,
					test.want, test.have)
				break
			}
		}
	}

	dones := b.Dones()
	if !dones[0] || dones[1] {
		t.Errorf("dones: \n\twant([true false]) \n\thave(%v)", dones)
	}
}

func TestEmptyBatch(t *testing.T) {
	var b Batch
	if b.States() != nil || b.Actions() != nil || b.NextStates() != nil {
		t.Errorf("empty batch should have no states, actions, or next states")
	}
	if len(b.Rewards()) != 0 || len(b.Dones()) != 0 {
		t.Errorf("empty batch should have no rewards or dones")
	}
}
