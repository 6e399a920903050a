package timestep

// Batch is an ordered sequence of Transitions submitted together for a
// single update.
//
// Learners usually need the batch grouped by field rather than by
// transition. The accessors below return each field across the batch
// in row major order so that they can be used directly as tensor
// backings.
type Batch []Transition

// Len returns the number of transitions in the batch
func (b Batch) Len() int {
	return len(b)
}

// States returns all states in the batch, flattened in row major order
func (b Batch) States() []float64 {
	if len(b) == 0 {
		return nil
	}
	size := b[0].State.Len()
	out := make([]float64, 0, len(b)*size)
	for _, t := range b {
		out = append(out, t.State.RawVector().Data...)
	}
	return out
}

// NextStates returns all next states in the batch, flattened in row
// major order
func (b Batch) NextStates() []float64 {
	if len(b) == 0 {
		return nil
	}
	size := b[0].NextState.Len()
	out := make([]float64, 0, len(b)*size)
	for _, t := range b {
		out = append(out, t.NextState.RawVector().Data...)
	}
	return out
}

// Actions returns all one-hot actions in the batch, flattened in row
// major order
func (b Batch) Actions() []float64 {
	if len(b) == 0 {
		return nil
	}
	size := b[0].Action.Len()
	out := make([]float64, 0, len(b)*size)
	for _, t := range b {
		out = append(out, t.Action.RawVector().Data...)
	}
	return out
}

// Rewards returns the reward of each transition in the batch
func (b Batch) Rewards() []float64 {
	out := make([]float64, len(b))
	for i, t := range b {
		out[i] = t.Reward
	}
	return out
}

// Dones returns the terminal flag of each transition in the batch
func (b Batch) Dones() []bool {
	out := make([]bool, len(b))
	for i, t := range b {
		out[i] = t.Done
	}
	return out
}
