// Package deepq implements an action value function approximated by a
// neural network and learned with the Q-learning update. Action values
// of the next state are computed with the current weights, no target
// network is used.
package deepq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/snakeq/experiment/checkpointer"
	"github.com/samuelfneumann/snakeq/network"
	ts "github.com/samuelfneumann/snakeq/timestep"
)

// QNet is a neural network action value function. Given a feature
// vector, QNet predicts one value per action.
//
// QNet keeps a single network whose weights are the weights of the
// model. This network has a batch size of 1 and is used for
// predictions. Updates are performed by trainers, each of which holds
// a copy of the network with a fixed batch size and the graph
// computing the mean squared TD error. Before an update, a trainer
// copies the weights of the prediction network, and after the update
// the learned weights are copied back.
type QNet struct {
	net network.NeuralNet
	vm  G.VM

	solver G.Solver
	gamma  float64

	// trainers are sorted by increasing batch size
	trainers []*trainer

	filename string
}

// trainer computes and applies the gradient of the mean squared TD
// error for batches of at most batchSize transitions
type trainer struct {
	batchSize int

	// trainNet predicts Q(s, a) and is the network whose gradient is
	// computed
	trainNet network.NeuralNet
	trainVM  G.VM

	// nextNet predicts Q(s', a') for the update target
	nextNet network.NeuralNet
	nextVM  G.VM

	// Input nodes to the graph of trainNet. Padding rows of a batch
	// have zero weight, so they do not contribute to the loss.
	selectedActions       *G.Node
	nextStateActionValues *G.Node
	rewards               *G.Node
	discounts             *G.Node
	weights               *G.Node
}

// New creates and returns a new QNet
func New(config Config) (*QNet, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := G.NewGraph()
	net, err := network.NewMLP(
		config.Features,
		1, // Predictions are made for a single feature vector
		config.Actions,
		g,
		config.HiddenSizes,
		config.InitWFn.InitWFn(),
		config.Activations,
	)
	if err != nil {
		return nil, fmt.Errorf("new: could not create network: %v", err)
	}

	q := &QNet{
		net:      net,
		vm:       G.NewTapeMachine(g),
		solver:   config.Solver.Solver,
		gamma:    config.Gamma,
		filename: config.Filename,
	}

	// Single transitions are trained on far more often than batches,
	// so they get a trainer of their own
	sizes := []int{1}
	if config.BatchSize > 1 {
		sizes = append(sizes, config.BatchSize)
	}
	for _, size := range sizes {
		tr, err := newTrainer(net, size)
		if err != nil {
			q.Close()
			return nil, fmt.Errorf("new: %v", err)
		}
		q.trainers = append(q.trainers, tr)
	}

	return q, nil
}

// newTrainer returns a new trainer for batches of at most batchSize
// transitions for the network net
func newTrainer(net network.NeuralNet, batchSize int) (*trainer, error) {
	trainNet, err := net.CloneWithBatch(batchSize)
	if err != nil {
		return nil, fmt.Errorf("could not create training network: %v", err)
	}

	nextNet, err := net.CloneWithBatch(batchSize)
	if err != nil {
		return nil, fmt.Errorf("could not create next state network: %v",
			err)
	}

	g := trainNet.Graph()
	numActions := net.Outputs()

	// Create nodes to compute the update target: r + γ * max[Q(s', a')]
	nextStateActionValues := G.NewMatrix(g, tensor.Float64,
		G.WithShape(batchSize, numActions), G.WithName("nextActionVals"),
		G.WithInit(G.Zeroes()))
	rewards := G.NewVector(g, tensor.Float64, G.WithShape(batchSize),
		G.WithName("reward"), G.WithInit(G.Zeroes()))
	discounts := G.NewVector(g, tensor.Float64, G.WithShape(batchSize),
		G.WithName("discount"), G.WithInit(G.Zeroes()))

	updateTarget := G.Must(G.Max(nextStateActionValues, 1))
	updateTarget = G.Must(G.HadamardProd(updateTarget, discounts))
	updateTarget = G.Must(G.Add(updateTarget, rewards))

	// Action selected in the previous state. This is needed to compute
	// the loss using the correct action value since the network outputs N
	// action values, one for each environmental action
	selectedActions := G.NewMatrix(g, tensor.Float64,
		G.WithShape(batchSize, numActions), G.WithName("actionSelected"),
		G.WithInit(G.Zeroes()))
	selectedActionsValue := G.Must(G.HadamardProd(trainNet.Prediction(),
		selectedActions))
	selectedActionsValue = G.Must(G.Sum(selectedActionsValue, 1))

	// Compute the mean squared TD error over the rows that hold
	// transitions, each of which has weight 1/n
	weights := G.NewVector(g, tensor.Float64, G.WithShape(batchSize),
		G.WithName("weight"), G.WithInit(G.Zeroes()))
	losses := G.Must(G.Sub(updateTarget, selectedActionsValue))
	losses = G.Must(G.Square(losses))
	losses = G.Must(G.HadamardProd(losses, weights))
	cost := G.Must(G.Sum(losses))

	if _, err := G.Grad(cost, trainNet.Learnables()...); err != nil {
		return nil, fmt.Errorf("could not compute gradient: %v", err)
	}

	return &trainer{
		batchSize: batchSize,
		trainNet:  trainNet,
		trainVM: G.NewTapeMachine(g,
			G.BindDualValues(trainNet.Learnables()...)),
		nextNet:               nextNet,
		nextVM:                G.NewTapeMachine(nextNet.Graph()),
		selectedActions:       selectedActions,
		nextStateActionValues: nextStateActionValues,
		rewards:               rewards,
		discounts:             discounts,
		weights:               weights,
	}, nil
}

// Predict returns the predicted value of each action given the feature
// vector features
func (q *QNet) Predict(features mat.Vector) ([]float64, error) {
	if features.Len() != q.net.Features() {
		return nil, fmt.Errorf("predict: invalid number of features"+
			"\n\twant(%v)\n\thave(%v)", q.net.Features(), features.Len())
	}

	obs := make([]float64, features.Len())
	for i := range obs {
		obs[i] = features.AtVec(i)
	}
	if err := q.net.SetInput(obs); err != nil {
		return nil, fmt.Errorf("predict: could not set input: %v", err)
	}

	defer q.vm.Reset()
	if err := q.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: could not run network: %v", err)
	}

	values, ok := q.net.Output().Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("predict: network output is not float64")
	}
	return append([]float64(nil), values...), nil
}

// Update performs a single gradient step on the mean squared TD error
// of batch. For a transition (s, a, r, s'), the update target is
// r + γ max[Q(s', a')] if s' is not terminal and r otherwise, and Q(s', a')
// is computed with the current weights.
func (q *QNet) Update(batch ts.Batch) error {
	n := batch.Len()
	if n == 0 {
		return fmt.Errorf("update: cannot update on an empty batch")
	}

	features, actions := q.net.Features(), q.net.Outputs()
	for i, t := range batch {
		if t.State.Len() != features || t.NextState.Len() != features {
			return fmt.Errorf("update: transition %v has an invalid number "+
				"of features\n\twant(%v)\n\thave(%v, %v)", i, features,
				t.State.Len(), t.NextState.Len())
		}
		if t.Action.Len() != actions {
			return fmt.Errorf("update: transition %v has an invalid action "+
				"length\n\twant(%v)\n\thave(%v)", i, actions, t.Action.Len())
		}
	}

	tr := q.trainerFor(n)
	if tr == nil {
		largest := q.trainers[len(q.trainers)-1].batchSize
		return fmt.Errorf("update: batch too large\n\twant(<=%v)\n\thave(%v)",
			largest, n)
	}
	size := tr.batchSize

	discounts := make([]float64, size)
	weights := make([]float64, size)
	for i, done := range batch.Dones() {
		if !done {
			discounts[i] = q.gamma
		}
		weights[i] = 1.0 / float64(n)
	}

	// Start from the current weights
	if err := tr.trainNet.Set(q.net); err != nil {
		return fmt.Errorf("update: could not set training weights: %v", err)
	}
	if err := tr.nextNet.Set(q.net); err != nil {
		return fmt.Errorf("update: could not set next state weights: %v",
			err)
	}

	// Compute the next state-action values
	if err := tr.nextNet.SetInput(pad(batch.NextStates(),
		size*features)); err != nil {
		return fmt.Errorf("update: could not set next states: %v", err)
	}
	if err := tr.nextVM.RunAll(); err != nil {
		tr.nextVM.Reset()
		return fmt.Errorf("update: could not predict next state-action "+
			"values: %v", err)
	}
	nextValues := tr.nextNet.Output().(tensor.Tensor).Clone().(tensor.Tensor)
	tr.nextVM.Reset()

	if err := G.Let(tr.nextStateActionValues, nextValues); err != nil {
		return fmt.Errorf("update: could not set next state-action "+
			"values: %v", err)
	}

	inputs := []struct {
		node  *G.Node
		value []float64
	}{
		{tr.selectedActions, pad(batch.Actions(), size*actions)},
		{tr.rewards, pad(batch.Rewards(), size)},
		{tr.discounts, discounts},
		{tr.weights, weights},
	}
	for _, in := range inputs {
		value := tensor.New(
			tensor.WithBacking(in.value),
			tensor.WithShape(in.node.Shape()...),
		)
		if err := G.Let(in.node, value); err != nil {
			return fmt.Errorf("update: could not set %v: %v", in.node.Name(),
				err)
		}
	}

	if err := tr.trainNet.SetInput(pad(batch.States(),
		size*features)); err != nil {
		return fmt.Errorf("update: could not set states: %v", err)
	}

	// Run the learning step
	if err := tr.trainVM.RunAll(); err != nil {
		tr.trainVM.Reset()
		return fmt.Errorf("update: could not compute gradient: %v", err)
	}
	if err := q.solver.Step(tr.trainNet.Model()); err != nil {
		tr.trainVM.Reset()
		return fmt.Errorf("update: could not step solver: %v", err)
	}
	tr.trainVM.Reset()

	if err := q.net.Set(tr.trainNet); err != nil {
		return fmt.Errorf("update: could not copy learned weights: %v", err)
	}
	return nil
}

// trainerFor returns the smallest trainer that can train on a batch of
// n transitions, or nil if there is none
func (q *QNet) trainerFor(n int) *trainer {
	for _, tr := range q.trainers {
		if tr.batchSize >= n {
			return tr
		}
	}
	return nil
}

// Save saves the weights of the QNet to its file
func (q *QNet) Save() error {
	serializableNet, ok := q.net.(checkpointer.Serializable)
	if !ok {
		return fmt.Errorf("save: neural network not serializable")
	}

	if err := checkpointer.Save(q.filename, serializableNet); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Load sets the weights of the QNet to those saved in filename. The
// saved network must have the same architecture as the QNet.
func (q *QNet) Load(filename string) error {
	// Decode into a fresh network so that the QNet's weights are
	// untouched if decoding fails
	fresh, err := q.net.Clone()
	if err != nil {
		return fmt.Errorf("load: %v", err)
	}
	serializableNet, ok := fresh.(checkpointer.Serializable)
	if !ok {
		return fmt.Errorf("load: neural network not serializable")
	}
	if err := checkpointer.Load(filename, serializableNet); err != nil {
		return fmt.Errorf("load: %v", err)
	}

	if err := q.net.Set(fresh); err != nil {
		return fmt.Errorf("load: incompatible network: %v", err)
	}
	return nil
}

// Filename returns the file the QNet is saved to
func (q *QNet) Filename() string {
	return q.filename
}

// Close closes all VMs of the QNet
func (q *QNet) Close() error {
	var firstErr error
	closeVM := func(vm G.VM) {
		if vm == nil {
			return
		}
		if err := vm.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeVM(q.vm)
	for _, tr := range q.trainers {
		closeVM(tr.trainVM)
		closeVM(tr.nextVM)
	}
	return firstErr
}

// pad returns a copy of data extended with zeroes to length size
func pad(data []float64, size int) []float64 {
	out := make([]float64, size)
	copy(out, data)
	return out
}
