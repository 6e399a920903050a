package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// mlp implements a multi-layered perceptron which predicts a vector of
// values, for example one value per action.
type mlp struct {
	g          *G.ExprGraph
	layers     []*fcLayer
	input      *G.Node
	numOutputs int
	numInputs  int
	batchSize  int

	// Data needed for gobbing
	hiddenSizes []int
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	prediction *G.Node
	predVal    G.Value
}

// NewMLP creates and returns a new multi-layered perceptron with
// outputs output nodes. The graph parameter g is populated with the
// MLP, which takes inputs of shape (batch, features).
//
// The MLP has len(hiddenSizes) + 1 layers, each with a bias unit. For
// index i, hiddenSizes[i] is the number of nodes in hidden layer i and
// activations[i] is the activation function of hidden layer i. A final
// linear layer is always added so that the network produces outputs
// predictions per input. The parameter init determines the weight
// initialization scheme.
func NewMLP(features, batch, outputs int, g *G.ExprGraph,
	hiddenSizes []int, init G.InitWFn,
	activations []*Activation) (NeuralNet, error) {
	// Ensure we have one activation per layer
	if len(hiddenSizes) != len(activations) {
		msg := "newmlp: invalid number of activations" +
			"\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}

	if features < 1 || outputs < 1 || batch < 1 {
		msg := "newmlp: features, outputs, and batch must be positive" +
			"\n\thave(features=%v, outputs=%v, batch=%v)"
		return nil, fmt.Errorf(msg, features, outputs, batch)
	}

	for i, size := range hiddenSizes {
		if size < 1 {
			return nil, fmt.Errorf("newmlp: hidden layer %v must have at "+
				"least one node\n\thave(%v)", i, size)
		}
	}

	network := &mlp{}
	if err := network.build(features, batch, outputs, g, hiddenSizes, init,
		activations); err != nil {
		return nil, fmt.Errorf("newmlp: %v", err)
	}

	return network, nil
}

// build adds the layers and forward pass of a new mlp to the graph g
// and stores them in e
func (e *mlp) build(features, batch, outputs int, g *G.ExprGraph,
	hiddenSizes []int, init G.InitWFn, activations []*Activation) error {
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	// Copy the layer descriptions so that the caller's slices are never
	// appended to
	sizes := append(append([]int{}, hiddenSizes...), outputs)
	acts := append(append([]*Activation{}, activations...), Identity())

	layers := make([]*fcLayer, len(sizes))
	in := features
	for i := range sizes {
		layers[i] = newfcLayer(g, in, sizes[i], i, init, acts[i])
		in = sizes[i]
	}

	*e = mlp{
		g:           g,
		layers:      layers,
		input:       input,
		numOutputs:  outputs,
		numInputs:   features,
		batchSize:   batch,
		hiddenSizes: append([]int{}, hiddenSizes...),
		activations: append([]*Activation{}, activations...),
	}
	if _, err := e.fwd(input); err != nil {
		return fmt.Errorf("could not compute forward pass: %v", err)
	}
	return nil
}

// Graph returns the computational graph of the mlp.
func (e *mlp) Graph() *G.ExprGraph {
	return e.g
}

// Clone clones an mlp
func (e *mlp) Clone() (NeuralNet, error) {
	return e.CloneWithBatch(e.batchSize)
}

// CloneWithBatch clones an mlp to a new computational graph with a new
// input batch size. The clone starts with the same weights as e, but
// the weights of the two networks are independent afterwards.
func (e *mlp) CloneWithBatch(batchSize int) (NeuralNet, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("clonewithbatch: batch size must be "+
			"positive\n\thave(%v)", batchSize)
	}

	graph := G.NewGraph()
	input := G.NewMatrix(
		graph,
		tensor.Float64,
		G.WithShape(batchSize, e.numInputs),
		G.WithName("input"),
		G.WithInit(G.Zeroes()),
	)

	layers := make([]*fcLayer, len(e.layers))
	for i := range e.layers {
		layers[i] = e.layers[i].CloneTo(graph)
	}

	network := mlp{
		g:           graph,
		layers:      layers,
		input:       input,
		numOutputs:  e.numOutputs,
		numInputs:   e.numInputs,
		batchSize:   batchSize,
		hiddenSizes: e.hiddenSizes,
		activations: e.activations,
	}
	if _, err := network.fwd(input); err != nil {
		return nil, fmt.Errorf("clonewithbatch: could not clone: %v", err)
	}

	return &network, nil
}

// BatchSize returns the batch size of inputs to the network
func (e *mlp) BatchSize() int {
	return e.batchSize
}

// Features returns the number of features in a single input
func (e *mlp) Features() int {
	return e.numInputs
}

// Outputs returns the number of outputs per input
func (e *mlp) Outputs() int {
	return e.numOutputs
}

// SetInput sets the value of the input node before running the forward
// pass. Inputs should be given in row major order. SetInput panics if
// the number of inputs does not match the shape of the input node.
func (e *mlp) SetInput(input []float64) error {
	if len(input) != e.numInputs*e.batchSize {
		msg := fmt.Sprintf("invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", e.numInputs*e.batchSize, len(input))
		panic(msg)
	}
	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(e.input.Shape()...),
	)
	return G.Let(e.input, inputTensor)
}

// Set sets the weights of an mlp to be equal to the weights of another
// network with the same architecture
func (dest *mlp) Set(source NeuralNet) error {
	sourceNodes := source.Learnables()
	nodes := dest.Learnables()
	if len(sourceNodes) != len(nodes) {
		return fmt.Errorf("set: invalid number of learnables\n\twant(%v)"+
			"\n\thave(%v)", len(nodes), len(sourceNodes))
	}

	for i, destLearnable := range nodes {
		weights, ok := sourceNodes[i].Value().(tensor.Tensor)
		if !ok {
			return fmt.Errorf("set: learnable %v has no value", i)
		}
		if !weights.Shape().Eq(destLearnable.Shape()) {
			return fmt.Errorf("set: invalid shape for learnable %v"+
				"\n\twant(%v)\n\thave(%v)", i, destLearnable.Shape(),
				weights.Shape())
		}

		// Copy in place when possible so that VMs bound to the
		// destination keep seeing its current value
		if destWeights, ok := destLearnable.Value().(tensor.Tensor); ok {
			dst, dstOk := destWeights.Data().([]float64)
			src, srcOk := weights.Data().([]float64)
			if dstOk && srcOk {
				copy(dst, src)
				continue
			}
		}

		err := G.Let(destLearnable, weights.Clone().(tensor.Tensor))
		if err != nil {
			return fmt.Errorf("set: could not set learnable %v: %v", i, err)
		}
	}
	return nil
}

// Learnables returns the learnable nodes in an mlp
func (e *mlp) Learnables() G.Nodes {
	// Lazy instantiation
	if e.learnables == nil {
		e.learnables = e.computeLearnables()
	}
	return e.learnables
}

// computeLearnables computes all the learnables for the network
func (e *mlp) computeLearnables() G.Nodes {
	learnables := make([]*G.Node, 0, 2*len(e.layers))
	for _, layer := range e.layers {
		learnables = append(learnables, layer.Weights(), layer.Bias())
	}
	return G.Nodes(learnables)
}

// Model returns the learnables nodes with their gradients.
func (e *mlp) Model() []G.ValueGrad {
	// Lazy instantiation
	if e.model == nil {
		model := make([]G.ValueGrad, 0, 2*len(e.layers))
		for _, node := range e.Learnables() {
			model = append(model, node)
		}
		e.model = model
	}
	return e.model
}

// fwd performs the forward pass of the mlp on the input node
func (e *mlp) fwd(input *G.Node) (*G.Node, error) {
	if features := input.Shape()[1]; features != e.numInputs {
		return nil, fmt.Errorf("fwd: invalid shape for input to neural net:"+
			" \n\twant(%v) \n\thave(%v)", e.numInputs, features)
	}

	pred := input
	var err error
	for i, l := range e.layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "fwd: could not compute forward pass of layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}

	e.prediction = pred
	G.Read(e.prediction, &e.predVal)

	return pred, nil
}

// Output returns the output of the mlp from the last run of its graph.
// The output has shape (batch, outputs).
func (e *mlp) Output() G.Value {
	return e.predVal
}

// Prediction returns the node of the computational graph that stores
// the output of the mlp
func (e *mlp) Prediction() *G.Node {
	return e.prediction
}

// GobEncode implements the gob.GobEncoder interface. Only the
// architecture and the current weights are encoded, gradients and
// solver state are not.
func (e *mlp) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	err := enc.Encode(e.numOutputs)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode number of outputs")
	}

	err = enc.Encode(e.numInputs)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode number of inputs")
	}

	err = enc.Encode(e.hiddenSizes)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode hidden sizes")
	}

	err = enc.Encode(e.activations)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode activations")
	}

	for i, node := range e.Learnables() {
		weights, ok := node.Value().Data().([]float64)
		if !ok {
			return nil, fmt.Errorf("gobencode: learnable %v is not float64", i)
		}
		if err := enc.Encode(weights); err != nil {
			msg := "gobencode: could not encode learnable %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The decoded
// network has a batch size of 1 and lives on a new graph.
//
// Decoding with an encoding/gob Decoder requires that the value being
// decoded into is an mlp, use Decode when the concrete type is unknown.
func (e *mlp) GobDecode(in []byte) error {
	buf := bytes.NewReader(in)
	dec := gob.NewDecoder(buf)

	var numOutputs int
	err := dec.Decode(&numOutputs)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode number of outputs")
	}

	var numInputs int
	err = dec.Decode(&numInputs)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode number of inputs")
	}

	var hiddenSizes []int
	err = dec.Decode(&hiddenSizes)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode hidden sizes")
	}

	var activations []*Activation
	err = dec.Decode(&activations)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode activations")
	}

	if len(hiddenSizes) != len(activations) {
		return fmt.Errorf("gobdecode: invalid number of activations"+
			"\n\twant(%v)\n\thave(%v)", len(hiddenSizes), len(activations))
	}

	if err := e.build(numInputs, 1, numOutputs, G.NewGraph(), hiddenSizes,
		G.Zeroes(), activations); err != nil {
		return fmt.Errorf("gobdecode: could not construct new MLP: %v", err)
	}

	for i, node := range e.Learnables() {
		var weights []float64
		if err := dec.Decode(&weights); err != nil {
			return fmt.Errorf("gobdecode: could not decode learnable %v: %v",
				i, err)
		}
		if len(weights) != node.Shape().TotalSize() {
			return fmt.Errorf("gobdecode: invalid size for learnable %v"+
				"\n\twant(%v)\n\thave(%v)", i, node.Shape().TotalSize(),
				len(weights))
		}

		value := tensor.New(
			tensor.WithBacking(weights),
			tensor.WithShape(node.Shape()...),
		)
		if err := G.Let(node, value); err != nil {
			return fmt.Errorf("gobdecode: could not set learnable %v: %v",
				i, err)
		}
	}

	return nil
}

// Decode decodes a gob encoded network, as encoded by the GobEncode
// method of a network returned by NewMLP
func Decode(in []byte) (NeuralNet, error) {
	var net mlp
	if err := net.GobDecode(in); err != nil {
		return nil, err
	}
	return &net, nil
}
