// Package config implements the configuration of a training run. A
// Config starts from Default and may be overlaid with a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/snakeq/agent/deepq"
	env "github.com/samuelfneumann/snakeq/environment"
	"github.com/samuelfneumann/snakeq/environment/snake"
	"github.com/samuelfneumann/snakeq/featurizer"
	"github.com/samuelfneumann/snakeq/initwfn"
	"github.com/samuelfneumann/snakeq/network"
	"github.com/samuelfneumann/snakeq/solver"
)

// Filename is the configuration file read from the working directory
const Filename string = "snakeq.json"

const (
	modelFile = "model.bin"
	varsFile  = "vars.conf"
	plotPNG   = "scores.png"
	plotHTML  = "scores.html"
)

// Config is the configuration of a training run
type Config struct {
	Cols int // Columns of the board
	Rows int // Rows of the board

	MaxMemory int     // Capacity of the replay buffer
	BatchSize int     // Transitions per long memory update
	Gamma     float64 // Discount factor

	HiddenSizes []int
	Activations []*network.Activation
	Solver      *solver.Solver
	InitWFn     *initwfn.InitWFn

	// Seed seeds the policy, the replay buffer, and food placement
	Seed uint64

	// ModelDir holds the saved model, the run state, and the plots
	ModelDir string
}

// Default returns the default configuration
func Default() Config {
	adam, err := solver.NewDefaultAdam(0.001, 1)
	if err != nil {
		panic(fmt.Sprintf("default: %v", err))
	}
	init, err := initwfn.NewGlorotU(1.0)
	if err != nil {
		panic(fmt.Sprintf("default: %v", err))
	}

	return Config{
		Cols:        snake.DefaultCols,
		Rows:        snake.DefaultRows,
		MaxMemory:   100_000,
		BatchSize:   1000,
		Gamma:       0.9,
		HiddenSizes: []int{256},
		Activations: []*network.Activation{network.ReLU()},
		Solver:      adam,
		InitWFn:     init,
		Seed:        0,
		ModelDir:    "model",
	}
}

// Load returns the default configuration overlaid with the JSON file
// filename. Fields missing from the file keep their default values.
// If the file does not exist, the default configuration is returned.
func Load(filename string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}
	return c, nil
}

// Validate checks that c describes a runnable training run
func (c Config) Validate() error {
	if c.MaxMemory < 1 {
		return fmt.Errorf("validate: max memory must be positive \n\twant(>0) "+
			"\n\thave(%v)", c.MaxMemory)
	}
	if c.ModelDir == "" {
		return fmt.Errorf("validate: model directory cannot be empty")
	}
	if _, err := snake.New(c.Cols, c.Rows, c.Seed); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return c.QNet().Validate()
}

// QNet returns the configuration of the action value model
func (c Config) QNet() deepq.Config {
	return deepq.Config{
		Features:    featurizer.Features,
		Actions:     env.Actions,
		HiddenSizes: c.HiddenSizes,
		Activations: c.Activations,
		Solver:      c.Solver,
		InitWFn:     c.InitWFn,
		Gamma:       c.Gamma,
		BatchSize:   c.BatchSize,
		Filename:    c.ModelFile(),
	}
}

// ModelFile returns the file the model is saved to
func (c Config) ModelFile() string {
	return filepath.Join(c.ModelDir, modelFile)
}

// VarsFile returns the file the run state is written to
func (c Config) VarsFile() string {
	return filepath.Join(c.ModelDir, varsFile)
}

// PlotFiles returns the PNG and HTML files the scores are plotted to
func (c Config) PlotFiles() (png, html string) {
	return filepath.Join(c.ModelDir, plotPNG), filepath.Join(c.ModelDir,
		plotHTML)
}
