package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/snakeq/solver"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.MaxMemory != 100_000 || c.BatchSize != 1000 || c.Gamma != 0.9 {
		t.Errorf("default: (memory, batch, gamma) \n\twant(100000 1000 0.9)"+
			"\n\thave(%v %v %v)", c.MaxMemory, c.BatchSize, c.Gamma)
	}
	if len(c.HiddenSizes) != 1 || c.HiddenSizes[0] != 256 {
		t.Errorf("default: hidden sizes \n\twant([256]) \n\thave(%v)",
			c.HiddenSizes)
	}
	if c.Solver.Type != solver.Adam {
		t.Errorf("default: solver \n\twant(%v) \n\thave(%v)", solver.Adam,
			c.Solver.Type)
	}
	if step := c.Solver.Config.(solver.AdamConfig).StepSize; step != 0.001 {
		t.Errorf("default: learning rate \n\twant(0.001) \n\thave(%v)", step)
	}
	if c.ModelFile() != filepath.Join("model", "model.bin") {
		t.Errorf("default: model file \n\twant(model/model.bin) \n\thave(%v)",
			c.ModelFile())
	}
	if c.VarsFile() != filepath.Join("model", "vars.conf") {
		t.Errorf("default: vars file \n\twant(model/vars.conf) \n\thave(%v)",
			c.VarsFile())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), Filename))
	if err != nil {
		t.Fatal(err)
	}
	if c.BatchSize != Default().BatchSize {
		t.Errorf("load: batch size \n\twant(%v) \n\thave(%v)",
			Default().BatchSize, c.BatchSize)
	}
}

func TestLoadOverlay(t *testing.T) {
	filename := filepath.Join(t.TempDir(), Filename)
	data := `{
		"BatchSize": 64,
		"Seed": 7,
		"HiddenSizes": [32, 16],
		"Activations": ["tanh", "relu"],
		"Solver": {"Type": "Vanilla", "Config": {"StepSize": 0.1, "Batch": 1,
			"Clip": -1}}
	}`
	if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}

	if c.BatchSize != 64 || c.Seed != 7 {
		t.Errorf("load: (batch, seed) \n\twant(64 7) \n\thave(%v %v)",
			c.BatchSize, c.Seed)
	}
	if len(c.HiddenSizes) != 2 || c.Activations[0].String() != "tanh" {
		t.Errorf("load: layers \n\twant([32 16] [tanh relu]) \n\thave(%v %v)",
			c.HiddenSizes, c.Activations)
	}
	if c.Solver.Type != solver.Vanilla {
		t.Errorf("load: solver \n\twant(%v) \n\thave(%v)", solver.Vanilla,
			c.Solver.Type)
	}

	// Fields missing from the file keep their defaults
	if c.MaxMemory != 100_000 || c.Gamma != 0.9 || c.ModelDir != "model" {
		t.Errorf("load: defaults not kept \n\thave(%v %v %v)", c.MaxMemory,
			c.Gamma, c.ModelDir)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []string{
		`not json`,
		`{"BatchSize": 0}`,
		`{"Gamma": 2}`,
		`{"HiddenSizes": [8, 8]}`,
		`{"Cols": 2}`,
		`{"ModelDir": ""}`,
		`{"Solver": {"Type": "SGD"}}`,
	}

	for i, test := range tests {
		filename := filepath.Join(dir, Filename)
		if err := os.WriteFile(filename, []byte(test), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(filename); err == nil {
			t.Errorf("test %v: expected error loading %s", i, test)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := Default()
	c.Seed = 42

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(t.TempDir(), Filename)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Seed != 42 || loaded.Solver.Config != c.Solver.Config ||
		loaded.InitWFn.String() != c.InitWFn.String() {
		t.Errorf("json: \n\twant(%+v) \n\thave(%+v)", c, loaded)
	}
}
