// Package checkpointer implements saving and loading of serializable
// objects to and from disk
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
}

// Save gob encodes object and writes it to filename, overwriting any
// existing file. The directory containing filename is created if it
// does not exist.
func Save(filename string, object Serializable) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save: could not create directory: %v", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}

	enc := gob.NewEncoder(file)
	if err := enc.Encode(object); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode object: %v", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("save: could not close save file: %v", err)
	}
	return nil
}

// Load decodes the object saved in filename into object
func Load(filename string, object Serializable) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(object); err != nil {
		return fmt.Errorf("load: could not decode object: %v", err)
	}
	return nil
}
