package checkpointer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// counter is a Serializable integer
type counter struct {
	n int
}

func (c *counter) GobEncode() ([]byte, error) {
	return []byte(strconv.Itoa(c.n)), nil
}

func (c *counter) GobDecode(in []byte) error {
	n, err := strconv.Atoi(string(in))
	if err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	c.n = n
	return nil
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "dir", "counter.bin")

	for _, n := range []int{7, -3} {
		if err := Save(filename, &counter{n}); err != nil {
			t.Fatal(err)
		}

		var c counter
		if err := Load(filename, &c); err != nil {
			t.Fatal(err)
		}
		if c.n != n {
			t.Errorf("load: \n\twant(%v) \n\thave(%v)", n, c.n)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	var c counter
	if err := Load(filepath.Join(dir, "missing.bin"), &c); err == nil {
		t.Errorf("load: expected error with missing file")
	}

	garbage := filepath.Join(dir, "garbage.bin")
	if err := os.WriteFile(garbage, []byte("not gob"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(garbage, &c); err == nil {
		t.Errorf("load: expected error with invalid file")
	}
}
