package initwfn

import (
	"encoding/json"
	"testing"
)

func TestJSON(t *testing.T) {
	constructors := []func() (*InitWFn, error){
		func() (*InitWFn, error) { return NewGlorotU(1.0) },
		func() (*InitWFn, error) { return NewGlorotN(0.5) },
		func() (*InitWFn, error) { return NewHeU(2.0) },
		func() (*InitWFn, error) { return NewHeN(1.0) },
		NewZeroes,
	}

	for _, construct := range constructors {
		init, err := construct()
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(init)
		if err != nil {
			t.Fatal(err)
		}

		var decoded InitWFn
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if decoded.Type != init.Type || decoded.Config != init.Config {
			t.Errorf("json: \n\twant(%v) \n\thave(%v)", init, &decoded)
		}
		if decoded.InitWFn() == nil {
			t.Errorf("json: %v has no Gorgonia InitWFn", decoded.Type)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	inputs := []string{
		`{"Type": "Orthogonal", "Config": {}}`,
		`{"Config": {"Gain": 1}}`,
		`{"Type": "GlorotU", "Config": {"Gain": "one"}}`,
		`[]`,
	}

	for _, in := range inputs {
		var init InitWFn
		if err := json.Unmarshal([]byte(in), &init); err == nil {
			t.Errorf("unmarshal %s: expected error", in)
		}
	}
}

func TestInvalidGain(t *testing.T) {
	if _, err := NewGlorotU(0); err == nil {
		t.Errorf("newglorotu: expected error with zero gain")
	}
	if _, err := NewHeN(-1); err == nil {
		t.Errorf("newhen: expected error with negative gain")
	}
}
