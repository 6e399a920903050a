package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// The Glorot and He initializers draw weights with a variance scaled by
// the fan in and fan out of a layer, multiplied by a gain.

// GlorotUConfig configures Glorot uniform initialization
type GlorotUConfig struct {
	Gain float64
}

// GlorotNConfig configures Glorot normal initialization
type GlorotNConfig struct {
	Gain float64
}

// HeUConfig configures He uniform initialization
type HeUConfig struct {
	Gain float64
}

// HeNConfig configures He normal initialization
type HeNConfig struct {
	Gain float64
}

// NewGlorotU returns a new Glorot uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	if err := validGain(gain); err != nil {
		return nil, fmt.Errorf("newglorotu: %v", err)
	}
	return newInitWFn(GlorotUConfig{Gain: gain})
}

// NewGlorotN returns a new Glorot normal weight initializer
func NewGlorotN(gain float64) (*InitWFn, error) {
	if err := validGain(gain); err != nil {
		return nil, fmt.Errorf("newglorotn: %v", err)
	}
	return newInitWFn(GlorotNConfig{Gain: gain})
}

// NewHeU returns a new He uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	if err := validGain(gain); err != nil {
		return nil, fmt.Errorf("newheu: %v", err)
	}
	return newInitWFn(HeUConfig{Gain: gain})
}

// NewHeN returns a new He normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	if err := validGain(gain); err != nil {
		return nil, fmt.Errorf("newhen: %v", err)
	}
	return newInitWFn(HeNConfig{Gain: gain})
}

func validGain(gain float64) error {
	if gain <= 0 {
		return fmt.Errorf("gain must be positive \n\twant(>0) \n\thave(%v)",
			gain)
	}
	return nil
}

func (g GlorotUConfig) Type() Type { return GlorotU }
func (g GlorotNConfig) Type() Type { return GlorotN }
func (h HeUConfig) Type() Type { return HeU }
func (h HeNConfig) Type() Type { return HeN }

func (g GlorotUConfig) Create() G.InitWFn { return G.GlorotU(g.Gain) }
func (g GlorotNConfig) Create() G.InitWFn { return G.GlorotN(g.Gain) }
func (h HeUConfig) Create() G.InitWFn { return G.HeU(h.Gain) }
func (h HeNConfig) Create() G.InitWFn { return G.HeN(h.Gain) }
