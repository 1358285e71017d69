package place

import "github.com/rotisserie/eris"

// Threshold config keys accepted by Set and SetThresholds.
const (
	ThresholdKeyOverall    = "threshold"
	ThresholdKeyName       = "threshold_on_name"
	ThresholdKeyAddr       = "threshold_on_addr"
	ThresholdKeyCity       = "threshold_on_city"
	ThresholdKeyPostalCode = "threshold_on_postal_code"
)

// Thresholds gates acceptance of a resolved record. A zero threshold
// disables its rule.
type Thresholds struct {
	Overall    float64 `yaml:"overall" mapstructure:"overall"`
	Name       float64 `yaml:"name" mapstructure:"name"`
	Addr       float64 `yaml:"addr" mapstructure:"addr"`
	City       float64 `yaml:"city" mapstructure:"city"`
	PostalCode float64 `yaml:"postal_code" mapstructure:"postal_code"`
}

// DefaultThresholds returns the stock gates: strong overall match,
// near-exact city, postal prefix agreement, no name or street
// requirement.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Overall:    0.85,
		Name:       0,
		Addr:       0,
		City:       0.9,
		PostalCode: 1,
	}
}

// Set applies one keyed threshold value. Unknown keys are an error.
func (t *Thresholds) Set(key string, value float64) error {
	switch key {
	case ThresholdKeyOverall:
		t.Overall = value
	case ThresholdKeyName:
		t.Name = value
	case ThresholdKeyAddr:
		t.Addr = value
	case ThresholdKeyCity:
		t.City = value
	case ThresholdKeyPostalCode:
		t.PostalCode = value
	default:
		return eris.Errorf("place: unknown threshold key %q", key)
	}
	return nil
}

// SetThresholds applies a keyed map of threshold values, failing on
// the first unknown key.
func (p *Place) SetThresholds(values map[string]float64) error {
	for key, v := range values {
		if err := p.thresholds.Set(key, v); err != nil {
			return err
		}
	}
	return nil
}
