package place

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile is a reusable resolution configuration, typically loaded
// once and applied to every place of a batch.
type Profile struct {
	Components map[string]string `yaml:"components"`
	Language   string            `yaml:"language"`
	Business   bool              `yaml:"business"`
	CodeLength int               `yaml:"code_length"`
	Thresholds Thresholds        `yaml:"thresholds"`
}

// DefaultProfile returns the stock configuration: France in French,
// ten-digit plus codes, default thresholds.
func DefaultProfile() *Profile {
	return &Profile{
		Components: map[string]string{"country": "france"},
		Language:   "fr",
		CodeLength: 10,
		Thresholds: DefaultThresholds(),
	}
}

// LoadProfile reads a resolution profile from a YAML file. Fields
// absent from the file keep their defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "place: read profile %s", path)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, eris.Wrap(err, "place: parse profile")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks threshold ranges and the plus code length.
func (pr *Profile) Validate() error {
	for key, v := range map[string]float64{
		ThresholdKeyOverall:    pr.Thresholds.Overall,
		ThresholdKeyName:       pr.Thresholds.Name,
		ThresholdKeyAddr:       pr.Thresholds.Addr,
		ThresholdKeyCity:       pr.Thresholds.City,
		ThresholdKeyPostalCode: pr.Thresholds.PostalCode,
	} {
		if v < 0 || v > 1 {
			return eris.Errorf("place: %s %.2f out of range [0,1]", key, v)
		}
	}
	if pr.CodeLength < 2 || pr.CodeLength > 15 {
		return eris.Errorf("place: code length %d out of range [2,15]", pr.CodeLength)
	}
	return nil
}

// Options renders the profile as constructor options.
func (pr *Profile) Options() []Option {
	return []Option{
		WithComponents(pr.Components),
		WithLanguage(pr.Language),
		WithBusiness(pr.Business),
		WithCodeLength(pr.CodeLength),
		WithThresholds(pr.Thresholds),
	}
}
