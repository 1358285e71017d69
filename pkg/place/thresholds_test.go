package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 0.85, th.Overall)
	assert.Equal(t, 0.0, th.Name)
	assert.Equal(t, 0.0, th.Addr)
	assert.Equal(t, 0.9, th.City)
	assert.Equal(t, 1.0, th.PostalCode)
}

func TestThresholdsSet(t *testing.T) {
	var th Thresholds

	require.NoError(t, th.Set(ThresholdKeyOverall, 0.7))
	require.NoError(t, th.Set(ThresholdKeyName, 0.6))
	require.NoError(t, th.Set(ThresholdKeyAddr, 0.5))
	require.NoError(t, th.Set(ThresholdKeyCity, 0.4))
	require.NoError(t, th.Set(ThresholdKeyPostalCode, 0.3))

	assert.Equal(t, Thresholds{Overall: 0.7, Name: 0.6, Addr: 0.5, City: 0.4, PostalCode: 0.3}, th)
}

func TestThresholdsSet_UnknownKey(t *testing.T) {
	var th Thresholds
	err := th.Set("threshold_on_street", 0.5)
	assert.ErrorContains(t, err, "unknown threshold key")
}

func TestSetThresholds(t *testing.T) {
	p := newTestPlace(t)

	err := p.SetThresholds(map[string]float64{
		ThresholdKeyOverall: 0.6,
		ThresholdKeyCity:    0.8,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.6, p.Thresholds().Overall)
	assert.Equal(t, 0.8, p.Thresholds().City)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1.0, p.Thresholds().PostalCode)
}

func TestSetThresholds_UnknownKey(t *testing.T) {
	p := newTestPlace(t)
	err := p.SetThresholds(map[string]float64{"nope": 0.5})
	assert.Error(t, err)
}
