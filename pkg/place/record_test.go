package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord()

	assert.Equal(t, LocationNotFound, rec.LocationType)
	assert.Equal(t, 0.0, rec.Confidence)
	assert.False(t, rec.Accepted)
	assert.Nil(t, rec.Distance)
}

func TestRecordWeekdays_Order(t *testing.T) {
	rec := &Record{}
	days := rec.weekdays()

	*days[0] = "mon"
	*days[6] = "sun"

	assert.Equal(t, "mon", rec.Monday)
	assert.Equal(t, "sun", rec.Sunday)
	assert.Equal(t, "", rec.Thursday)
}

func TestMapsSearchURL(t *testing.T) {
	got := mapsSearchURL(48.855599, 2.360107, "ChIJrivoli")

	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=48.855599%2C2.360107&query_place_id=ChIJrivoli",
		got)
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0612345678", true},
		{"+33612345678", true},
		{"3.14", true},
		{"1e6", true},
		{"0x1A", true},
		{"0b101", true},
		{"0o17", true},
		{"1A", true}, // bare hex digits
		{"2+3i", true},
		{"abc", false},
		{"", false},
		{"12 34", false},
		{"10 rue de rivoli", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, isNumeric(tt.in))
		})
	}
}
