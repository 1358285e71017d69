package strsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		fold      bool
		wantDist  int
		wantRatio float64
	}{
		{"kitten sitting", "kitten", "sitting", false, 3, 10.0 / 13.0},
		{"identical", "paris", "paris", false, 0, 1},
		{"left empty", "", "paris", false, 0, 0},
		{"right empty", "paris", "", false, 0, 0},
		{"both empty", "", "", false, 0, 0},
		{"fold accents", "Musée", "Musee", true, 0, 1},
		{"no fold accents", "Musée", "Musee", false, 1, 9.0 / 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := Levenshtein(tt.a, tt.b, tt.fold)
			assert.Equal(t, tt.wantDist, d)
			assert.InDelta(t, tt.wantRatio, r, 1e-9)
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		lcs   bool
		want  float64
	}{
		{"identical plain", "12 rue de la paix", "12 rue de la paix", false, 1},
		{"identical lcs", "12 rue de la paix", "12 rue de la paix", true, 1},
		{"case and accents ignored", "CAFÉ", "cafe", false, 1},
		{"short in long scores full with lcs", "Musee Grevin", "Musée Grévin Paris", true, 1},
		{"short in long penalized without lcs", "Musee Grevin", "Musée Grévin Paris", false, 0.8},
		{"empty left", "", "paris", true, 0},
		{"empty right", "paris", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.left, tt.right, tt.lcs), 1e-9)
		})
	}
}

func TestSimilaritySymmetricOnLength(t *testing.T) {
	// The shorter side drives the extraction regardless of argument order.
	a, b := "grevin", "musee grevin"
	assert.InDelta(t, Similarity(a, b, true), Similarity(b, a, true), 1e-9)
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"boulangerie", "patisserie"},
		{"Carrefour City", "Carrefour Market"},
		{"75011", "75012"},
		{"a", "completely different thing"},
	}
	for _, p := range pairs {
		for _, lcs := range []bool{false, true} {
			got := Similarity(p[0], p[1], lcs)
			assert.GreaterOrEqual(t, got, 0.0, "pair %v lcs %v", p, lcs)
			assert.LessOrEqual(t, got, 1.0, "pair %v lcs %v", p, lcs)
		}
	}
}
