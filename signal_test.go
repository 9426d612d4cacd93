package ticker

import (
	"math"
	"testing"
)

func TestGlyphFor(t *testing.T) {
	testCases := []struct {
		name      string
		price     Price
		threshold float32
		buy       bool
		want      Glyph
	}{
		{"buy above", "110", 100, true, Glyph{Arrow: Down}},
		{"buy below", "90", 100, true, Glyph{Arrow: Up, Star: true}},
		{"buy equal", "100", 100, true, Glyph{}},
		{"sell above", "110", 100, false, Glyph{Arrow: Up}},
		{"sell below", "90", 100, false, Glyph{Arrow: Down}},
		{"sell equal", "100.0", 100, false, Glyph{}},
		{"error buy", ErrorPrice, 100, true, Glyph{}},
		{"error sell", ErrorPrice, 100, false, Glyph{}},
		{"unset", "", 100, true, Glyph{}},
		{"fractional threshold", "0.1", 0.1, false, Glyph{}},
		{"fractional below", "285.4", 285.5, true, Glyph{Arrow: Up, Star: true}},
		{"nan threshold", "10", float32(math.NaN()), true, Glyph{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GlyphFor(tc.price, tc.threshold, tc.buy); got != tc.want {
				t.Errorf("GlyphFor(%q, %v, %v) = %+v, want %+v", tc.price, tc.threshold, tc.buy, got, tc.want)
			}
		})
	}
}
