package ticker

import (
	"math"

	"github.com/shopspring/decimal"
)

// Arrow is the direction marker of a line.
type Arrow int

const (
	None Arrow = iota
	Up
	Down
)

func (a Arrow) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "none"
}

// Glyph is the indicator rendered at the end of a line. Star marks an
// actionable opportunity.
type Glyph struct {
	Arrow Arrow
	Star  bool
}

// GlyphFor classifies price against threshold.
//
// For a buy signal a price above the threshold points down and a price below
// points up with a star. For a sell signal the arrow follows the price. A
// price equal to the threshold gets no glyph, and so does a price that is
// not a number, including the ErrorPrice sentinel.
func GlyphFor(price Price, threshold float32, isBuySignal bool) Glyph {
	if price == ErrorPrice {
		return Glyph{}
	}
	// a corrupted region can hold any float bits.
	if t := float64(threshold); math.IsNaN(t) || math.IsInf(t, 0) {
		return Glyph{}
	}
	p, err := decimal.NewFromString(string(price))
	if err != nil {
		return Glyph{}
	}
	switch p.Cmp(decimal.NewFromFloat32(threshold)) {
	case 1:
		if isBuySignal {
			return Glyph{Arrow: Down}
		}
		return Glyph{Arrow: Up}
	case -1:
		if isBuySignal {
			return Glyph{Arrow: Up, Star: true}
		}
		return Glyph{Arrow: Down}
	}
	return Glyph{}
}
