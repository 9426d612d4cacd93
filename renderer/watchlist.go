package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/ticker"
	"github.com/shopspring/decimal"
)

// Watchlist is the report of a board: its records, last known prices and
// settings, formatted for humans.
type Watchlist struct {
	Currency        string
	UpdateInterval  string
	DisplayInterval string
	Free            int // remaining slots
	Rows            []WatchlistRow
}

// WatchlistRow is a single record of the report.
type WatchlistRow struct {
	Symbol    string
	Signal    string // "buy" or "sell"
	Threshold string
	Price     string
	Status    string
	Indicator string // arrow, followed by a star for an opportunity
}

// NewWatchlist builds the report of entries.
func NewWatchlist(entries []ticker.Entry, s ticker.Settings, currency string) *Watchlist {
	w := &Watchlist{
		Currency:        currency,
		UpdateInterval:  formatInterval(s.UpdateInterval),
		DisplayInterval: formatInterval(s.DisplayInterval),
		Free:            ticker.MaxTickers - len(entries),
	}
	for _, e := range entries {
		row := WatchlistRow{
			Symbol:    e.Symbol,
			Signal:    "sell",
			Threshold: "-",
			Price:     "-",
			Status:    e.Status.String(),
			Indicator: indicator(e.Glyph),
		}
		if e.IsBuySignal {
			row.Signal = "buy"
		}
		if t := float64(e.Threshold); !math.IsNaN(t) && !math.IsInf(t, 0) {
			row.Threshold = formatMoney(decimal.NewFromFloat32(e.Threshold), currency)
		}
		if e.Price == ticker.ErrorPrice {
			row.Price = string(e.Price)
		} else if p, err := decimal.NewFromString(string(e.Price)); err == nil {
			row.Price = formatMoney(p, currency)
		}
		w.Rows = append(w.Rows, row)
	}
	return w
}

func indicator(g ticker.Glyph) string {
	var s string
	switch g.Arrow {
	case ticker.Up:
		s = "↑"
	case ticker.Down:
		s = "↓"
	default:
		s = "-"
	}
	if g.Star {
		s += " ★"
	}
	return s
}

// formatMoney formats v in currency, keeping at least the currency fraction
// digits and never dropping any of v's. A value too large for the formatter
// is shown as "-".
func formatMoney(v decimal.Decimal, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	if exp := int(-v.Exponent()); exp > cur.Fraction {
		cur.Fraction = exp
	}
	units := v.Shift(int32(cur.Fraction))
	if units.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return "-"
	}
	return cur.Formatter().Format(units.IntPart())
}

func formatInterval(d time.Duration) string {
	switch {
	case d%time.Minute == 0:
		return fmt.Sprintf("%d min", int(d/time.Minute))
	case d%time.Second == 0:
		return fmt.Sprintf("%d s", int(d/time.Second))
	}
	return d.String()
}
