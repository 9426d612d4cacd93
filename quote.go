package ticker

import "context"

// Price is the last known quote of a symbol as a short display string.
type Price string

// ErrorPrice is the sentinel quote of a failed fetch.
const ErrorPrice Price = "Error"

// MaxPriceLen is the width of the price column on the display.
const MaxPriceLen = 7

// Status is the transient indicator shown in front of a line.
type Status byte

const (
	Idle     Status = ' '
	Fetching Status = '.'
	Failed   Status = 'x'
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Quote is the price cache entry of a record.
type Quote struct {
	Price  Price
	Status Status
}

// Fetcher retrieves the current price of a symbol.
//
// Fetch is synchronous; the board never has more than one call outstanding.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (Price, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, symbol string) (Price, error)

func (f FetcherFunc) Fetch(ctx context.Context, symbol string) (Price, error) { return f(ctx, symbol) }
