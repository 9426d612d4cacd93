package ticker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeQuotes is a Fetcher answering from a map. Missing symbols fail.
type fakeQuotes struct {
	mu     sync.Mutex
	prices map[string]Price
	calls  []string
}

func newFakeQuotes(prices map[string]Price) *fakeQuotes {
	return &fakeQuotes{prices: prices}
}

func (f *fakeQuotes) Fetch(_ context.Context, symbol string) (Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbol)
	p, ok := f.prices[symbol]
	if !ok {
		return ErrorPrice, errors.New("no such symbol")
	}
	return p, nil
}

func (f *fakeQuotes) set(symbol string, p Price) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[symbol] = p
}

func (f *fakeQuotes) unset(symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.prices, symbol)
}

// recorder is a Display keeping every write.
type recorder struct {
	rows   [Rows]string
	writes []int
}

func (r *recorder) WriteLine(row int, text string) {
	r.rows[row] = text
	r.writes = append(r.writes, row)
}

// newTestBoard opens a board on a blank memory region with a controlled clock.
func newTestBoard(t *testing.T, quotes Fetcher) (*Board, *MemRegion, *recorder, *time.Time) {
	t.Helper()
	region := NewMemRegion(nil)
	display := new(recorder)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b, err := Open(region, quotes, display)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b.now = func() time.Time { return now }
	return b, region, display, &now
}

// mustAdd adds symbols with a threshold of 100 and a sell signal.
func mustAdd(t *testing.T, b *Board, symbols ...string) {
	t.Helper()
	for _, s := range symbols {
		if err := b.Add(s, 100, false); err != nil {
			t.Fatalf("Add(%q) error = %v", s, err)
		}
	}
}
