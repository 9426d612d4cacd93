package ticker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var (
	ErrFull      = errors.New("ticker list is full")
	ErrDuplicate = errors.New("ticker already exists")
	ErrNotFound  = errors.New("ticker not found")
)

// Board owns the watch list, its price cache and the rotation window.
//
// Every mutation is validated, persisted to the region and followed by a
// rotation reset, as a single unit under the board lock. Network fetches run
// outside that lock but never more than one at a time.
type Board struct {
	mu         sync.Mutex
	records    []Record
	quotes     []Quote // in lockstep with records
	settings   Settings
	rot        Rotator
	lastRotate time.Time

	fetchMu sync.Mutex

	region  Region
	fetcher Fetcher
	display Display
	now     func() time.Time
}

// Entry is a record joined with its cache entry and current glyph.
type Entry struct {
	Record
	Quote
	Glyph Glyph
}

// Open loads a board from region. Prices are unknown until the first refresh.
//
// display may be nil when nothing has to be shown.
func Open(region Region, fetcher Fetcher, display Display) (*Board, error) {
	b, err := region.ReadRegion()
	if err != nil {
		return nil, err
	}
	if display == nil {
		display = discard{}
	}
	records, settings := Decode(b)
	board := &Board{
		records:  records,
		quotes:   make([]Quote, len(records)),
		settings: settings,
		region:   region,
		fetcher:  fetcher,
		display:  display,
		now:      time.Now,
	}
	board.mu.Lock()
	board.resetLocked()
	board.mu.Unlock()
	return board, nil
}

type discard struct{}

func (discard) WriteLine(int, string) {}

// Len returns the number of records.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// Records returns a copy of the watch list in display order.
func (b *Board) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.records)
}

// Quotes returns a copy of the price cache, in lockstep with Records.
func (b *Board) Quotes() []Quote {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.quotes)
}

// Entries returns the watch list joined with the price cache.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]Entry, len(b.records))
	for i, r := range b.records {
		q := b.quotes[i]
		entries[i] = Entry{Record: r, Quote: q, Glyph: GlyphFor(q.Price, r.Threshold, r.IsBuySignal)}
	}
	return entries
}

// Settings returns the current intervals.
func (b *Board) Settings() Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// Window returns the current rotation window.
func (b *Board) Window() Rotator {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rot
}

// Add appends a record with an unknown price.
func (b *Board) Add(symbol string, threshold float32, isBuySignal bool) error {
	if err := ValidateSymbol(symbol); err != nil {
		return err
	}
	if err := ValidateThreshold(threshold); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.records) >= MaxTickers {
		return ErrFull
	}
	if b.indexLocked(symbol) >= 0 {
		return fmt.Errorf("cannot add %q: %w", symbol, ErrDuplicate)
	}
	records := append(slices.Clone(b.records), Record{Symbol: symbol, Threshold: threshold, IsBuySignal: isBuySignal})
	quotes := append(slices.Clone(b.quotes), Quote{Status: Idle})
	return b.commitLocked(records, quotes, b.settings)
}

// Remove deletes the record of symbol, shifting the following records and
// their cache entries down by one.
func (b *Board) Remove(symbol string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(symbol)
	if i < 0 {
		return fmt.Errorf("cannot remove %q: %w", symbol, ErrNotFound)
	}
	records := slices.Delete(slices.Clone(b.records), i, i+1)
	quotes := slices.Delete(slices.Clone(b.quotes), i, i+1)
	return b.commitLocked(records, quotes, b.settings)
}

// Update changes the threshold and signal of symbol in place, then refreshes
// its price alone.
//
// The mutation is kept even if the refresh fails: the failure is reported on
// the display and in the returned error, which wraps the fetch error.
func (b *Board) Update(ctx context.Context, symbol string, threshold float32, isBuySignal bool) error {
	if err := ValidateThreshold(threshold); err != nil {
		return err
	}
	b.mu.Lock()
	i := b.indexLocked(symbol)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("cannot update %q: %w", symbol, ErrNotFound)
	}
	records := slices.Clone(b.records)
	records[i].Threshold = threshold
	records[i].IsBuySignal = isBuySignal
	err := b.commitLocked(records, b.quotes, b.settings)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.refresh(ctx, symbol)
}

// SetIntervals replaces both intervals. The call is rejected as a whole if
// any of them is below its minimum.
func (b *Board) SetIntervals(update, display time.Duration) error {
	s := Settings{UpdateInterval: update, DisplayInterval: display}
	if err := s.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commitLocked(b.records, b.quotes, s)
}

// Clear removes every record and restores the default settings.
func (b *Board) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commitLocked(nil, nil, DefaultSettings())
}

// commitLocked persists the new state and only then installs it, so that the
// memory never diverges from the region.
func (b *Board) commitLocked(records []Record, quotes []Quote, s Settings) error {
	buf, err := Encode(records, s)
	if err != nil {
		return err
	}
	if err := b.region.WriteRegion(buf); err != nil {
		return fmt.Errorf("cannot persist tickers: %w", err)
	}
	b.records, b.quotes, b.settings = records, quotes, s
	b.resetLocked()
	return nil
}

func (b *Board) indexLocked(symbol string) int {
	return slices.IndexFunc(b.records, func(r Record) bool { return r.Symbol == symbol })
}

// resetLocked rewinds the rotation window, clears the status indicators and
// repaints the display.
func (b *Board) resetLocked() {
	b.rot.Reset(len(b.records))
	b.lastRotate = b.now()
	for i := range b.quotes {
		b.quotes[i].Status = Idle
	}
	b.paintLocked()
}

// Repaint redraws both rows.
func (b *Board) Repaint() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paintLocked()
}

func (b *Board) paintLocked() {
	if len(b.records) == 0 {
		for row, text := range EmptyLines {
			b.display.WriteLine(row, text)
		}
		return
	}
	for row := range Rows {
		b.paintRowLocked(row)
	}
}

// paintRowLocked redraws a single row. With a single record the second row
// stays blank.
func (b *Board) paintRowLocked(row int) {
	if len(b.records) == 0 {
		b.display.WriteLine(row, EmptyLines[row])
		return
	}
	if row >= len(b.records) {
		b.display.WriteLine(row, "")
		return
	}
	i := b.rot.Displayed[row]
	b.display.WriteLine(row, RenderLine(b.records[i], b.quotes[i]))
}

// paintIndexLocked redraws the rows currently showing record i.
func (b *Board) paintIndexLocked(i int) {
	for row := range min(Rows, len(b.records)) {
		if b.rot.Displayed[row] == i {
			b.paintRowLocked(row)
		}
	}
}

// Rotate advances the rotation window if the display interval has elapsed
// since the last change. Only the replaced row is repainted.
func (b *Board) Rotate(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now.Sub(b.lastRotate) < b.settings.DisplayInterval {
		return false
	}
	row, ok := b.rot.Tick(len(b.records))
	if !ok {
		return false
	}
	b.lastRotate = now
	b.paintRowLocked(row)
	return true
}

// RefreshOne fetches the price of the record at index i.
//
// On failure the previous price is kept and the record is flagged Failed.
func (b *Board) RefreshOne(ctx context.Context, i int) error {
	b.mu.Lock()
	if i < 0 || i >= len(b.records) {
		b.mu.Unlock()
		return fmt.Errorf("no ticker at index %d: %w", i, ErrNotFound)
	}
	symbol := b.records[i].Symbol
	b.mu.Unlock()
	return b.refresh(ctx, symbol)
}

// RefreshAll fetches every price, one after the other, in display order.
//
// A failing record never stops the cycle; the returned error joins every
// failure. An empty board only repaints the empty state.
func (b *Board) RefreshAll(ctx context.Context) error {
	b.mu.Lock()
	if len(b.records) == 0 {
		b.paintLocked()
		b.mu.Unlock()
		return nil
	}
	symbols := make([]string, len(b.records))
	for i, r := range b.records {
		symbols[i] = r.Symbol
	}
	b.mu.Unlock()

	var errs []error
	for _, symbol := range symbols {
		if err := b.refresh(ctx, symbol); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// refresh fetches symbol and applies the result to whatever index holds
// symbol once the fetch returns. A symbol removed meanwhile is ignored.
func (b *Board) refresh(ctx context.Context, symbol string) error {
	if b.fetcher == nil {
		return fmt.Errorf("cannot fetch %q: no quote provider", symbol)
	}
	b.fetchMu.Lock()
	defer b.fetchMu.Unlock()

	b.mu.Lock()
	i := b.indexLocked(symbol)
	if i < 0 {
		b.mu.Unlock()
		return nil
	}
	b.quotes[i].Status = Fetching
	b.paintIndexLocked(i)
	b.mu.Unlock()

	price, err := b.fetcher.Fetch(ctx, symbol)
	if err == nil && (price == ErrorPrice || price == "") {
		err = errors.New("no quote")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i = b.indexLocked(symbol)
	if i < 0 {
		return nil
	}
	if err != nil {
		b.quotes[i].Status = Failed
	} else {
		b.quotes[i] = Quote{Price: price, Status: Idle}
	}
	b.paintIndexLocked(i)
	if err != nil {
		return fmt.Errorf("cannot fetch %q: %w", symbol, err)
	}
	return nil
}
