package ticker

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// Width is the number of columns of a display row.
	Width = 16
	// Rows is the number of rows of the display.
	Rows = 2

	// LCD custom character slots holding the arrows.
	UpArrowChar   = '\x01'
	DownArrowChar = '\x02'
)

// EmptyLines is what the display shows when the store is empty.
var EmptyLines = [Rows]string{"No tickers", "Add via web"}

// Display is the sink of rendered rows.
type Display interface {
	WriteLine(row int, text string)
}

// RenderLine composes the fixed width row of a record:
//
//	status(1) symbol(4) ' ' price(7) ' ' arrow(1) star(1)
//
// The symbol is left aligned, the price right aligned, both truncated to
// their column.
func RenderLine(r Record, q Quote) string {
	var b strings.Builder
	b.Grow(Width)

	status := q.Status
	if status == 0 {
		status = Idle
	}
	b.WriteByte(byte(status))
	b.WriteString(fit(r.Symbol, MaxSymbolLen, false))
	b.WriteByte(' ')
	b.WriteString(fit(string(q.Price), MaxPriceLen, true))
	b.WriteByte(' ')

	g := GlyphFor(q.Price, r.Threshold, r.IsBuySignal)
	switch g.Arrow {
	case Up:
		b.WriteByte(UpArrowChar)
	case Down:
		b.WriteByte(DownArrowChar)
	default:
		b.WriteByte(' ')
	}
	if g.Star {
		b.WriteByte('*')
	} else {
		b.WriteByte(' ')
	}
	return b.String()
}

// fit pads or truncates s to exactly n bytes.
func fit(s string, n int, right bool) string {
	if len(s) >= n {
		return s[:n]
	}
	pad := strings.Repeat(" ", n-len(s))
	if right {
		return pad + s
	}
	return s + pad
}

// Console is a Display printing frames to a writer, one row per line.
//
// The LCD arrow slots are translated into printable arrows.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	rows [Rows]string
}

var arrows = strings.NewReplacer(string(rune(UpArrowChar)), "↑", string(rune(DownArrowChar)), "↓")

// NewConsole returns a console display writing to w.
func NewConsole(w io.Writer) *Console { return &Console{w: w} }

// WriteLine updates row and prints the whole frame.
func (c *Console) WriteLine(row int, text string) {
	if row < 0 || row >= Rows {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[row] = fit(text, Width, false)
	fmt.Fprintf(c.w, "%s\n", c.frameLocked())
}

// String returns the current frame, one framed row per line.
func (c *Console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Console) frameLocked() string {
	return fmt.Sprintf("|%s|\n|%s|\n", arrows.Replace(c.rows[0]), arrows.Replace(c.rows[1]))
}

// Rows returns the current content of the display.
func (c *Console) Rows() [Rows]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}
