package ticker

// Rotator is the window of two records visible on the display.
//
// Displayed holds the record index bound to each row, Next the index
// introduced by the next tick and Slot the row it replaces.
type Rotator struct {
	Displayed [2]int
	Next      int
	Slot      int
}

// Reset rebinds the window for a store of count records.
//
// With a single record both rows show index 0. With no record the window is
// meaningless and the display shows the empty state instead.
func (r *Rotator) Reset(count int) {
	r.Displayed = [2]int{0, 0}
	r.Next = 0
	r.Slot = 0
	if count >= 2 {
		r.Displayed[1] = 1
		r.Next = 2 % count
	}
}

// Tick advances the window by one record and returns the row that changed.
// It does nothing, and returns false, when all records already fit on the
// display.
func (r *Rotator) Tick(count int) (row int, ok bool) {
	if count <= 2 {
		return 0, false
	}
	row = r.Slot
	r.Displayed[row] = r.Next
	r.Next = (r.Next + 1) % count
	r.Slot = 1 - r.Slot
	return row, true
}
