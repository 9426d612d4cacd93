package ticker

import "testing"

func TestRotator_Reset(t *testing.T) {
	testCases := []struct {
		count int
		want  Rotator
	}{
		{0, Rotator{Displayed: [2]int{0, 0}}},
		{1, Rotator{Displayed: [2]int{0, 0}}},
		{2, Rotator{Displayed: [2]int{0, 1}, Next: 0}},
		{3, Rotator{Displayed: [2]int{0, 1}, Next: 2}},
		{10, Rotator{Displayed: [2]int{0, 1}, Next: 2}},
	}
	for _, tc := range testCases {
		r := Rotator{Displayed: [2]int{7, 8}, Next: 5, Slot: 1}
		r.Reset(tc.count)
		if r != tc.want {
			t.Errorf("Reset(%d) = %+v, want %+v", tc.count, r, tc.want)
		}
	}
}

func TestRotator_TickIsInertUpToTwo(t *testing.T) {
	for count := 0; count <= 2; count++ {
		var r Rotator
		r.Reset(count)
		before := r
		for range 5 {
			if _, ok := r.Tick(count); ok {
				t.Errorf("Tick(%d) acted", count)
			}
		}
		if r != before {
			t.Errorf("Tick(%d) changed the window to %+v", count, r)
		}
	}
}

func TestRotator_TickThree(t *testing.T) {
	var r Rotator
	r.Reset(3)

	// each tick replaces one row, alternating, with the next index in 2,0,1,2,...
	steps := []struct {
		row       int
		displayed [2]int
		next      int
	}{
		{0, [2]int{2, 1}, 0},
		{1, [2]int{2, 0}, 1},
		{0, [2]int{1, 0}, 2},
		{1, [2]int{1, 2}, 0},
		{0, [2]int{0, 2}, 1},
		{1, [2]int{0, 1}, 2},
	}
	for i, step := range steps {
		row, ok := r.Tick(3)
		if !ok {
			t.Fatalf("step %d: Tick(3) did not act", i)
		}
		if row != step.row {
			t.Errorf("step %d: row = %d, want %d", i, row, step.row)
		}
		if r.Displayed != step.displayed {
			t.Errorf("step %d: Displayed = %v, want %v", i, r.Displayed, step.displayed)
		}
		if r.Next != step.next {
			t.Errorf("step %d: Next = %d, want %d", i, r.Next, step.next)
		}
	}
}
