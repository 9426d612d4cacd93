package ticker

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"testing"
	"time"
)

// records returns n distinct records.
func records(n int) []Record {
	list := make([]Record, n)
	for i := range list {
		list[i] = Record{
			Symbol:      fmt.Sprintf("T%d", i),
			Threshold:   float32(i)*10.25 + 0.5,
			IsBuySignal: i%2 == 0,
		}
	}
	return list
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	settings := Settings{UpdateInterval: 2 * time.Minute, DisplayInterval: 5 * time.Second}
	for n := 0; n <= MaxTickers; n++ {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			want := records(n)
			b, err := Encode(want, settings)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(b) != RegionSize {
				t.Fatalf("len(Encode()) = %d, want %d", len(b), RegionSize)
			}
			got, gotSettings := Decode(b)
			if !slices.Equal(got, want) {
				t.Errorf("Decode() records = %v, want %v", got, want)
			}
			if gotSettings != settings {
				t.Errorf("Decode() settings = %v, want %v", gotSettings, settings)
			}
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	b, err := Encode([]Record{{Symbol: "SBER", Threshold: 1.5, IsBuySignal: true}}, DefaultSettings())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []byte{1, 'S', 'B', 'E', 'R', 0}
	want = binary.LittleEndian.AppendUint32(want, math.Float32bits(1.5))
	want = append(want, 1)
	if got := b[:len(want)]; !bytes.Equal(got, want) {
		t.Errorf("Encode() head = % x, want % x", got, want)
	}
	// everything up to the settings is zero.
	if i := slices.IndexFunc(b[len(want):RegionSize-8], func(c byte) bool { return c != 0 }); i >= 0 {
		t.Errorf("Encode() has a stray byte at offset %d", len(want)+i)
	}
	if got, want := int32(binary.LittleEndian.Uint32(b[RegionSize-8:])), int32(600000); got != want {
		t.Errorf("update interval = %d, want %d", got, want)
	}
	if got, want := int32(binary.LittleEndian.Uint32(b[RegionSize-4:])), int32(3000); got != want {
		t.Errorf("display interval = %d, want %d", got, want)
	}
}

func TestEncode_TooManyRecords(t *testing.T) {
	if _, err := Encode(records(MaxTickers+1), DefaultSettings()); err == nil {
		t.Error("Encode() with 11 records: expected an error")
	}
}

func TestEncode_IntervalOutOfRange(t *testing.T) {
	testCases := []struct {
		name     string
		settings Settings
	}{
		{"update too large", Settings{MaxInterval + time.Millisecond, DefaultDisplayInterval}},
		{"display too large", Settings{DefaultUpdateInterval, 40000 * time.Minute}},
		{"negative", Settings{-time.Second, DefaultDisplayInterval}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Encode(nil, tc.settings); err == nil {
				t.Errorf("Encode(%v) expected an error", tc.settings)
			}
		})
	}
}

func TestDecode_CountOutOfRange(t *testing.T) {
	for _, count := range []byte{11, 200, 0xff} {
		t.Run(fmt.Sprintf("count %d", count), func(t *testing.T) {
			b, err := Encode(records(3), Settings{UpdateInterval: 5 * time.Minute, DisplayInterval: 2 * time.Second})
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			b[0] = count
			got, settings := Decode(b)
			if len(got) != 0 {
				t.Errorf("Decode() = %d records, want none", len(got))
			}
			if settings != DefaultSettings() {
				t.Errorf("Decode() settings = %v, want defaults", settings)
			}
		})
	}
}

func TestDecode_SubMinimumInterval(t *testing.T) {
	testCases := []struct {
		name       string
		updateMs   int32
		displayMs  int32
		wantUpdate time.Duration
		wantDisp   time.Duration
	}{
		{"both valid", 120000, 2000, 2 * time.Minute, 2 * time.Second},
		{"update too small", 59999, 2000, DefaultUpdateInterval, 2 * time.Second},
		{"display too small", 120000, 999, 2 * time.Minute, DefaultDisplayInterval},
		{"both zero", 0, 0, DefaultUpdateInterval, DefaultDisplayInterval},
		{"negative", -1, -1000, DefaultUpdateInterval, DefaultDisplayInterval},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want := records(2)
			b, err := Encode(want, DefaultSettings())
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			binary.LittleEndian.PutUint32(b[RegionSize-8:], uint32(tc.updateMs))
			binary.LittleEndian.PutUint32(b[RegionSize-4:], uint32(tc.displayMs))

			got, s := Decode(b)
			if !slices.Equal(got, want) {
				t.Errorf("Decode() records = %v, want %v", got, want)
			}
			if s.UpdateInterval != tc.wantUpdate {
				t.Errorf("UpdateInterval = %v, want %v", s.UpdateInterval, tc.wantUpdate)
			}
			if s.DisplayInterval != tc.wantDisp {
				t.Errorf("DisplayInterval = %v, want %v", s.DisplayInterval, tc.wantDisp)
			}
		})
	}
}

func TestDecode_SymbolScanIsCapped(t *testing.T) {
	b := make([]byte, RegionSize)
	b[0] = 1
	// 12 characters without a NUL.
	copy(b[1:], "ABCDEFGHIJKL")

	got, _ := Decode(b)
	if len(got) != 1 {
		t.Fatalf("Decode() = %d records, want 1", len(got))
	}
	if got, want := got[0].Symbol, "ABCDEFGHIJ"; got != want {
		t.Errorf("Symbol = %q, want %q", got, want)
	}
}

func TestDecode_BlankRegion(t *testing.T) {
	for _, b := range [][]byte{nil, make([]byte, RegionSize), {0}} {
		got, s := Decode(b)
		if len(got) != 0 {
			t.Errorf("Decode(%d bytes) = %d records, want none", len(b), len(got))
		}
		if s != DefaultSettings() {
			t.Errorf("Decode(%d bytes) settings = %v, want defaults", len(b), s)
		}
	}
}
