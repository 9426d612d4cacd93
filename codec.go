package ticker

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// This file contains the codec for the non-volatile region of the device.
//
// The layout is the one of the device EEPROM image, all multi-byte values
// are little-endian:
//
//	0                  record count (0..MaxTickers)
//	per record         symbol bytes, NUL, float32 threshold (4 bytes), isBuySignal (1 byte)
//	RegionSize-8..-5   update interval in milliseconds (int32)
//	RegionSize-4..-1   display interval in milliseconds (int32)
//
// Every byte not used by the layout is zero.

const (
	// RegionSize is the size of the persisted region in bytes.
	RegionSize = 1024

	updateIntervalAddr  = RegionSize - 8
	displayIntervalAddr = RegionSize - 4

	// maxSymbolScan bounds the NUL scan of a symbol when decoding a corrupted region.
	maxSymbolScan = 10
)

// Encode returns the region image of records and settings.
func Encode(records []Record, s Settings) ([]byte, error) {
	if len(records) > MaxTickers {
		return nil, fmt.Errorf("cannot encode %d records, the region holds at most %d", len(records), MaxTickers)
	}
	b := make([]byte, RegionSize)
	addr := 0
	b[addr] = byte(len(records))
	addr++
	for _, r := range records {
		// symbol + NUL + threshold + flag
		if addr+len(r.Symbol)+1+4+1 > updateIntervalAddr {
			return nil, fmt.Errorf("record %q does not fit in the region", r.Symbol)
		}
		addr += copy(b[addr:], r.Symbol)
		b[addr] = 0
		addr++
		binary.LittleEndian.PutUint32(b[addr:], math.Float32bits(r.Threshold))
		addr += 4
		if r.IsBuySignal {
			b[addr] = 1
		}
		addr++
	}
	update, err := toMillis(s.UpdateInterval)
	if err != nil {
		return nil, fmt.Errorf("cannot encode update interval: %w", err)
	}
	display, err := toMillis(s.DisplayInterval)
	if err != nil {
		return nil, fmt.Errorf("cannot encode display interval: %w", err)
	}
	binary.LittleEndian.PutUint32(b[updateIntervalAddr:], uint32(update))
	binary.LittleEndian.PutUint32(b[displayIntervalAddr:], uint32(display))
	return b, nil
}

// Decode reads records and settings from a region image.
//
// Decode never fails: an out of range record count yields an empty list with
// default settings, and an interval below its minimum is replaced by its
// default. A buffer shorter than RegionSize is read as if padded with zeroes.
func Decode(b []byte) ([]Record, Settings) {
	if len(b) < RegionSize {
		padded := make([]byte, RegionSize)
		copy(padded, b)
		b = padded
	}

	count := int(b[0])
	if count > MaxTickers {
		return nil, DefaultSettings()
	}

	// readers past the records area return zeroes.
	addr := 1
	next := func() byte {
		if addr >= updateIntervalAddr {
			addr++
			return 0
		}
		c := b[addr]
		addr++
		return c
	}

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		symbol := make([]byte, 0, MaxSymbolLen)
		c := next()
		for c != 0 && len(symbol) < maxSymbolScan {
			symbol = append(symbol, c)
			c = next()
		}
		var raw [4]byte
		for j := range raw {
			raw[j] = next()
		}
		records = append(records, Record{
			Symbol:      string(symbol),
			Threshold:   math.Float32frombits(binary.LittleEndian.Uint32(raw[:])),
			IsBuySignal: next() == 1,
		})
	}

	s := Settings{
		UpdateInterval:  fromMillis(int32(binary.LittleEndian.Uint32(b[updateIntervalAddr:]))),
		DisplayInterval: fromMillis(int32(binary.LittleEndian.Uint32(b[displayIntervalAddr:]))),
	}
	if s.UpdateInterval < MinUpdateInterval {
		s.UpdateInterval = DefaultUpdateInterval
	}
	if s.DisplayInterval < MinDisplayInterval {
		s.DisplayInterval = DefaultDisplayInterval
	}
	return records, s
}

func toMillis(d time.Duration) (int32, error) {
	ms := d.Milliseconds()
	if ms < 0 || ms > math.MaxInt32 {
		return 0, fmt.Errorf("%v does not fit in the region", d)
	}
	return int32(ms), nil
}

func fromMillis(ms int32) time.Duration { return time.Duration(ms) * time.Millisecond }
