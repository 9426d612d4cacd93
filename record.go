package ticker

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

const (
	// MaxTickers is the capacity of the watch list.
	MaxTickers = 10
	// MaxSymbolLen is the longest symbol accepted by the store.
	MaxSymbolLen = 4

	MinUpdateInterval      = 60 * time.Second
	DefaultUpdateInterval  = 10 * time.Minute
	MinDisplayInterval     = time.Second
	DefaultDisplayInterval = 3 * time.Second

	// MaxInterval is the longest interval the region can hold: an int32
	// count of milliseconds.
	MaxInterval = math.MaxInt32 * time.Millisecond
)

var symbolRegex = regexp.MustCompile(`^[A-Z0-9]{1,4}$`)

// Record is a single watch entry.
type Record struct {
	Symbol      string
	Threshold   float32
	IsBuySignal bool // star the line when the price drops below Threshold
}

// Settings holds the two periodic intervals of the device.
type Settings struct {
	UpdateInterval  time.Duration // between two refresh cycles
	DisplayInterval time.Duration // between two rotation ticks
}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		UpdateInterval:  DefaultUpdateInterval,
		DisplayInterval: DefaultDisplayInterval,
	}
}

// Validate checks both intervals against their minimum and MaxInterval.
func (s Settings) Validate() error {
	if s.UpdateInterval > MaxInterval {
		return fmt.Errorf("update interval %v is above the maximum of %v", s.UpdateInterval, MaxInterval)
	}
	if s.DisplayInterval > MaxInterval {
		return fmt.Errorf("display interval %v is above the maximum of %v", s.DisplayInterval, MaxInterval)
	}
	if s.UpdateInterval < MinUpdateInterval {
		return fmt.Errorf("update interval %v is below the minimum of %v", s.UpdateInterval, MinUpdateInterval)
	}
	if s.DisplayInterval < MinDisplayInterval {
		return fmt.Errorf("display interval %v is below the minimum of %v", s.DisplayInterval, MinDisplayInterval)
	}
	return nil
}

// ValidateSymbol checks that symbol is 1 to 4 uppercase alphanumeric characters.
func ValidateSymbol(symbol string) error {
	if len(symbol) == 0 || len(symbol) > MaxSymbolLen {
		return fmt.Errorf("invalid length: must be 1 to %d characters, got %d", MaxSymbolLen, len(symbol))
	}
	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("invalid format: %q must be uppercase alphanumeric characters", symbol)
	}
	return nil
}

// ValidateThreshold checks that threshold is a finite number.
func ValidateThreshold(threshold float32) error {
	if t := float64(threshold); math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("invalid threshold %v: not a finite number", threshold)
	}
	return nil
}

// Interval returns n units as a duration. It fails when the result is
// negative or above MaxInterval, before the multiplication can overflow.
func Interval(n int64, unit time.Duration) (time.Duration, error) {
	if n < 0 || n > int64(MaxInterval/unit) {
		return 0, fmt.Errorf("interval of %d x %v is out of range [0, %v]", n, unit, MaxInterval)
	}
	return time.Duration(n) * unit, nil
}
