// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candles

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

type Timeframe int32

const (
	OneMinute Timeframe = iota
	FiveMinutes
	FifteenMinutes
	ThirtyMinutes
	OneHour
	FourHours
	OneDay
	OneWeek
)

const NumTimeframes = OneWeek + 1

// Timeframe identifiers as used by the data backend.
var apiStrings = [NumTimeframes]string{"1m", "5m", "15m", "30m", "1h", "4h", "1d", "1w"}

var uiStrings = [NumTimeframes]string{"1 min", "5 min", "15 min", "30 min", "1 hour", "4 hours", "1 day", "1 week"}

// ParseTimeframe accepts backend identifiers like "4h" or "1d".
func ParseTimeframe(s string) (Timeframe, error) {
	i := lo.IndexOf(apiStrings[:], strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return OneDay, fmt.Errorf("unsupported timeframe %q", s)
	}
	return Timeframe(i), nil
}

// ToolbarTimeframes lists the timeframes offered as quick selection.
func ToolbarTimeframes() []Timeframe {
	return []Timeframe{OneDay, FourHours, OneHour, FifteenMinutes}
}

func (t Timeframe) IsValid() bool {
	return t >= 0 && t < NumTimeframes
}

func (t Timeframe) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("Timeframe(%d)", int32(t))
	}
	return apiStrings[t]
}

func (t Timeframe) UiString() string {
	if !t.IsValid() {
		return t.String()
	}
	return uiStrings[t]
}

// FormatString is the time layout of the crosshair date label.
func (t Timeframe) FormatString() string {
	switch t {
	case OneMinute, FiveMinutes, FifteenMinutes, ThirtyMinutes, OneHour, FourHours:
		return "Jan 02 15:04"
	case OneDay, OneWeek:
		return "02 Jan 06"
	default:
		panic("unsupported timeframe")
	}
}

func (t Timeframe) GetDuration() time.Duration {
	d, err := str2duration.ParseDuration(t.String())
	if err != nil {
		panic("unsupported timeframe")
	}
	return d
}

func (t Timeframe) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported timeframe %d", int32(t))
	}
	return []byte(t.String()), nil
}

func (t *Timeframe) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeframe(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
