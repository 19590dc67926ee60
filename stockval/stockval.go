// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidCandle = errors.New("invalid candle")

// Candle is a single OHLC bar. Time is the start of the bar in epoch seconds.
type Candle struct {
	Time  int64   `json:"time" yaml:"time"`
	Open  float64 `json:"open" yaml:"open"`
	High  float64 `json:"high" yaml:"high"`
	Low   float64 `json:"low" yaml:"low"`
	Close float64 `json:"close" yaml:"close"`
}

func (c Candle) Timestamp() time.Time {
	return time.Unix(c.Time, 0)
}

func (c Candle) IsGreen() bool {
	return IsGreenCandle(c.Open, c.Close)
}

func (c Candle) Validate() error {
	for _, v := range [...]float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite price", ErrInvalidCandle)
		}
	}
	if c.Low > min(c.Open, c.Close) || max(c.Open, c.Close) > c.High {
		return fmt.Errorf("%w: prices out of order (o=%g h=%g l=%g c=%g)", ErrInvalidCandle, c.Open, c.High, c.Low, c.Close)
	}
	return nil
}

// ValidateCandles checks every candle and that time is strictly increasing.
func ValidateCandles(data []Candle) error {
	for i := range data {
		if err := data[i].Validate(); err != nil {
			return fmt.Errorf("candle %d: %w", i, err)
		}
		if i > 0 && data[i].Time <= data[i-1].Time {
			return fmt.Errorf("candle %d: %w: time is not increasing", i, ErrInvalidCandle)
		}
	}
	return nil
}

var symbolRegex = regexp.MustCompile(`[^\p{L}\p{N}/\-.]+`)

// NormalizeSymbol returns the upper case symbol without whitespace or special characters.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(symbolRegex.ReplaceAllString(strings.TrimSpace(s), ""))
}
