// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCandles(t *testing.T) {
	valid := []Candle{
		{Time: 100, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 200, Open: 11, High: 11, Low: 11, Close: 11},
	}
	assert.NoError(t, ValidateCandles(valid))
	assert.NoError(t, ValidateCandles(nil))

	err := ValidateCandles([]Candle{{Time: 1, Open: 10, High: 9, Low: 8, Close: 9}})
	assert.ErrorIs(t, err, ErrInvalidCandle)

	err = ValidateCandles([]Candle{
		{Time: 200, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 200, Open: 10, High: 12, Low: 9, Close: 11},
	})
	assert.ErrorIs(t, err, ErrInvalidCandle)

	err = ValidateCandles([]Candle{{Time: 1, Open: math.NaN(), High: 12, Low: 9, Close: 11}})
	assert.ErrorIs(t, err, ErrInvalidCandle)
}

func TestCandleChange(t *testing.T) {
	delta, percentage := CandleChange(10, 11)
	assert.InDelta(t, 1.0, delta, 1e-9)
	assert.InDelta(t, 10.0, percentage, 1e-9)

	delta, percentage = CandleChange(200, 150)
	assert.InDelta(t, -50.0, delta, 1e-9)
	assert.InDelta(t, -25.0, percentage, 1e-9)

	// Rounded to two digits.
	_, percentage = CandleChange(3, 4)
	assert.InDelta(t, 33.33, percentage, 1e-9)

	delta, percentage = CandleChange(0, 5)
	assert.InDelta(t, 5.0, delta, 1e-9)
	assert.Equal(t, 0.0, percentage)
}

func TestIsGreenCandle(t *testing.T) {
	assert.True(t, IsGreenCandle(10, 10))
	assert.True(t, IsGreenCandle(10, 11))
	assert.False(t, IsGreenCandle(10, 9))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1.0, 100.0))
	assert.Equal(t, 100.0, Clamp(120.0, 1.0, 100.0))
	assert.Equal(t, 7, Clamp(7, 1, 10))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTC/USDT", NormalizeSymbol(" btc/usdt "))
	assert.Equal(t, "ETH-USD", NormalizeSymbol("eth-usd!"))
}
