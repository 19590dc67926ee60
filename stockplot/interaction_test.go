// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanHorizontally(t *testing.T) {
	v := newTestViewport(newWaveCandles(100))
	c := NewController()
	offset := v.PixelOffset()

	assert.True(t, c.Handle(v, Press(300, 200)))
	assert.Equal(t, DragPanning, c.State().Mode)
	assert.True(t, c.Handle(v, Drag(250, 200)))
	assert.Equal(t, offset+50, v.PixelOffset())
	assert.True(t, v.IsAutoScale())

	c.Handle(v, Release(250, 200))
	assert.Equal(t, DragNone, c.State().Mode)
}

func TestPanVertically(t *testing.T) {
	v := newTestViewport(newWaveCandles(100))
	v.SetManualBounds(0, 375)
	c := NewController()

	c.Handle(v, Press(300, 200))
	assert.True(t, c.Handle(v, Drag(300, 160)))

	// Dragging up by 40px on a 375px chart shows prices 40 lower.
	minPrice, maxPrice := v.ManualBounds()
	assert.InDelta(t, -40.0, minPrice, 1e-9)
	assert.InDelta(t, 335.0, maxPrice, 1e-9)
}

func TestPanVerticallyForcesManualScale(t *testing.T) {
	v := newTestViewport(newWaveCandles(100))
	c := NewController()
	c.Handle(v, Press(300, 200))
	c.Handle(v, Drag(300, 210))
	assert.False(t, v.IsAutoScale())
}

func TestScaleDragZoomsIn(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	c := NewController()
	f := v.Frame()
	oldRange := f.MaxPriceVisible - f.MinPriceVisible
	oldCenter := (f.MaxPriceVisible + f.MinPriceVisible) / 2

	c.Handle(v, Press(530, 100))
	require.Equal(t, DragScaling, c.State().Mode)
	assert.False(t, v.IsAutoScale())

	assert.True(t, c.Handle(v, Drag(530, 150)))
	f = v.Frame()
	assert.InDelta(t, oldRange*0.85, f.MaxPriceVisible-f.MinPriceVisible, 1e-9)
	assert.InDelta(t, oldCenter, (f.MaxPriceVisible+f.MinPriceVisible)/2, 1e-9)
	assert.False(t, v.IsAutoScale())
}

func TestScaleDragZoomsOut(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	v.SetManualBounds(10, 20)
	c := NewController()

	c.Handle(v, Press(530, 100))
	c.Handle(v, Drag(530, 0))
	minPrice, maxPrice := v.ManualBounds()
	assert.InDelta(t, 13.0, maxPrice-minPrice, 1e-9)
}

func TestScaleDragLogScale(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	v.SetLogScale(true)
	v.SetManualBounds(1, 10000)
	c := NewController()

	c.Handle(v, Press(530, 100))
	c.Handle(v, Drag(530, 100+1000.0/3))
	// Factor 0, clamped to 0.1.
	minPrice, maxPrice := v.ManualBounds()
	assert.InDelta(t, 100/1.58489, minPrice, 0.01)
	assert.InDelta(t, 100*1.58489, maxPrice, 0.01)
}

func TestToggleButtons(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	c := NewController()
	dims := newDimensions(testWidth, testHeight)

	auto := dims.autoToggle.Center()
	assert.True(t, c.Handle(v, Press(auto.X, auto.Y)))
	assert.False(t, v.IsAutoScale())
	assert.Equal(t, DragNone, c.State().Mode)
	c.Handle(v, Release(auto.X, auto.Y))
	c.Handle(v, Press(auto.X, auto.Y))
	assert.True(t, v.IsAutoScale())

	logToggle := dims.logToggle.Center()
	assert.True(t, c.Handle(v, Press(logToggle.X, logToggle.Y)))
	assert.True(t, v.IsLogScale())
	assert.Equal(t, DragNone, c.State().Mode)

	// Consumed, no drag follows.
	offset := v.PixelOffset()
	assert.False(t, c.Handle(v, Drag(logToggle.X-100, logToggle.Y)))
	assert.Equal(t, offset, v.PixelOffset())
}

func TestWheelZoomKeepsAnchor(t *testing.T) {
	v := newTestViewport(newWaveCandles(300))
	c := NewController()

	for _, delta := range []float64{1, 1, -1, 3, -2, -1, -1} {
		const x = 213.0
		anchor := (v.PixelOffset() + x) / v.PixelsPerCandle()
		assert.True(t, c.Handle(v, Scroll(x, 100, delta)))
		assert.InDelta(t, x, anchor*v.PixelsPerCandle()-v.PixelOffset(), 1)
	}
}

func TestWheelZoomDirection(t *testing.T) {
	v := newTestViewport(newWaveCandles(100))
	c := NewController()

	c.Handle(v, Scroll(100, 100, 1))
	assert.InDelta(t, 11.0, v.PixelsPerCandle(), 1e-9)
	c.Handle(v, Scroll(100, 100, -1))
	assert.InDelta(t, 9.9, v.PixelsPerCandle(), 1e-9)

	assert.False(t, c.Handle(v, Scroll(100, 100, 0)))
	assert.InDelta(t, 9.9, v.PixelsPerCandle(), 1e-9)
}

func TestMoveAndLeave(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	c := NewController()

	assert.True(t, c.Handle(v, Move(60, 70)))
	assert.True(t, c.State().PointerInside)
	assert.Equal(t, Pt(60, 70), c.State().PointerPos)

	assert.True(t, c.Handle(v, Leave()))
	assert.False(t, c.State().PointerInside)
	assert.False(t, c.Handle(v, Leave()))
}

func TestDragWithoutPress(t *testing.T) {
	v := newTestViewport(newWaveCandles(100))
	c := NewController()
	offset := v.PixelOffset()

	assert.False(t, c.Handle(v, Drag(10, 10)))
	assert.Equal(t, offset, v.PixelOffset())
}

func TestResizeEvent(t *testing.T) {
	v := NewViewport()
	v.LoadCandles(newWaveCandles(100))
	c := NewController()

	assert.True(t, c.Handle(v, Resize(testWidth, testHeight)))
	w, h := v.Size()
	assert.Equal(t, testWidth, w)
	assert.Equal(t, testHeight, h)
	assert.Equal(t, 550.0, v.PixelOffset())
}
