// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/stockval"
	"candlechart/widgets"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTheme() *widgets.PlotTheme {
	return widgets.NewDarkPlotTheme()
}

func render(v *Viewport, s InteractionState) []DrawCmd {
	return Render(v, v.Frame(), s, testTheme())
}

func commandsOf(cmds []DrawCmd, layer Layer) []DrawCmd {
	var result []DrawCmd
	for _, c := range cmds {
		if c.DrawLayer() == layer {
			result = append(result, c)
		}
	}
	return result
}

func textsOf(cmds []DrawCmd, layer Layer) []string {
	var result []string
	for _, c := range commandsOf(cmds, layer) {
		if t, ok := c.(Text); ok {
			result = append(result, t.Text)
		}
	}
	return result
}

func findText(cmds []DrawCmd, s string) (Text, bool) {
	for _, c := range cmds {
		if t, ok := c.(Text); ok && t.Text == s {
			return t, true
		}
	}
	return Text{}, false
}

// Pointer above the second of three candles.
func hoverSecondCandle() InteractionState {
	return InteractionState{PointerPos: Pt(65, 100), PointerInside: true}
}

func TestRenderNoData(t *testing.T) {
	v := newTestViewport(nil)
	cmds := render(v, InteractionState{})

	require.Len(t, cmds, 2)
	assert.Equal(t, FillRect{Layer: LayerBackground, Rect: Rect{W: testWidth, H: testHeight}, Color: testTheme().BackgroundColor}, cmds[0])
	status, ok := cmds[1].(Text)
	require.True(t, ok)
	assert.Equal(t, DefaultEmptyMessage, status.Text)
	assert.Equal(t, AlignMiddle, status.Align)
	assert.Equal(t, Pt(testWidth/2, testHeight/2), status.Pos)
}

func TestRenderInvalidData(t *testing.T) {
	v := newTestViewport([]stockval.Candle{{Time: testStartTime, Open: 1, High: 0.5, Low: 0, Close: 1}})
	cmds := render(v, InteractionState{})

	status := commandsOf(cmds, LayerStatus)
	require.Len(t, status, 1)
	assert.Equal(t, testTheme().ErrorTextColor, status[0].(Text).Color)
	assert.Empty(t, commandsOf(cmds, LayerCandles))
}

func TestRenderLoadingWithoutData(t *testing.T) {
	v := newTestViewport(nil)
	v.SetStatus(LoadingState("Loading AAPL..."))
	assert.Equal(t, []string{"Loading AAPL..."}, textsOf(render(v, InteractionState{}), LayerStatus))
}

func TestRenderZeroSize(t *testing.T) {
	v := NewViewport()
	v.LoadCandles(newThreeCandles())
	cmds := render(v, InteractionState{})
	assert.Len(t, cmds, 1)
}

func TestRenderLayerOrder(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	v.SetStatus(ErrorState("Connection Error: refused"))
	cmds := render(v, hoverSecondCandle())

	used := map[Layer]bool{}
	for i, c := range cmds {
		used[c.DrawLayer()] = true
		if i > 0 {
			assert.GreaterOrEqual(t, c.DrawLayer(), cmds[i-1].DrawLayer(), "command %d", i)
		}
	}
	for _, l := range []Layer{LayerBackground, LayerGrid, LayerCandles, LayerPriceAxis, LayerTimeAxis, LayerCrosshair, LayerLegend} {
		assert.True(t, used[l], "layer %d", l)
	}
	assert.False(t, used[LayerStatus])
}

func TestRenderGrid(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	grid := commandsOf(render(v, InteractionState{}), LayerGrid)

	require.Len(t, grid, testTheme().GridLines+1)
	first := grid[0].(Line)
	last := grid[len(grid)-1].(Line)
	assert.Equal(t, 0.0, first.From.Y)
	assert.Equal(t, testHeight-BottomMargin, last.From.Y)
	assert.Equal(t, testWidth-RightMargin, last.To.X)
}

func TestRenderCandles(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	f := v.Frame()
	cmds := commandsOf(Render(v, f, InteractionState{}, testTheme()), LayerCandles)
	th := testTheme()

	require.Len(t, cmds, 6)
	wick := cmds[0].(Line)
	assert.Equal(t, 1.0, wick.Width)
	assert.Equal(t, 55.0, wick.From.X)
	assert.InDelta(t, f.YposAt(12), wick.From.Y, 1e-9)
	assert.InDelta(t, f.YposAt(9), wick.To.Y, 1e-9)
	assert.Equal(t, th.CandleUpColor, wick.Color)

	body := cmds[1].(FillRect)
	assert.Equal(t, 51.0, body.Rect.X)
	assert.Equal(t, 8.0, body.Rect.W)
	assert.InDelta(t, f.YposAt(11), body.Rect.Y, 1e-9)
	assert.InDelta(t, f.YposAt(10)-f.YposAt(11), body.Rect.H, 1e-9)
}

func TestRenderDoji(t *testing.T) {
	data := newThreeCandles()
	data[1].Close = data[1].Open
	v := newTestViewport(data)
	cmds := commandsOf(render(v, InteractionState{}), LayerCandles)

	body := cmds[3].(FillRect)
	assert.Equal(t, 1.0, body.Rect.H)
	// Unchanged price counts as up.
	assert.Equal(t, testTheme().CandleUpColor, body.Color)
}

func TestRenderDownCandle(t *testing.T) {
	data := newThreeCandles()
	data[2].Close = 11.5
	v := newTestViewport(data)
	cmds := commandsOf(render(v, InteractionState{}), LayerCandles)
	assert.Equal(t, testTheme().CandleDownColor, cmds[5].(FillRect).Color)
}

func TestRenderPriceAxis(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	cmds := render(v, InteractionState{})
	labels := textsOf(cmds, LayerPriceAxis)

	assert.Contains(t, labels, "14.25")
	assert.Contains(t, labels, "8.75")
	assert.Contains(t, labels, "11.50")

	th := testTheme()
	a, ok := findText(cmds, "A")
	require.True(t, ok)
	assert.Equal(t, th.ToggleActiveColor, a.Color)
	l, ok := findText(cmds, "L")
	require.True(t, ok)
	assert.Equal(t, th.ToggleInactiveColor, l.Color)

	v.SetAutoScale(false)
	v.SetLogScale(true)
	cmds = render(v, InteractionState{})
	a, _ = findText(cmds, "A")
	l, _ = findText(cmds, "L")
	assert.Equal(t, th.ToggleInactiveColor, a.Color)
	assert.Equal(t, th.ToggleActiveColor, l.Color)
}

func TestRenderCrosshair(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	cmds := commandsOf(render(v, hoverSecondCandle()), LayerCrosshair)

	var dashed int
	for _, c := range cmds {
		if l, ok := c.(Line); ok {
			assert.Equal(t, testTheme().CrosshairDashPattern, l.Dashes)
			dashed++
		}
	}
	assert.Equal(t, 2, dashed)

	dates := textsOf(cmds, LayerCrosshair)
	assert.Contains(t, dates, "02 Jan 24")
}

func TestRenderCrosshairWithoutCandle(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	cmds := commandsOf(render(v, InteractionState{PointerPos: Pt(300, 100), PointerInside: true}), LayerCrosshair)

	// Price label only.
	assert.Len(t, textsOf(cmds, LayerCrosshair), 1)
}

func TestRenderCrosshairHidden(t *testing.T) {
	v := newTestViewport(newThreeCandles())

	dragging := hoverSecondCandle()
	dragging.Mode = DragPanning
	assert.Empty(t, commandsOf(render(v, dragging), LayerCrosshair))

	outside := hoverSecondCandle()
	outside.PointerInside = false
	assert.Empty(t, commandsOf(render(v, outside), LayerCrosshair))

	onAxis := InteractionState{PointerPos: Pt(530, 100), PointerInside: true}
	assert.Empty(t, commandsOf(render(v, onAxis), LayerCrosshair))
}

func TestRenderLegend(t *testing.T) {
	v := newTestViewport(newThreeCandles())

	last := textsOf(render(v, InteractionState{}), LayerLegend)
	assert.Equal(t, "AAPL", last[0])
	assert.Contains(t, last, "14.00")
	assert.NotContains(t, last, "10.00")
	assert.Contains(t, last, "+1.00 (+8.33%)")

	hovered := textsOf(render(v, hoverSecondCandle()), LayerLegend)
	assert.Contains(t, hovered, "10.00")
	assert.NotContains(t, hovered, "14.00")
	assert.Contains(t, hovered, "+1.00 (+9.09%)")

	dragging := hoverSecondCandle()
	dragging.Mode = DragScaling
	assert.Contains(t, textsOf(render(v, dragging), LayerLegend), "14.00")
}

func TestRenderLegendChangeColor(t *testing.T) {
	data := newThreeCandles()
	data[2].Close = 11.5
	v := newTestViewport(data)
	cmds := render(v, InteractionState{})

	change, ok := findText(cmds, "-0.50 (-4.17%)")
	require.True(t, ok)
	assert.Equal(t, testTheme().CandleDownColor, change.Color)
}

func TestRenderLegendChangeColorTinyLoss(t *testing.T) {
	data := newThreeCandles()
	data[2].Close = 11.996
	v := newTestViewport(data)

	var change Text
	for _, c := range commandsOf(render(v, InteractionState{}), LayerLegend) {
		if txt, ok := c.(Text); ok && strings.HasSuffix(txt.Text, "(-0.03%)") {
			change = txt
		}
	}
	require.NotEmpty(t, change.Text)
	assert.Equal(t, testTheme().CandleDownColor, change.Color)
}

func TestRenderStatusBanner(t *testing.T) {
	v := newTestViewport(newThreeCandles())
	v.SetStatus(ErrorState("Connection Error: refused"))
	cmds := render(v, InteractionState{})

	banner, ok := findText(cmds, "Connection Error: refused")
	require.True(t, ok)
	assert.Equal(t, LayerLegend, banner.Layer)
	assert.Equal(t, testTheme().ErrorTextColor, banner.Color)
	assert.Len(t, commandsOf(cmds, LayerCandles), 6)
}
