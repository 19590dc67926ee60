// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/stockval"
	"candlechart/widgets"
	"fmt"
	"math"
	"time"
)

var legendLabels = [...]string{"O", "H", "L", "C"}

type renderer struct {
	commandList
	v     *Viewport
	f     Frame
	s     InteractionState
	theme *widgets.PlotTheme
}

// Render converts the viewport into draw commands, back to front.
// It only reads its arguments. f needs to be the result of v.Frame() for the same pass.
func Render(v *Viewport, f Frame, s InteractionState, theme *widgets.PlotTheme) []DrawCmd {
	r := renderer{v: v, f: f, s: s, theme: theme}
	r.fillRect(LayerBackground, Rect{W: f.dims.width, H: f.dims.height}, theme.BackgroundColor)
	if len(v.candles) == 0 {
		r.paintStatus()
		return r.cmds
	}
	if f.IsEmpty() {
		return r.cmds
	}
	r.paintGrid()
	r.paintCandles()
	r.paintPriceAxis()
	r.paintTimeAxis()
	r.paintCrosshair()
	r.paintLegend()
	return r.cmds
}

func (r *renderer) paintStatus() {
	c := r.theme.StatusTextColor
	msg := r.v.status.Text()
	switch r.v.status.Kind {
	case DisplayEmpty, DisplayLoading:
	case DisplayReady:
		msg = DefaultEmptyMessage
	case DisplayError:
		c = r.theme.ErrorTextColor
	}
	r.text(LayerStatus, Pt(r.f.dims.width/2, r.f.dims.height/2), msg, AlignMiddle, FontStyle{Size: r.theme.StatusFontSize}, c)
}

func (r *renderer) paintGrid() {
	d := r.f.dims
	n := r.theme.GridLines
	for i := 0; i <= n; i++ {
		y := d.chartHeight * float64(i) / float64(n)
		r.line(LayerGrid, Pt(0, y), Pt(d.chartWidth, y), 1, r.theme.GridColor)
	}
}

func (r *renderer) paintCandles() {
	proj := r.f.proj
	bodyWidth := getCandleBodyWidth(proj.pixelsPerCandle)
	for i := r.f.First; i <= r.f.Last; i++ {
		c := r.v.candles[i]
		col := r.theme.GetCandleColor(c.IsGreen())
		x := proj.getXpos(i)
		r.line(LayerCandles, Pt(x, proj.getYpos(c.High)), Pt(x, proj.getYpos(c.Low)), 1, col)

		yOpen := proj.getYpos(c.Open)
		yClose := proj.getYpos(c.Close)
		// A doji still needs to be visible.
		height := math.Max(math.Abs(yClose-yOpen), 1)
		r.fillRect(LayerCandles, Rect{X: x - bodyWidth/2, Y: math.Min(yOpen, yClose), W: bodyWidth, H: height}, col)
	}
}

func (r *renderer) paintPriceAxis() {
	d := r.f.dims
	r.fillRect(LayerPriceAxis, Rect{X: d.chartWidth, W: RightMargin, H: d.height}, r.theme.BackgroundColor)
	r.line(LayerPriceAxis, Pt(d.chartWidth, 0), Pt(d.chartWidth, d.chartHeight), 1, r.theme.AxesColor)
	font := FontStyle{Size: r.theme.AxesFontSize}
	n := r.theme.GridLines
	for i := 0; i <= n; i++ {
		y := d.chartHeight * float64(i) / float64(n)
		label := formatPrice(r.f.proj.getPrice(y))
		r.text(LayerPriceAxis, Pt(d.chartWidth+axesTextMarginX, y+axesTextOffsetY), label, AlignStart, font, r.theme.AxesTextColor)
	}
	r.paintToggle(d.autoToggle, "A", r.v.autoScale)
	r.paintToggle(d.logToggle, "L", r.v.logScale)
}

func (r *renderer) paintToggle(area Rect, label string, active bool) {
	r.fillRect(LayerPriceAxis, area, r.theme.ToggleBgColor)
	center := area.Center()
	r.text(LayerPriceAxis, Pt(center.X, area.Y+dateTextOffsetY), label, AlignMiddle,
		FontStyle{Size: r.theme.ToggleFontSize, Bold: true}, r.theme.GetToggleColor(active))
}

func (r *renderer) paintTimeAxis() {
	d := r.f.dims
	r.fillRect(LayerTimeAxis, Rect{Y: d.chartHeight, W: d.chartWidth, H: BottomMargin}, r.theme.BackgroundColor)
	r.line(LayerTimeAxis, Pt(0, d.chartHeight), Pt(d.width, d.chartHeight), 1, r.theme.AxesColor)
}

// The candle below the pointer while hovering without dragging.
func (r *renderer) hoveredCandle() (int, bool) {
	if !r.s.PointerInside || r.s.Mode != DragNone || !r.f.dims.inPlotArea(r.s.PointerPos) {
		return 0, false
	}
	return r.f.proj.getCandleIndex(r.s.PointerPos.X, len(r.v.candles))
}

func (r *renderer) paintCrosshair() {
	d := r.f.dims
	p := r.s.PointerPos
	if !r.s.PointerInside || r.s.Mode != DragNone || !d.inPlotArea(p) {
		return
	}
	dashes := r.theme.CrosshairDashPattern
	r.dashedLine(LayerCrosshair, Pt(0, p.Y), Pt(d.chartWidth, p.Y), 1, dashes, r.theme.CrosshairColor)
	r.dashedLine(LayerCrosshair, Pt(p.X, 0), Pt(p.X, d.chartHeight), 1, dashes, r.theme.CrosshairColor)

	font := FontStyle{Size: r.theme.AxesFontSize}
	r.fillRect(LayerCrosshair, Rect{X: d.chartWidth, Y: p.Y - priceLabelHeight/2, W: RightMargin, H: priceLabelHeight}, r.theme.LabelBgColor)
	r.text(LayerCrosshair, Pt(d.chartWidth+axesTextMarginX, p.Y+axesTextOffsetY), formatPrice(r.f.proj.getPrice(p.Y)),
		AlignStart, font, r.theme.LabelTextColor)

	if i, ok := r.hoveredCandle(); ok {
		t := time.Unix(r.v.candles[i].Time, 0).In(r.v.location)
		r.fillRect(LayerCrosshair, Rect{X: p.X - dateLabelWidth/2, Y: d.chartHeight, W: dateLabelWidth, H: BottomMargin}, r.theme.LabelBgColor)
		r.text(LayerCrosshair, Pt(p.X, d.chartHeight+dateTextOffsetY), t.Format(r.v.timeframe.FormatString()),
			AlignMiddle, font, r.theme.LabelTextColor)
	}
}

func (r *renderer) paintLegend() {
	th := r.theme
	pos := Pt(legendPosX, legendPosY)
	r.text(LayerLegend, pos, r.v.symbol, AlignStart, FontStyle{Size: th.TitleFontSize, Bold: true}, th.LegendTitleColor)

	i, ok := r.hoveredCandle()
	if !ok {
		i = len(r.v.candles) - 1
	}
	c := r.v.candles[i]
	font := FontStyle{Size: th.LegendFontSize}
	pos.Y += legendLineHeight
	for col, value := range [...]float64{c.Open, c.High, c.Low, c.Close} {
		x := pos.X + float64(col)*legendColumnWidth
		r.text(LayerLegend, Pt(x, pos.Y), legendLabels[col], AlignStart, font, th.LegendLabelColor)
		r.text(LayerLegend, Pt(x+legendValueOffset, pos.Y), formatPrice(value), AlignStart, font, th.LegendValueColor)
	}
	delta, percentage := stockval.CandleChange(c.Open, c.Close)
	r.text(LayerLegend, Pt(pos.X+legendChangeOffset, pos.Y), fmt.Sprintf("%+.2f (%+.2f%%)", delta, percentage),
		AlignStart, font, th.GetCandleColor(c.IsGreen()))

	// Stale data stays visible below a loading or error message.
	if msg := r.v.status.Text(); len(msg) > 0 {
		c := th.StatusTextColor
		if r.v.status.IsError() {
			c = th.ErrorTextColor
		}
		pos.Y += legendLineHeight
		r.text(LayerLegend, pos, msg, AlignStart, font, c)
	}
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
