// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image/color"
)

type PlotTheme struct {
	GridLines            int
	AxesFontSize         float64
	LegendFontSize       float64
	TitleFontSize        float64
	ToggleFontSize       float64
	StatusFontSize       float64
	BackgroundColor      color.NRGBA
	GridColor            color.NRGBA
	AxesColor            color.NRGBA
	AxesTextColor        color.NRGBA
	CandleUpColor        color.NRGBA
	CandleDownColor      color.NRGBA
	CrosshairColor       color.NRGBA
	CrosshairDashPattern []float64
	LabelBgColor         color.NRGBA
	LabelTextColor       color.NRGBA
	LegendTitleColor     color.NRGBA
	LegendLabelColor     color.NRGBA
	LegendValueColor     color.NRGBA
	ToggleBgColor        color.NRGBA
	ToggleActiveColor    color.NRGBA
	ToggleInactiveColor  color.NRGBA
	StatusTextColor      color.NRGBA
	ErrorTextColor       color.NRGBA
	MessageBgColor       color.NRGBA
	MessageTextColor     color.NRGBA
}

func newBasePlotTheme() PlotTheme {
	return PlotTheme{
		GridLines:            10,
		AxesFontSize:         10,
		LegendFontSize:       11,
		TitleFontSize:        14,
		ToggleFontSize:       12,
		StatusFontSize:       14,
		CrosshairDashPattern: []float64{4},
		LabelBgColor:         color.NRGBA{R: 0x36, G: 0x3a, B: 0x45, A: 255},
		LabelTextColor:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		CrosshairColor:       color.NRGBA{R: 0x78, G: 0x7b, B: 0x86, A: 255},
		ToggleActiveColor:    color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 255},
		ErrorTextColor:       color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 255},
		MessageBgColor:       color.NRGBA{R: 150, G: 0, B: 0, A: 250},
		MessageTextColor:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func NewDarkPlotTheme() *PlotTheme {
	th := newBasePlotTheme()
	th.BackgroundColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	th.GridColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	th.AxesColor = th.GridColor
	th.AxesTextColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	th.CandleUpColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	th.CandleDownColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	th.LegendTitleColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	th.LegendLabelColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	th.LegendValueColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	th.ToggleBgColor = color.NRGBA{R: 0x1e, G: 0x22, B: 0x2d, A: 255}
	th.ToggleInactiveColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	th.StatusTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	return &th
}

func NewLightPlotTheme() *PlotTheme {
	th := newBasePlotTheme()
	th.BackgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	th.GridColor = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	th.AxesColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	th.AxesTextColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	th.CandleUpColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	th.CandleDownColor = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 255}
	th.LegendTitleColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	th.LegendLabelColor = color.NRGBA{R: 0x77, G: 0x77, B: 0x77, A: 255}
	th.LegendValueColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	th.ToggleBgColor = color.NRGBA{R: 0xe8, G: 0xea, B: 0xef, A: 255}
	th.ToggleInactiveColor = color.NRGBA{R: 0x77, G: 0x77, B: 0x77, A: 255}
	th.StatusTextColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	return &th
}

func (th *PlotTheme) GetCandleColor(isGreenCandle bool) color.NRGBA {
	if isGreenCandle {
		return th.CandleUpColor
	}
	return th.CandleDownColor
}

func (th *PlotTheme) GetToggleColor(active bool) color.NRGBA {
	if active {
		return th.ToggleActiveColor
	}
	return th.ToggleInactiveColor
}
