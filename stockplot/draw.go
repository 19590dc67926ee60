// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image/color"
)

// Layers in back to front order. Commands of a render pass never go back to a lower layer.
type Layer int

const (
	LayerBackground Layer = iota
	LayerStatus
	LayerGrid
	LayerCandles
	LayerPriceAxis
	LayerTimeAxis
	LayerCrosshair
	LayerLegend
)

type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignMiddle
	AlignEnd
)

type FontStyle struct {
	Size float64
	Bold bool
}

// DrawCmd is one of FillRect, Line or Text.
type DrawCmd interface {
	DrawLayer() Layer
}

type FillRect struct {
	Layer Layer
	Rect  Rect
	Color color.NRGBA
}

type Line struct {
	Layer  Layer
	From   Point
	To     Point
	Width  float64
	Dashes []float64 // nil for a solid line
	Color  color.NRGBA
}

// Text is anchored at its baseline. Pos.X is the start, middle or end depending on Align.
type Text struct {
	Layer Layer
	Pos   Point
	Text  string
	Align TextAlign
	Font  FontStyle
	Color color.NRGBA
}

func (c FillRect) DrawLayer() Layer { return c.Layer }
func (c Line) DrawLayer() Layer { return c.Layer }
func (c Text) DrawLayer() Layer { return c.Layer }

type commandList struct {
	cmds []DrawCmd
}

func (l *commandList) fillRect(layer Layer, r Rect, c color.NRGBA) {
	l.cmds = append(l.cmds, FillRect{Layer: layer, Rect: r, Color: c})
}

func (l *commandList) line(layer Layer, from, to Point, width float64, c color.NRGBA) {
	l.cmds = append(l.cmds, Line{Layer: layer, From: from, To: to, Width: width, Color: c})
}

func (l *commandList) dashedLine(layer Layer, from, to Point, width float64, dashes []float64, c color.NRGBA) {
	l.cmds = append(l.cmds, Line{Layer: layer, From: from, To: to, Width: width, Dashes: dashes, Color: c})
}

func (l *commandList) text(layer Layer, pos Point, s string, align TextAlign, font FontStyle, c color.NRGBA) {
	l.cmds = append(l.cmds, Text{Layer: layer, Pos: pos, Text: s, Align: align, Font: font, Color: c})
}
