// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"candlechart/stockplot"
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
)

// Maximum size of a single text label in pixels.
const maxLabelSize = 4096

func pt(p stockplot.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

// paintCommands translates draw commands into gio operations. Coordinates are pixels.
func paintCommands(gtx layout.Context, th *material.Theme, cmds []stockplot.DrawCmd) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case stockplot.FillRect:
			paintRect(gtx.Ops, c)
		case stockplot.Line:
			paintLine(gtx.Ops, c)
		case stockplot.Text:
			paintText(gtx, th, c)
		}
	}
}

func paintRect(ops *op.Ops, c stockplot.FillRect) {
	if c.Rect.W <= 0 || c.Rect.H <= 0 {
		return
	}
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(float32(c.Rect.X), float32(c.Rect.Y)))
	p.LineTo(f32.Pt(float32(c.Rect.X+c.Rect.W), float32(c.Rect.Y)))
	p.LineTo(f32.Pt(float32(c.Rect.X+c.Rect.W), float32(c.Rect.Y+c.Rect.H)))
	p.LineTo(f32.Pt(float32(c.Rect.X), float32(c.Rect.Y+c.Rect.H)))
	p.Close()
	paint.FillShape(ops, c.Color, clip.Outline{Path: p.End()}.Op())
}

func paintLine(ops *op.Ops, c stockplot.Line) {
	s := stroke.Stroke{
		Path: stroke.Path{
			Segments: []stroke.Segment{
				stroke.MoveTo(pt(c.From)),
				stroke.LineTo(pt(c.To)),
			},
		},
		Width: float32(c.Width),
		Cap:   stroke.FlatCap,
	}
	if len(c.Dashes) > 0 {
		dashes := make([]float32, 0, 2*len(c.Dashes))
		for _, d := range c.Dashes {
			dashes = append(dashes, float32(d))
		}
		// An odd number of entries is repeated, like a canvas dash pattern.
		if len(c.Dashes)%2 != 0 {
			dashes = append(dashes, dashes...)
		}
		s.Dashes = stroke.Dashes{Dashes: dashes}
	}
	paint.FillShape(ops, c.Color, s.Op(ops))
}

func paintText(gtx layout.Context, th *material.Theme, c stockplot.Text) {
	// Font sizes are pixels, just like all other coordinates.
	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp <= 0 {
		pxPerSp = 1
	}
	lbl := material.Label(th, unit.Sp(float32(c.Font.Size)/pxPerSp), c.Text)
	lbl.Color = c.Color
	lbl.MaxLines = 1
	if c.Font.Bold {
		lbl.Font.Weight = font.Bold
	}
	gtx.Constraints = layout.Constraints{Max: image.Pt(maxLabelSize, maxLabelSize)}

	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	x := c.Pos.X
	switch c.Align {
	case stockplot.AlignMiddle:
		x -= float64(dims.Size.X) / 2
	case stockplot.AlignEnd:
		x -= float64(dims.Size.X)
	}
	// Dimensions.Baseline is the distance from the bottom.
	y := c.Pos.Y - float64(dims.Size.Y-dims.Baseline)
	defer op.Offset(image.Pt(int(math.Round(x)), int(math.Round(y)))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
