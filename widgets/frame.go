// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

// Frame surrounds a widget with padding, an optional background and an optional border.
type Frame struct {
	Padding         unit.Dp
	CornerRadius    unit.Dp
	BorderWidth     unit.Dp
	BorderColor     color.NRGBA
	BackgroundColor color.NRGBA
}

func (f Frame) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(f.Padding).Layout(gtx, w)
	call := macro.Stop()

	if f.BackgroundColor.A > 0 {
		radius := gtx.Dp(f.CornerRadius)
		rect := clip.UniformRRect(image.Rectangle{Max: dims.Size}, radius)
		paint.FillShape(gtx.Ops, f.BackgroundColor, rect.Op(gtx.Ops))
	}
	call.Add(gtx.Ops)
	if f.BorderWidth > 0 {
		border := widget.Border{Color: f.BorderColor, Width: f.BorderWidth, CornerRadius: f.CornerRadius}
		border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return dims
		})
	}
	return dims
}
