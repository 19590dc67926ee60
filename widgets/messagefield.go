// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

// MessageField shows a short notice in a coloured box, e.g. when requests are throttled.
type MessageField struct {
	theme *PlotTheme
}

func NewMessageField(theme *PlotTheme) *MessageField {
	return &MessageField{theme: theme}
}

func (f *MessageField) Layout(txt string, gtx layout.Context, th *material.Theme) layout.Dimensions {
	if txt == "" {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	lbl := material.Body1(th, txt)
	lbl.Color = f.theme.MessageTextColor
	gtx.Constraints.Min = image.Point{}
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	clipRect := image.Rectangle{Max: image.Point{X: gtx.Dp(50) + dims.Size.X, Y: gtx.Dp(40) + dims.Size.Y}}
	defer clip.Rect(clipRect).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, f.theme.MessageBgColor)

	textArea := op.Offset(image.Point{X: gtx.Dp(25), Y: (clipRect.Dy() - dims.Size.Y) / 2}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	textArea.Pop()
	return layout.Dimensions{Size: clipRect.Size()}
}
