// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package snapshot

import (
	"candlechart/stockplot"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Rasterize draws the commands in order into a new image.
// Text uses a fixed 7x13 bitmap font, font sizes are ignored.
func Rasterize(cmds []stockplot.DrawCmd, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case stockplot.FillRect:
			fillRect(img, c)
		case stockplot.Line:
			drawLine(img, c)
		case stockplot.Text:
			drawText(img, c)
		}
	}
	return img
}

func toImageRect(r stockplot.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)),
		int(math.Round(r.Y+r.H)),
	)
}

func fillRect(img *image.RGBA, c stockplot.FillRect) {
	r := toImageRect(c.Rect)
	// Keep sub-pixel rectangles visible.
	if r.Dx() == 0 && c.Rect.W > 0 {
		r.Max.X++
	}
	if r.Dy() == 0 && c.Rect.H > 0 {
		r.Max.Y++
	}
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c.Color), image.Point{}, draw.Over)
}

func drawLine(img *image.RGBA, c stockplot.Line) {
	if len(c.Dashes) == 0 {
		strokeSegment(img, c.From, c.To, c.Width, c.Color)
		return
	}
	dx, dy := c.To.X-c.From.X, c.To.Y-c.From.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	on := true
	pos := 0.0
	for i := 0; pos < length; i = (i + 1) % len(c.Dashes) {
		dash := c.Dashes[i]
		if dash <= 0 {
			return
		}
		end := math.Min(pos+dash, length)
		if on {
			from := stockplot.Pt(c.From.X+ux*pos, c.From.Y+uy*pos)
			to := stockplot.Pt(c.From.X+ux*end, c.From.Y+uy*end)
			strokeSegment(img, from, to, c.Width, c.Color)
		}
		on = !on
		pos = end
	}
}

// Fills the rectangle around the segment from a to b with the given width (flat caps).
func strokeSegment(img *image.RGBA, a, b stockplot.Point, width float64, c color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	width = math.Max(width, 1)
	// Normal vector scaled to half the width.
	nx, ny := -dy/length*width/2, dx/length*width/2

	bounds := img.Bounds()
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
	z.Draw(img, bounds, image.NewUniform(c), image.Point{})
}

func drawText(img *image.RGBA, c stockplot.Text) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c.Color), Face: basicfont.Face7x13}
	x := c.Pos.X
	switch c.Align {
	case stockplot.AlignStart:
	case stockplot.AlignMiddle:
		x -= float64(d.MeasureString(c.Text).Ceil()) / 2
	case stockplot.AlignEnd:
		x -= float64(d.MeasureString(c.Text).Ceil())
	}
	dot := fixed.Point26_6{X: fixed.I(int(math.Round(x))), Y: fixed.I(int(math.Round(c.Pos.Y)))}
	d.Dot = dot
	d.DrawString(c.Text)
	if c.Font.Bold {
		d.Dot = dot.Add(fixed.Point26_6{X: fixed.I(1)})
		d.DrawString(c.Text)
	}
}
