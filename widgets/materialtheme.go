// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/widget/material"
)

func newShaper() *text.Shaper {
	return text.NewShaper(text.NoSystemFonts(), text.WithCollection(gofont.Collection()))
}

// The material theme follows the plot theme, so that toolbar and chart share their background.
func NewDarkMaterialTheme(plotTheme *PlotTheme) *material.Theme {
	th := material.NewTheme()
	th.Shaper = newShaper()
	th.Bg = plotTheme.BackgroundColor
	th.Fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	th.ContrastFg = th.Fg
	th.ContrastBg = color.NRGBA{R: 0x2b, G: 0x4f, B: 0x7e, A: 255}
	return th
}

func NewLightMaterialTheme(plotTheme *PlotTheme) *material.Theme {
	th := material.NewTheme()
	th.Shaper = newShaper()
	th.Bg = plotTheme.BackgroundColor
	return th
}
