// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image/color"

	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

type MenuEntry struct {
	Button *widget.Clickable
	Label  string
}

// NewMenu returns a flat menu without shadow.
func NewMenu(th *material.Theme, state *component.MenuState) component.MenuStyle {
	m := component.Menu(th, state)
	m.AmbientColor = th.Palette.ContrastBg
	m.PenumbraColor = color.NRGBA{}
	m.UmbraColor = color.NRGBA{}
	return m
}

// SetMenuEntries replaces the options of a menu, reusing the option slice.
func SetMenuEntries(th *material.Theme, state *component.MenuState, entries ...MenuEntry) {
	state.Options = state.Options[:0]
	for _, e := range entries {
		state.Options = append(state.Options, component.MenuItem(th, e.Button, e.Label).Layout)
	}
}
