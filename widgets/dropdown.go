// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

type dropDownItem struct {
	text   string
	button *widget.Clickable
}

// DropDown is a button which opens a menu to select one of several entries.
type DropDown struct {
	items         []dropDownItem
	selectedIndex int
	clickedIndex  int
	menu          component.MenuState
	button        widget.Clickable
	toggled       bool
}

func NewDropDown(items []string, selectedIndex int) *DropDown {
	d := &DropDown{clickedIndex: -1}
	d.SetItems(items, selectedIndex)
	return d
}

// Replace all entries. Call from same goroutine as Layout.
func (d *DropDown) SetItems(items []string, selectedIndex int) {
	d.items = make([]dropDownItem, len(items))
	for i, t := range items {
		d.items[i] = dropDownItem{text: t, button: new(widget.Clickable)}
	}
	d.selectedIndex = selectedIndex
	d.clickedIndex = -1
	d.toggled = false
}

// Retrieve index of the last clicked entry. Call from same goroutine as Layout.
// Returns -1 if nothing has been clicked since the last call.
func (d *DropDown) ClickedIndex() int {
	c := d.clickedIndex
	d.clickedIndex = -1
	return c
}

// Set the currently selected item. Call from same goroutine as Layout.
func (d *DropDown) SetSelectedIndex(index int) {
	d.selectedIndex = index
}

func (d *DropDown) SelectedIndex() int {
	return d.selectedIndex
}

// Text of the entry at index, or an empty string if there is none.
func (d *DropDown) ItemText(index int) string {
	if index < 0 || index >= len(d.items) {
		return ""
	}
	return d.items[index].text
}

func (d *DropDown) Layout(th *material.Theme, gtx layout.Context) layout.Dimensions {
	entries := make([]MenuEntry, len(d.items))
	for i, m := range d.items {
		if m.button.Clicked(gtx) && d.toggled {
			d.clickedIndex = i
			d.toggled = false
			gtx.Execute(op.InvalidateCmd{})
		}
		entries[i] = MenuEntry{Button: m.button, Label: m.text}
	}
	SetMenuEntries(th, &d.menu, entries...)
	if d.button.Clicked(gtx) {
		gtx.Execute(key.FocusCmd{Tag: &d.button})
		d.toggled = !d.toggled
		gtx.Execute(op.InvalidateCmd{})
	} else if d.toggled && !gtx.Focused(&d.button) {
		d.toggled = false
		gtx.Execute(op.InvalidateCmd{})
	}

	buttonWidget := func(gtx layout.Context) layout.Dimensions {
		button := material.Button(th, &d.button, d.ItemText(d.selectedIndex))
		return layout.Inset{Top: 4, Right: 1, Bottom: 4, Left: 1}.Layout(gtx, button.Layout)
	}
	if !d.toggled || len(d.items) == 0 {
		return buttonWidget(gtx)
	}

	// The opened menu is drawn on top of everything else, but only the button takes up space.
	var buttonDims layout.Dimensions
	macro := op.Record(gtx.Ops)
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			buttonDims = buttonWidget(gtx)
			return buttonDims
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: 2}.Layout(gtx, NewMenu(th, &d.menu).Layout)
		}),
	)
	op.Defer(gtx.Ops, macro.Stop())
	return buttonDims
}
