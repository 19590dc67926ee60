// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"candlechart/stockplot"
	"candlechart/widgets"
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

const maxScrollDistance = 1 << 20

// ChartView connects a viewport to gio: it translates pointer input and paints
// the commands rendered for the viewport.
type ChartView struct {
	viewport        *stockplot.Viewport
	controller      *stockplot.Controller
	theme           *widgets.PlotTheme
	contextArea     component.ContextArea
	contextMenu     component.MenuState
	scrollToEndItem widget.Clickable
	autoScaleItem   widget.Clickable
	refreshItem     widget.Clickable
	refresh         bool
}

func NewChartView(v *stockplot.Viewport, theme *widgets.PlotTheme) *ChartView {
	return &ChartView{
		viewport:   v,
		controller: stockplot.NewController(),
		theme:      theme,
	}
}

// RefreshRequested returns true once after "Refresh" was selected in the context menu.
func (c *ChartView) RefreshRequested() bool {
	r := c.refresh
	c.refresh = false
	return r
}

func (c *ChartView) toChartEvent(e pointer.Event) (stockplot.Event, bool) {
	x, y := float64(e.Position.X), float64(e.Position.Y)
	switch e.Kind {
	case pointer.Press:
		// The secondary button opens the context menu.
		if !e.Buttons.Contain(pointer.ButtonPrimary) {
			return stockplot.Event{}, false
		}
		return stockplot.Press(x, y), true
	case pointer.Drag:
		return stockplot.Drag(x, y), true
	case pointer.Release, pointer.Cancel:
		return stockplot.Release(x, y), true
	case pointer.Move:
		return stockplot.Move(x, y), true
	case pointer.Leave:
		return stockplot.Leave(), true
	case pointer.Scroll:
		// Gio reports positive values when scrolling down, which zooms out.
		return stockplot.Scroll(x, y, -float64(e.Scroll.Y)), true
	}
	return stockplot.Event{}, false
}

func (c *ChartView) handleInput(gtx layout.Context) {
	width, height := c.viewport.Size()
	if size := gtx.Constraints.Max; float64(size.X) != width || float64(size.Y) != height {
		c.controller.Handle(c.viewport, stockplot.Resize(float64(size.X), float64(size.Y)))
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  c,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Move | pointer.Leave | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -maxScrollDistance, Max: maxScrollDistance},
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			if chartEvent, ok := c.toChartEvent(e); ok {
				c.controller.Handle(c.viewport, chartEvent)
			}
		}
	}
	if c.scrollToEndItem.Clicked(gtx) {
		c.viewport.ScrollToEnd()
	}
	if c.autoScaleItem.Clicked(gtx) {
		c.viewport.SetAutoScale(true)
	}
	if c.refreshItem.Clicked(gtx) {
		c.refresh = true
	}
}

func (c *ChartView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	c.handleInput(gtx)
	size := gtx.Constraints.Max

	widgets.SetMenuEntries(th, &c.contextMenu,
		widgets.MenuEntry{Button: &c.scrollToEndItem, Label: "Scroll to end"},
		widgets.MenuEntry{Button: &c.autoScaleItem, Label: "Auto scale"},
		widgets.MenuEntry{Button: &c.refreshItem, Label: "Refresh"},
	)

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
			cmds := stockplot.Render(c.viewport, c.viewport.Frame(), c.controller.State(), c.theme)
			paintCommands(gtx, th, cmds)
			event.Op(gtx.Ops, c)
			pointer.CursorCrosshair.Add(gtx.Ops)
			return layout.Dimensions{Size: size}
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return c.contextArea.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{}
				return widgets.NewMenu(th, &c.contextMenu).Layout(gtx)
			})
		}),
	)
}
