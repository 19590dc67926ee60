// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"candlechart/candles"
	"slices"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/samber/lo"
)

type ToolbarActionKind int

const (
	ActionSelectSymbol ToolbarActionKind = iota
	ActionSelectTimeframe
	ActionRefresh
	ActionAutoScale
	ActionLogScale
)

// ToolbarAction is a user request originating from the toolbar.
type ToolbarAction struct {
	Kind      ToolbarActionKind
	Symbol    string
	Timeframe candles.Timeframe
	Enabled   bool
}

// Toolbar offers the watchlist, the quick timeframes, a refresh button and the scale toggles.
type Toolbar struct {
	symbols        []string
	timeframes     []candles.Timeframe
	symbolDropDown *DropDown
	tfDropDown     *DropDown
	refreshButton  widget.Clickable
	autoScale      widget.Bool
	logScale       widget.Bool
	frame          Frame
	actions        []ToolbarAction
}

func NewToolbar(watchlist []string, theme *PlotTheme) *Toolbar {
	timeframes := candles.ToolbarTimeframes()
	tfNames := lo.Map(timeframes, func(t candles.Timeframe, _ int) string {
		return t.UiString()
	})
	return &Toolbar{
		symbols:        slices.Clone(watchlist),
		timeframes:     timeframes,
		symbolDropDown: NewDropDown(watchlist, -1),
		tfDropDown:     NewDropDown(tfNames, -1),
		frame: Frame{
			Padding:         unit.Dp(2),
			BackgroundColor: theme.ToggleBgColor,
		},
	}
}

// Sync mirrors the chart state, so that the toolbar never shows stale selections.
func (t *Toolbar) Sync(symbol string, timeframe candles.Timeframe, autoScale bool, logScale bool) {
	if !slices.Contains(t.symbols, symbol) {
		t.symbols = append([]string{symbol}, t.symbols...)
		t.symbolDropDown.SetItems(t.symbols, 0)
	}
	t.symbolDropDown.SetSelectedIndex(slices.Index(t.symbols, symbol))
	t.tfDropDown.SetSelectedIndex(slices.Index(t.timeframes, timeframe))
	t.autoScale.Value = autoScale
	t.logScale.Value = logScale
}

// Update collects the actions triggered since the last call. Call before Layout.
func (t *Toolbar) Update(gtx layout.Context) []ToolbarAction {
	t.actions = t.actions[:0]
	if i := t.symbolDropDown.ClickedIndex(); i >= 0 && i < len(t.symbols) {
		t.actions = append(t.actions, ToolbarAction{Kind: ActionSelectSymbol, Symbol: t.symbols[i]})
	}
	if i := t.tfDropDown.ClickedIndex(); i >= 0 && i < len(t.timeframes) {
		t.actions = append(t.actions, ToolbarAction{Kind: ActionSelectTimeframe, Timeframe: t.timeframes[i]})
	}
	if t.refreshButton.Clicked(gtx) {
		t.actions = append(t.actions, ToolbarAction{Kind: ActionRefresh})
	}
	if t.autoScale.Update(gtx) {
		t.actions = append(t.actions, ToolbarAction{Kind: ActionAutoScale, Enabled: t.autoScale.Value})
	}
	if t.logScale.Update(gtx) {
		t.actions = append(t.actions, ToolbarAction{Kind: ActionLogScale, Enabled: t.logScale.Value})
	}
	return t.actions
}

func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	label := func(txt string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: 10, Right: 5}.Layout(gtx, material.Body1(th, txt).Layout)
		})
	}
	return t.frame.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			label("Symbol:"),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.symbolDropDown.Layout(th, gtx)
			}),
			label("Timeframe:"),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.tfDropDown.Layout(th, gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: 10}.Layout(gtx, material.Button(th, &t.refreshButton, "Refresh").Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: 10}.Layout(gtx, material.CheckBox(th, &t.autoScale, "Auto").Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: 10}.Layout(gtx, material.CheckBox(th, &t.logScale, "Log").Layout)
			}),
		)
	})
}
