// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"candlechart/cache"
	"candlechart/config"
	"candlechart/stockapi"
	"candlechart/stockplot"
	"candlechart/updater"
	"candlechart/widgets"
	"context"
	"image"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/rs/zerolog/log"
)

type StockApp struct {
	win            *app.Window
	windowSize     image.Point // in dp
	config         config.Config
	requester      stockapi.CandleRequester
	candleCache    cache.CandleCache
	updater        *updater.CandleUpdater
	viewport       *stockplot.Viewport
	chart          *ChartView
	toolbar        *widgets.Toolbar
	messageField   *widgets.MessageField
	plotTheme      *widgets.PlotTheme
	matTheme       *material.Theme
	refreshSeconds int
}

func NewStockApp(c config.Config, requester stockapi.CandleRequester, candleCache cache.CandleCache) *StockApp {
	a := &StockApp{
		win:         new(app.Window),
		config:      c,
		requester:   requester,
		candleCache: candleCache,
		viewport:    stockplot.NewViewport(),
	}
	a.updater = updater.NewCandleUpdater(requester, candleCache, a.win.Invalidate)
	return a
}

func (a *StockApp) Initialize(ctx context.Context) error {
	appConfig, err := a.config.Copy(false)
	if err != nil {
		return err
	}
	// Themes need to be set up first, because the widgets use them.
	if appConfig.LightTheme {
		a.plotTheme = widgets.NewLightPlotTheme()
		a.matTheme = widgets.NewLightMaterialTheme(a.plotTheme)
	} else {
		a.plotTheme = widgets.NewDarkPlotTheme()
		a.matTheme = widgets.NewDarkMaterialTheme(a.plotTheme)
	}
	a.chart = NewChartView(a.viewport, a.plotTheme)
	a.toolbar = widgets.NewToolbar(appConfig.Chart.Watchlist, a.plotTheme)
	a.messageField = widgets.NewMessageField(a.plotTheme)
	a.windowSize = appConfig.Window.Size
	a.refreshSeconds = appConfig.Chart.RefreshSeconds

	a.viewport.SetLogScale(appConfig.Chart.LogScale)
	if err = a.updater.Start(ctx, a.refreshSeconds); err != nil {
		return err
	}
	a.updater.SwitchSeries(a.viewport, stockapi.SeriesKey{
		Symbol:    appConfig.Chart.Symbol,
		Timeframe: appConfig.Chart.Timeframe,
	})
	return nil
}

func (a *StockApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	current := a.updater.Current()
	appConfig.Chart.Symbol = current.Symbol
	appConfig.Chart.Timeframe = current.Timeframe
	appConfig.Chart.LogScale = a.viewport.IsLogScale()
	appConfig.Window.Size = a.windowSize
	return a.config.Unlock(appConfig, false)
}

func (a *StockApp) Run(ctx context.Context) {
	a.win.Option(
		app.Title(a.config.GetAppName()),
		app.Size(unit.Dp(a.windowSize.X), unit.Dp(a.windowSize.Y)),
	)
	err := a.handleEvents(ctx)
	if err != nil {
		log.Error().Err(err).Msg("terminating with error")
	}
	a.terminate()
}

func (a *StockApp) handleEvents(ctx context.Context) error {
	var ops op.Ops
	for {
		switch e := a.win.Event().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.windowSize = image.Pt(int(gtx.Metric.PxToDp(e.Size.X)), int(gtx.Metric.PxToDp(e.Size.Y)))
			paint.Fill(gtx.Ops, a.matTheme.Bg)
			a.updater.Drain(a.viewport)
			a.handleToolbar(gtx)
			if a.chart.RefreshRequested() {
				a.updater.Refresh()
			}
			a.layout(gtx)
			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *StockApp) handleToolbar(gtx layout.Context) {
	current := a.updater.Current()
	for _, action := range a.toolbar.Update(gtx) {
		switch action.Kind {
		case widgets.ActionSelectSymbol:
			current.Symbol = action.Symbol
			a.updater.SwitchSeries(a.viewport, current)
		case widgets.ActionSelectTimeframe:
			current.Timeframe = action.Timeframe
			a.updater.SwitchSeries(a.viewport, current)
		case widgets.ActionRefresh:
			a.updater.Refresh()
		case widgets.ActionAutoScale:
			a.viewport.SetAutoScale(action.Enabled)
		case widgets.ActionLogScale:
			a.viewport.SetLogScale(action.Enabled)
		}
	}
	a.toolbar.Sync(current.Symbol, current.Timeframe, a.viewport.IsAutoScale(), a.viewport.IsLogScale())
}

func (a *StockApp) layout(gtx layout.Context) {
	layout.Stack{Alignment: layout.Center}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.toolbar.Layout(gtx, a.matTheme)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.chart.Layout(gtx, a.matTheme)
				}),
			)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			if a.requester.RemainingApiLimit() > 0 {
				return layout.Dimensions{}
			}
			return a.messageField.Layout("API limit exceeded. Requests are delayed.", gtx, a.matTheme)
		}),
	)
}

func (a *StockApp) terminate() {
	if err := a.saveConfiguration(); err != nil {
		log.Error().Err(err).Msg("error saving configuration")
	}
	a.updater.Shutdown()
}
