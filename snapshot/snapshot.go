// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package snapshot

import (
	"candlechart/candles"
	"candlechart/stockplot"
	"candlechart/stockval"
	"candlechart/widgets"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Render draws the viewport headless, using the same draw commands as the window.
// The viewport is resized to the image size.
func Render(v *stockplot.Viewport, theme *widgets.PlotTheme, width, height int) *image.RGBA {
	v.Resize(float64(width), float64(height))
	cmds := stockplot.Render(v, v.Frame(), stockplot.InteractionState{}, theme)
	return Rasterize(cmds, width, height)
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func WritePNGFile(fileName string, img image.Image) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	err = WritePNG(file, img)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write snapshot file: %w", closeErr)
	}
	return err
}

// WriteTable prints the candles as text table, including the change of each candle.
func WriteTable(w io.Writer, data []stockval.Candle, timeframe candles.Timeframe, loc *time.Location) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Open", "High", "Low", "Close", "Change", "%"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range data {
		delta, percentage := stockval.CandleChange(c.Open, c.Close)
		table.Append([]string{
			time.Unix(c.Time, 0).In(loc).Format(timeframe.FormatString()),
			fmt.Sprintf("%.2f", c.Open),
			fmt.Sprintf("%.2f", c.High),
			fmt.Sprintf("%.2f", c.Low),
			fmt.Sprintf("%.2f", c.Close),
			fmt.Sprintf("%+.2f", delta),
			fmt.Sprintf("%+.2f", percentage),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "Candles", fmt.Sprint(len(data))})
	table.Render()
}
