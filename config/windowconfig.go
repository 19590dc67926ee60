// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image"
)

const (
	defaultWindowWidth  = 1200
	defaultWindowHeight = 800
	minWindowWidth      = 320
	minWindowHeight     = 240
)

type WindowConfig struct {
	Size image.Point `yaml:",omitempty"`
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Size: image.Pt(defaultWindowWidth, defaultWindowHeight),
	}
}

func (w *WindowConfig) sanitize() {
	if w.Size.X < minWindowWidth || w.Size.Y < minWindowHeight {
		w.Size = image.Pt(defaultWindowWidth, defaultWindowHeight)
	}
}
