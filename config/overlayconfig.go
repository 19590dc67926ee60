// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

// OverlayConfig applies overrides (environment, command line) on top of another configuration.
// Copies contain the overrides, while Lock and Unlock operate on the stored values only.
type OverlayConfig struct {
	base  Config
	apply func(*AppConfig) error
}

func NewOverlayConfig(base Config, apply func(*AppConfig) error) Config {
	return &OverlayConfig{base: base, apply: apply}
}

func (o *OverlayConfig) GetAppName() string {
	return o.base.GetAppName()
}

func (o *OverlayConfig) Lock() (*AppConfig, error) {
	return o.base.Lock()
}

func (o *OverlayConfig) Unlock(c *AppConfig, forceWriting bool) error {
	return o.base.Unlock(c, forceWriting)
}

func (o *OverlayConfig) Copy(forceReading bool) (AppConfig, error) {
	c, err := o.base.Copy(forceReading)
	if err != nil {
		return AppConfig{}, err
	}
	if err = o.apply(&c); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}
