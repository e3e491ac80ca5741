/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package zynxcfg is the daemon-wide configuration surface: where to
// scan for modules and how verbosely to log. It follows the same
// RegisterFlag/BindPFlag pairing used by other components in this
// family, scoped to the handful of settings this daemon actually
// needs instead of a general component registry.
package zynxcfg

import (
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

const (
	keyModuleRoot = "module-root"
	keyLogLevel   = "log-level"

	// DefaultModuleRoot is where Android modules that opt into zynx
	// filtering are expected to live (spec §6).
	DefaultModuleRoot = "/data/adb/modules"
	// DefaultLogLevel matches logrus's own default.
	DefaultLogLevel = "info"
)

// Config is the resolved daemon-wide configuration.
type Config struct {
	// ModuleRoot is the directory scanner.Scan enumerates.
	ModuleRoot string
	// LogLevel is a logrus level name (e.g. "debug", "info", "warn").
	LogLevel string
}

// RegisterFlag adds this package's persistent flags to cmd and binds
// them into vpr via BindPFlag.
func RegisterFlag(cmd *spfcbr.Command, vpr *spfvpr.Viper) error {
	cmd.PersistentFlags().String(keyModuleRoot, DefaultModuleRoot, "root directory to scan for opted-in modules")
	cmd.PersistentFlags().String(keyLogLevel, DefaultLogLevel, "minimum log level to emit")

	if err := vpr.BindPFlag(keyModuleRoot, cmd.PersistentFlags().Lookup(keyModuleRoot)); err != nil {
		return err
	}
	return vpr.BindPFlag(keyLogLevel, cmd.PersistentFlags().Lookup(keyLogLevel))
}

// Load reads the bound flags (and any config file/env vpr has been
// pointed at) into a Config, applying defaults for anything unset.
func Load(vpr *spfvpr.Viper) Config {
	cfg := Config{
		ModuleRoot: vpr.GetString(keyModuleRoot),
		LogLevel:   vpr.GetString(keyLogLevel),
	}
	if cfg.ModuleRoot == "" {
		cfg.ModuleRoot = DefaultModuleRoot
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}
