/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package scanner performs the one-shot module discovery pass described
// in spec §4.6: enumerate immediate subdirectories of a module root,
// skip disabled or non-opted-in modules, parse the rest, and hand back
// one adapter.Adapter per successfully-parsed module.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/Mufanc/zynx/adapter"
	"github.com/Mufanc/zynx/logger"
	"github.com/Mufanc/zynx/modcfg"
)

const (
	disableMarker = "disable"
	configName    = "zynx-configs.toml"
)

// Scan enumerates immediate subdirectories of root and returns one
// Adapter per module that opts in with a valid zynx-configs.toml. Every
// failure is logged and the offending module is skipped; Scan itself
// never fails (spec §4.6, §7: configuration errors are surfaced at scan
// time only, via log + skip, never fatal to the daemon).
func Scan(root string, lg logger.Logger) []*adapter.Adapter {
	entries, err := os.ReadDir(root)
	if err != nil {
		lg.WithField("root", root).WithField("error", err.Error()).
			Error("module scan: cannot read module root")
		return nil
	}

	var adapters []*adapter.Adapter
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		moduleID := entry.Name()
		moduleDir := filepath.Join(root, moduleID)
		moduleLog := lg.WithField("module_id", moduleID)

		if _, err := os.Stat(filepath.Join(moduleDir, disableMarker)); err == nil {
			continue
		}

		configPath := filepath.Join(moduleDir, configName)
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				moduleLog.WithField("error", err.Error()).Warn("module scan: cannot read config, skipping")
			}
			continue
		}

		cfg, err := modcfg.Parse(data)
		if err != nil {
			moduleLog.WithField("error", err.Error()).Warn("module scan: invalid config, skipping")
			continue
		}

		adapters = append(adapters, adapter.New(moduleID, cfg, lg))
	}
	return adapters
}
