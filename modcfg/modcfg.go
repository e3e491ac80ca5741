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

// Package modcfg parses a single module's zynx-configs.toml (spec §6):
// a [filter] section naming one of three transport variants plus that
// variant's own keys. Unknown keys are tolerated for forward
// compatibility; a missing or inconsistent required key is a
// liberr.ConfigParse error, which the scanner treats as skip-and-log.
package modcfg

import (
	"github.com/pelletier/go-toml/v2"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/transport/socketfile"
	"github.com/Mufanc/zynx/transport/stdio"
	"github.com/Mufanc/zynx/transport/unixabstract"
)

const (
	typeStdio        = "stdio"
	typeSocketFile   = "socket_file"
	typeUnixAbstract = "unix_abstract"
)

// rawDoc mirrors the on-disk TOML shape; additional keys decode into
// nothing and are silently dropped, satisfying the "tolerated" rule.
type rawDoc struct {
	Filter rawFilter `toml:"filter"`
}

type rawFilter struct {
	Type   string   `toml:"type"`
	Path   string   `toml:"path"`
	Args   []string `toml:"args"`
	Prefix string   `toml:"prefix"`
}

// FilterConfig is the parsed, validated [filter] section. Exactly one of
// Stdio, SocketFile, UnixAbstract is non-nil.
type FilterConfig struct {
	Stdio        *stdio.Config
	SocketFile   *socketfile.Config
	UnixAbstract *unixabstract.Config
}

// Parse decodes and validates a zynx-configs.toml document's [filter]
// section.
func Parse(data []byte) (FilterConfig, error) {
	var doc rawDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return FilterConfig{}, liberr.ConfigParse.Error(err)
	}
	return fromRaw(doc.Filter)
}

func fromRaw(f rawFilter) (FilterConfig, error) {
	switch f.Type {
	case typeStdio:
		cfg := stdio.Config{Path: f.Path, Args: f.Args}
		if err := cfg.Validate(); err != nil {
			return FilterConfig{}, err
		}
		return FilterConfig{Stdio: &cfg}, nil

	case typeSocketFile:
		cfg := socketfile.Config{Path: f.Path}
		if err := cfg.Validate(); err != nil {
			return FilterConfig{}, err
		}
		return FilterConfig{SocketFile: &cfg}, nil

	case typeUnixAbstract:
		cfg := unixabstract.Config{Prefix: f.Prefix}
		if err := cfg.Validate(); err != nil {
			return FilterConfig{}, err
		}
		return FilterConfig{UnixAbstract: &cfg}, nil

	case "":
		return FilterConfig{}, liberr.ConfigParse.Errorf(nil, "[filter] section is missing a type")

	default:
		return FilterConfig{}, liberr.ConfigParse.Errorf(nil, "unknown filter type %q", f.Type)
	}
}
