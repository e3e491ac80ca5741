/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

// Package logger is a thin, logrus-backed structured logger for the policy
// adapter subsystem. Every adapter-boundary failure is logged with the
// module id, the error kind, and elapsed time (spec §7).
package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging surface used throughout zynx.
type Logger interface {
	WithModule(moduleID string) Logger
	WithField(key string, val any) Logger
	WithFields(fields map[string]any) Logger

	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type lgr struct {
	entry *logrus.Entry
}

func (l *lgr) WithModule(moduleID string) Logger {
	return &lgr{entry: l.entry.WithField("module_id", moduleID)}
}

func (l *lgr) WithField(key string, val any) Logger {
	return &lgr{entry: l.entry.WithField(key, val)}
}

func (l *lgr) WithFields(fields map[string]any) Logger {
	return &lgr{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *lgr) Debug(msg string) { l.entry.Debug(msg) }
func (l *lgr) Info(msg string)  { l.entry.Info(msg) }
func (l *lgr) Warn(msg string)  { l.entry.Warn(msg) }
func (l *lgr) Error(msg string) { l.entry.Error(msg) }

// New wraps a *logrus.Logger into a Logger. Pass nil to get logrus's
// standard logger.
func New(base *logrus.Logger) Logger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &lgr{entry: logrus.NewEntry(base)}
}

var (
	defOnce sync.Once
	def     Logger
)

// Default returns a process-wide Logger backed by logrus's standard logger,
// so the library is usable before an external collaborator installs its own
// configured sink.
func Default() Logger {
	defOnce.Do(func() {
		def = New(nil)
	})
	return def
}
