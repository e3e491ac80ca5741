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

// Package policy fans one fork event out to every scanned adapter
// concurrently and collects their independent verdicts (spec §4.7, §5
// Inter-adapter). Combining the per-adapter verdicts into one decision
// is left to the caller; this package only guarantees that adapters
// never affect each other's outcome.
package policy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Mufanc/zynx/adapter"
	"github.com/Mufanc/zynx/wire"
)

// Result pairs one adapter's module id with the verdict it produced.
type Result struct {
	ModuleID string
	Verdict  wire.Verdict
}

// Engine holds the immutable set of adapters produced by a scan.
type Engine struct {
	adapters []*adapter.Adapter
}

// New constructs an Engine over the given adapters. The slice is never
// mutated after scan (spec §5, Shared resources), so Engine keeps its
// own copy defensively.
func New(adapters []*adapter.Adapter) *Engine {
	cp := make([]*adapter.Adapter, len(adapters))
	copy(cp, adapters)
	return &Engine{adapters: cp}
}

// Dispatch runs fast against every adapter concurrently, each with its
// own fault isolation: no adapter's failed exchange can affect another's
// verdict or cause Dispatch to return early. Panics are not recovered: a
// panic in slow or in an adapter goroutine is not turned into a verdict.
// slow is shared across adapters; it is invoked at most once per adapter,
// only if that adapter's fast phase asks for it.
//
// An errgroup.Group drives the fan-out for its WaitGroup mechanics, but
// every task function always returns nil: Adapter.Check
// already collapses every failure into wire.Deny, so there is never an
// error for the group to propagate, and sibling goroutines are never
// canceled on another's account.
func (e *Engine) Dispatch(ctx context.Context, fast wire.CheckArgsFast, slow adapter.SlowProvider) []Result {
	results := make([]Result, len(e.adapters))

	var g errgroup.Group
	for i, a := range e.adapters {
		i, a := i, a
		g.Go(func() error {
			results[i] = Result{
				ModuleID: a.ModuleID,
				Verdict:  a.Check(ctx, fast, slow),
			}
			return nil
		})
	}
	_ = g.Wait() // always nil: see Dispatch's doc comment

	return results
}
