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

// Package adapter drives one filter module through the two-phase
// check exchange (spec §4.5): Idle -> Connected -> FastAnswered ->
// [Allow/Deny -> Idle | MoreInfo -> SlowAnswered -> Idle]. Every error at
// any step is swallowed into Deny; nothing an adapter does can ever
// surface past Check, by design of the fault-isolation invariant in
// spec §4.7/§5.
package adapter

import (
	"context"
	"sync"
	"time"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/framing"
	"github.com/Mufanc/zynx/logger"
	"github.com/Mufanc/zynx/modcfg"
	"github.com/Mufanc/zynx/transport"
	"github.com/Mufanc/zynx/transport/socketfile"
	"github.com/Mufanc/zynx/transport/stdio"
	"github.com/Mufanc/zynx/transport/unixabstract"
	"github.com/Mufanc/zynx/wire"
)

// SlowProvider lazily builds SlowArgs only when the filter asks for them
// (spec §4.5 step 7a), since that may require reading app JVM state.
type SlowProvider func() wire.CheckArgsSlow

// Adapter owns the transport for one filter module and serializes
// exchanges against it with a per-instance mutex (spec §5, Intra-adapter).
type Adapter struct {
	ModuleID string

	tr transport.Transport
	mu sync.Mutex
	lg logger.Logger
}

// New constructs an Adapter for moduleID from a validated FilterConfig.
// Exactly one of cfg's variant fields must be set; this is guaranteed by
// modcfg.Parse.
func New(moduleID string, cfg modcfg.FilterConfig, lg logger.Logger) *Adapter {
	var tr transport.Transport
	switch {
	case cfg.Stdio != nil:
		tr = stdio.New(*cfg.Stdio)
	case cfg.SocketFile != nil:
		tr = socketfile.New(*cfg.SocketFile)
	case cfg.UnixAbstract != nil:
		tr = unixabstract.New(*cfg.UnixAbstract)
	}
	return &Adapter{
		ModuleID: moduleID,
		tr:       tr,
		lg:       lg.WithModule(moduleID),
	}
}

// Check runs one full two-phase exchange and never returns an error: any
// failure collapses to wire.Deny, logged with the module id, the failing
// error kind, and elapsed time (spec §4.5 step 8, spec §7).
func (a *Adapter) Check(ctx context.Context, fast wire.CheckArgsFast, slow SlowProvider) wire.Verdict {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	verdict, err := a.exchange(ctx, fast, slow)
	if err != nil {
		kind := "unknown"
		if e := liberr.Get(err); e != nil {
			kind = e.Code().String()
		}
		a.lg.WithField("error_kind", kind).
			WithField("elapsed_ms", time.Since(start).Milliseconds()).
			Warn("adapter exchange failed, returning deny")
		return wire.Deny
	}
	return verdict
}

func (a *Adapter) exchange(ctx context.Context, fast wire.CheckArgsFast, slow SlowProvider) (wire.Verdict, error) {
	conn, err := a.tr.Open(ctx)
	if err != nil {
		return wire.Deny, err
	}
	defer func() { _ = a.tr.Close(conn) }()

	if err := framing.WriteMsg(conn, wire.MarshalCheckArgsFast(fast)); err != nil {
		return wire.Deny, err
	}

	payload, err := framing.ReadMsg(conn)
	if err != nil {
		return wire.Deny, err
	}
	resp, err := wire.UnmarshalCheckResponse(payload)
	if err != nil {
		return wire.Deny, err
	}

	switch resp.Result {
	case wire.Allow, wire.Deny:
		return resp.Result, nil

	case wire.MoreInfo:
		slowArgs := slow()
		if err := framing.WriteMsg(conn, wire.MarshalCheckArgsSlow(slowArgs)); err != nil {
			return wire.Deny, err
		}
		payload2, err := framing.ReadMsg(conn)
		if err != nil {
			return wire.Deny, err
		}
		resp2, err := wire.UnmarshalCheckResponse(payload2)
		if err != nil {
			return wire.Deny, err
		}
		if resp2.Result == wire.MoreInfo {
			return wire.Deny, liberr.ProtocolViolation.Errorf(nil, "more_info returned in slow phase")
		}
		return resp2.Result, nil
	}

	return wire.Deny, liberr.ProtocolViolation.Errorf(nil, "unrecognized verdict %d", resp.Result)
}
