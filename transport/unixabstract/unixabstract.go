/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package unixabstract implements the transport.Transport variant that
// resolves a Linux abstract-namespace Unix socket by prefix and dials
// into it, fresh per exchange, with no fallback on a stale name
// (spec §4.3, UnixAbstract; spec §4.4).
package unixabstract

import (
	"context"
	"net"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/resolver"
	"github.com/Mufanc/zynx/transport"
)

// Config describes the abstract-namespace socket to discover and dial.
type Config struct {
	// Prefix is the socket-name prefix to resolve, e.g. "myapp_filter".
	Prefix string
}

// Validate reports whether c is usable to construct a Transport.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return liberr.ConfigParse.Errorf(nil, "unix_abstract transport requires a non-empty prefix")
	}
	return nil
}

// Transport resolves cfg.Prefix via resolver.Resolve on every Open call
// — the server may rotate sockets between forks — and dials whatever
// name that resolves to. A resolver miss or a dial failure against the
// resolved name is terminal for that exchange; there is no fallback to
// a second-newest socket.
type Transport struct {
	cfg Config
}

// New constructs a Transport for the given config, which must already
// have passed Validate.
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// Open resolves the current abstract socket name and dials it.
func (t *Transport) Open(ctx context.Context) (transport.Connection, error) {
	name, err := resolver.Resolve(t.cfg.Prefix)
	if err != nil {
		return nil, err
	}

	// Linux abstract-namespace addresses start with a NUL byte; for unix
	// sockets, net translates a leading '@' in the name into that NUL byte.
	addr := "@" + name

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", addr)
	if err != nil {
		return nil, liberr.ConnectFailed.Error(err)
	}
	return conn, nil
}

// Close closes a connection previously returned by Open.
func (t *Transport) Close(conn transport.Connection) error {
	return conn.Close()
}
