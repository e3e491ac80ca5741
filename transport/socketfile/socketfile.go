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

// Package socketfile implements the transport.Transport variant that
// dials a filesystem-pathed Unix stream socket, fresh per exchange
// (spec §4.3, SocketFile).
package socketfile

import (
	"context"
	"net"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/transport"
)

// Config describes the filesystem Unix socket to dial.
type Config struct {
	// Path is the socket's filesystem path. Required.
	Path string
}

// Validate reports whether c is usable to construct a Transport.
func (c Config) Validate() error {
	if c.Path == "" {
		return liberr.ConfigParse.Errorf(nil, "socket_file transport requires a non-empty path")
	}
	return nil
}

// Transport dials a fresh connection to cfg.Path for every Open call.
type Transport struct {
	cfg Config
}

// New constructs a Transport for the given config, which must already
// have passed Validate.
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// Open dials a new connection to the configured socket path.
func (t *Transport) Open(ctx context.Context) (transport.Connection, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", t.cfg.Path)
	if err != nil {
		return nil, liberr.ConnectFailed.Error(err)
	}
	return conn, nil
}

// Close closes a connection previously returned by Open.
func (t *Transport) Close(conn transport.Connection) error {
	return conn.Close()
}
