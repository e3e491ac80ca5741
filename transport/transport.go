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

// Package transport defines the uniform bidirectional byte-stream
// abstraction shared by the three filter-adapter variants (spec §4.3):
// a spawned child process (stdio), a filesystem-pathed Unix socket, and
// a Linux abstract-namespace Unix socket discovered by prefix.
package transport

import (
	"context"
	"time"
)

// Connection is an ephemeral paired (reader, writer) over a single
// underlying byte stream, valid for the duration of one two-phase
// exchange (spec §2 Connection). It satisfies framing's deadliner
// interface so reads/writes can honor the 1000ms per-message budget.
type Connection interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetDeadline(t time.Time) error
	Close() error
}

// Transport opens and closes Connections for one filter adapter. Open
// may block on dialing, spawning, or resolving. The socket variants pass
// ctx to their dial; the stdio variant does not consult ctx, neither while
// waiting for its lease nor while spawning. Implementations are not
// required to be safe for concurrent
// Open calls — the adapter above serializes access per spec §4.3/§5.
type Transport interface {
	Open(ctx context.Context) (Connection, error)
	Close(conn Connection) error
}
