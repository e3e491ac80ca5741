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

// Package stdio implements the transport.Transport variant that owns a
// long-lived child process, feeding it framed messages over its stdin and
// reading responses off its stdout (spec §4.3, Stdio).
package stdio

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/transport"
)

// Config describes how to launch the filter's child process.
type Config struct {
	// Path is the executable to spawn. Required.
	Path string
	// Args are passed to the child verbatim.
	Args []string
}

// Validate reports whether c is usable to construct a Transport.
func (c Config) Validate() error {
	if c.Path == "" {
		return liberr.ConfigParse.Errorf(nil, "stdio transport requires a non-empty path")
	}
	return nil
}

// Transport spawns path once and reuses the same child across many
// exchanges, respawning it at most once per Open call if it has died.
// Open yields an exclusive lease on the child's stdio pair; only one
// exchange may be in flight at a time.
type Transport struct {
	cfg Config

	mu  sync.Mutex // held for the duration of one leased exchange
	cmd *exec.Cmd
	in  *os.File // parent's write end of the child's stdin
	out *os.File // parent's read end of the child's stdout
	dead atomic.Bool
}

// New constructs a Transport for the given config, which must already
// have passed Validate.
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// Open blocks until it holds the exclusive stdio lease, (re)spawning the
// child if necessary, then returns a Connection bound to that lease.
func (t *Transport) Open(ctx context.Context) (transport.Connection, error) {
	t.mu.Lock()
	if err := t.ensureChild(); err != nil {
		t.mu.Unlock()
		return nil, err
	}
	return &leaseConn{t: t, in: t.in, out: t.out}, nil
}

// Close releases the exclusive lease acquired by Open; it does not kill
// the child, which is expected to persist across many exchanges.
func (t *Transport) Close(conn transport.Connection) error {
	return conn.Close()
}

// Shutdown terminates the child process, if any. It is not part of the
// transport.Transport interface — callers that own the adapter's full
// lifecycle invoke it directly during teardown.
func (t *Transport) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cmd == nil || t.cmd.Process == nil {
		return nil
	}
	return t.cmd.Process.Kill()
}

func (t *Transport) ensureChild() error {
	if t.cmd != nil && !t.dead.Load() {
		return nil
	}
	return t.spawn()
}

func (t *Transport) spawn() error {
	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return liberr.SpawnFailed.Error(err)
	}
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		_ = stdinR.Close()
		_ = stdinW.Close()
		return liberr.SpawnFailed.Error(err)
	}

	cmd := exec.Command(t.cfg.Path, t.cfg.Args...)
	cmd.Stdin = stdinR
	cmd.Stdout = stdoutW
	cmd.Stderr = os.Stderr
	cmd.Env = []string{} // empty, not nil: nil inherits the full parent environment

	if err := cmd.Start(); err != nil {
		_ = stdinR.Close()
		_ = stdinW.Close()
		_ = stdoutR.Close()
		_ = stdoutW.Close()
		return liberr.SpawnFailed.Error(err)
	}

	// the child owns these ends now; the parent only holds the other side
	_ = stdinR.Close()
	_ = stdoutW.Close()

	// close the previous child's fds before replacing them, or a respawn
	// leaks one pipe pair per dead child
	if t.in != nil {
		_ = t.in.Close()
	}
	if t.out != nil {
		_ = t.out.Close()
	}

	t.cmd = cmd
	t.in = stdinW
	t.out = stdoutR
	t.dead.Store(false)

	go func(c *exec.Cmd, flag *atomic.Bool) {
		_ = c.Wait()
		flag.Store(true)
	}(cmd, &t.dead)

	return nil
}

// leaseConn is the Connection handed out by one Open call. Closing it
// releases the Transport's mutex without touching the child.
type leaseConn struct {
	t   *Transport
	in  *os.File
	out *os.File
}

func (c *leaseConn) Read(p []byte) (int, error) {
	return c.out.Read(p)
}

func (c *leaseConn) Write(p []byte) (int, error) {
	return c.in.Write(p)
}

func (c *leaseConn) SetDeadline(deadline time.Time) error {
	if err := c.in.SetDeadline(deadline); err != nil {
		return err
	}
	return c.out.SetDeadline(deadline)
}

func (c *leaseConn) Close() error {
	c.t.mu.Unlock()
	return nil
}
