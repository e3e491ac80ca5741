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

// Package framing implements the length-prefixed message framing described
// in spec §4.1: every message on the wire is a 4-byte little-endian length
// header followed by exactly that many payload bytes, bounded by a 1 MiB
// frame size and a 1000ms per-message deadline.
package framing

import (
	"encoding/binary"
	"io"
	"net"
	"time"

	liberr "github.com/Mufanc/zynx/errors"
)

// MaxFrameSize is the largest payload write_msg/read_msg will accept, per
// spec §4.1.
const MaxFrameSize = 1 << 20 // 1 MiB

// MessageDeadline is the wall-clock budget given to a single write_msg or
// read_msg call, per spec §4.1.
const MessageDeadline = 1000 * time.Millisecond

// deadliner is satisfied by net.Conn and by any pipe-backed stream that
// supports per-operation deadlines. Streams that don't support deadlines
// (e.g. os.Pipe on some platforms) can pass a no-op implementation.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// WriteMsg writes a single length-prefixed frame: a 4-byte little-endian
// length header followed by the full payload. Partial writes are retried
// until complete or the underlying stream fails. The write is bounded by
// MessageDeadline when w supports deadlines.
func WriteMsg(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return liberr.OversizedFrame.Errorf(nil, "payload of %d bytes exceeds %d byte limit", len(payload), MaxFrameSize)
	}

	if dl, ok := w.(deadliner); ok {
		_ = dl.SetDeadline(time.Now().Add(MessageDeadline))
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))

	if err := writeFull(w, header[:]); err != nil {
		return err
	}
	return writeFull(w, payload)
}

func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			if isTimeout(err) {
				return liberr.Timeout.Error(err)
			}
			return liberr.Transport.Error(err)
		}
		buf = buf[n:]
	}
	return nil
}

// ReadMsg reads exactly one length-prefixed frame: a 4-byte little-endian
// length header, then exactly that many payload bytes. A header exceeding
// MaxFrameSize is rejected with liberr.OversizedFrame without the payload
// being read. The read is bounded by MessageDeadline when r supports
// deadlines.
func ReadMsg(r io.Reader) ([]byte, error) {
	if dl, ok := r.(deadliner); ok {
		_ = dl.SetDeadline(time.Now().Add(MessageDeadline))
	}

	var header [4]byte
	if err := readFull(r, header[:]); err != nil {
		return nil, err
	}

	n := binary.LittleEndian.Uint32(header[:])
	if n > MaxFrameSize {
		return nil, liberr.OversizedFrame.Errorf(nil, "frame length %d exceeds %d byte limit", n, MaxFrameSize)
	}

	payload := make([]byte, n)
	if err := readFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return liberr.ConnectionClosed.Error(err)
	}
	if isTimeout(err) {
		return liberr.Timeout.Error(err)
	}
	return liberr.Transport.Error(err)
}

func isTimeout(err error) bool {
	if ne, ok := err.(net.Error); ok {
		return ne.Timeout()
	}
	type timeout interface{ Timeout() bool }
	if t, ok := err.(timeout); ok {
		return t.Timeout()
	}
	return false
}
