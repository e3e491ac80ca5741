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

// Package wire implements the fixed, tag-length-value binary schema of
// spec §4.2/§6: PackageInfo, CheckArgsFast, CheckArgsSlow, CheckResponse,
// and the Verdict enum. Unknown fields are skipped on decode; unset
// optional fields are omitted on encode; repeated fields preserve order.
package wire

import (
	"bytes"
	"io"

	liberr "github.com/Mufanc/zynx/errors"
)

// wireType mirrors just enough of the protobuf tag scheme to make unknown
// fields skippable without knowing their Go type: varint for bool/uint32,
// length-delimited for strings, bytes and embedded messages.
type wireType uint8

const (
	wireVarint wireType = 0
	wireBytes  wireType = 2
)

func putTag(buf *bytes.Buffer, field uint32, wt wireType) {
	putUvarint(buf, uint64(field)<<3|uint64(wt))
}

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [10]byte
	n := 0
	for v >= 0x80 {
		tmp[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	tmp[n] = byte(v)
	buf.Write(tmp[:n+1])
}

func putBool(buf *bytes.Buffer, field uint32, v bool) {
	putTag(buf, field, wireVarint)
	if v {
		putUvarint(buf, 1)
	} else {
		putUvarint(buf, 0)
	}
}

func putUint32(buf *bytes.Buffer, field uint32, v uint32) {
	putTag(buf, field, wireVarint)
	putUvarint(buf, uint64(v))
}

func putString(buf *bytes.Buffer, field uint32, s string) {
	putTag(buf, field, wireBytes)
	putUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func putBytes(buf *bytes.Buffer, field uint32, b []byte) {
	putTag(buf, field, wireBytes)
	putUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

// reader walks a decoded payload field by field, tolerating and skipping
// any field number it doesn't recognize (spec §4.2).
type reader struct {
	b *bytes.Reader
}

func newReader(payload []byte) *reader {
	return &reader{b: bytes.NewReader(payload)}
}

func (r *reader) uvarint() (uint64, error) {
	var x uint64
	var s uint
	for {
		b, err := r.b.ReadByte()
		if err != nil {
			return 0, liberr.DecodeError.Error(err)
		}
		if b < 0x80 {
			if s >= 63 && b > 1 {
				return 0, liberr.DecodeError.Error(io.ErrUnexpectedEOF)
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
		if s >= 64 {
			return 0, liberr.DecodeError.Error(io.ErrUnexpectedEOF)
		}
	}
}

// tag returns (fieldNumber, wireType, ok). ok is false at end of payload.
func (r *reader) tag() (uint32, wireType, bool, error) {
	if r.b.Len() == 0 {
		return 0, 0, false, nil
	}
	v, err := r.uvarint()
	if err != nil {
		return 0, 0, false, err
	}
	return uint32(v >> 3), wireType(v & 0x7), true, nil
}

func (r *reader) bytesField() ([]byte, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.b.Len()) {
		return nil, liberr.DecodeError.Error(io.ErrUnexpectedEOF)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.b, buf); err != nil {
		return nil, liberr.DecodeError.Error(err)
	}
	return buf, nil
}

// skip discards the value that follows a tag of the given wire type, so
// unknown fields never desynchronize the cursor for the fields that follow.
func (r *reader) skip(wt wireType) error {
	switch wt {
	case wireVarint:
		_, err := r.uvarint()
		return err
	case wireBytes:
		_, err := r.bytesField()
		return err
	default:
		return liberr.DecodeError.Errorf(nil, "unknown wire type %d", wt)
	}
}
