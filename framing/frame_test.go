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

package framing_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/framing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFraming(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Framing Suite")
}

var _ = Describe("WriteMsg / ReadMsg round trip", func() {
	It("round-trips an arbitrary payload through a buffer", func() {
		var buf bytes.Buffer
		payload := []byte("hello, filter")

		Expect(framing.WriteMsg(&buf, payload)).To(Succeed())

		got, err := framing.ReadMsg(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(payload))
	})

	It("round-trips an empty payload", func() {
		var buf bytes.Buffer
		Expect(framing.WriteMsg(&buf, nil)).To(Succeed())

		got, err := framing.ReadMsg(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})

	It("writes a 4-byte little-endian length header", func() {
		var buf bytes.Buffer
		payload := make([]byte, 300)
		Expect(framing.WriteMsg(&buf, payload)).To(Succeed())

		header := buf.Bytes()[:4]
		Expect(binary.LittleEndian.Uint32(header)).To(Equal(uint32(300)))
	})

	It("rejects a payload already over the 1 MiB limit on write", func() {
		var buf bytes.Buffer
		oversized := make([]byte, framing.MaxFrameSize+1)
		err := framing.WriteMsg(&buf, oversized)
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.OversizedFrame)).To(BeTrue())
	})

	It("rejects a header claiming more than 1 MiB without consuming a payload", func() {
		var buf bytes.Buffer
		var header [4]byte
		binary.LittleEndian.PutUint32(header[:], framing.MaxFrameSize+1)
		buf.Write(header[:])
		buf.WriteString("this should never be read")

		got, err := framing.ReadMsg(&buf)
		Expect(got).To(BeNil())
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.OversizedFrame)).To(BeTrue())
		// the payload bytes after the oversized header must remain untouched
		Expect(buf.String()).To(Equal("this should never be read"))
	})

	It("reports ConnectionClosed on a short read at EOF", func() {
		var buf bytes.Buffer
		var header [4]byte
		binary.LittleEndian.PutUint32(header[:], 10)
		buf.Write(header[:])
		buf.WriteString("short")

		_, err := framing.ReadMsg(&buf)
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.ConnectionClosed)).To(BeTrue())
	})

	It("reports ConnectionClosed when the stream is empty", func() {
		var buf bytes.Buffer
		_, err := framing.ReadMsg(&buf)
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.ConnectionClosed)).To(BeTrue())
	})
})
