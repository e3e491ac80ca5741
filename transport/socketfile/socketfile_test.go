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

package socketfile_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	liberr "github.com/Mufanc/zynx/errors"
	"github.com/Mufanc/zynx/transport/socketfile"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSocketFile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SocketFile Transport Suite")
}

var _ = Describe("Config.Validate", func() {
	It("rejects an empty path", func() {
		Expect(socketfile.Config{}.Validate()).To(HaveOccurred())
	})

	It("accepts a non-empty path", func() {
		Expect(socketfile.Config{Path: "/tmp/zynx-test.sock"}.Validate()).To(Succeed())
	})
})

var _ = Describe("Transport", func() {
	It("reports ConnectFailed when nothing is listening", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing.sock")
		tr := socketfile.New(socketfile.Config{Path: path})

		_, err := tr.Open(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.ConnectFailed)).To(BeTrue())
	})

	It("dials a fresh connection per Open against a live listener", func() {
		path := filepath.Join(GinkgoT().TempDir(), "live.sock")
		ln, err := net.Listen("unix", path)
		Expect(err).NotTo(HaveOccurred())
		defer ln.Close()

		accepted := make(chan net.Conn, 2)
		go func() {
			for i := 0; i < 2; i++ {
				c, err := ln.Accept()
				if err != nil {
					return
				}
				accepted <- c
			}
		}()

		tr := socketfile.New(socketfile.Config{Path: path})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		conn1, err := tr.Open(ctx)
		Expect(err).NotTo(HaveOccurred())

		conn2, err := tr.Open(ctx)
		Expect(err).NotTo(HaveOccurred())

		var server1, server2 net.Conn
		Eventually(accepted).Should(Receive(&server1))
		Eventually(accepted).Should(Receive(&server2))

		Expect(conn1.Close()).To(Succeed())
		Expect(conn2.Close()).To(Succeed())
		_ = server1.Close()
		_ = server2.Close()
	})
})
