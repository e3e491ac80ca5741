/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package resolver

import (
	"os"
	"path/filepath"
	"testing"

	liberr "github.com/Mufanc/zynx/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestResolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Resolver Suite")
}

// fakeProcNetUnix writes contents to a temp file and points procNetUnixPath
// at it for the duration of the calling spec, restoring it afterwards.
func fakeProcNetUnix(contents string) {
	dir := GinkgoT().TempDir()
	path := filepath.Join(dir, "net_unix")
	Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())

	original := procNetUnixPath
	procNetUnixPath = path
	DeferCleanup(func() { procNetUnixPath = original })
}

// header mimics the column header line /proc/net/unix itself emits; this
// resolver skips it implicitly since its path column ("Path") fails the
// abstract-path check.
const header = "Num       RefCount Protocol Flags    Type St Inode Path"

var _ = Describe("Resolve", func() {
	It("picks the maximum seq among matching entries", func() {
		fakeProcNetUnix(header + "\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12345 @myapp_filter_100_aaa\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12346 @myapp_filter_300_zzz\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12347 @myapp_filter_200_bbb\n")

		name, err := Resolve("myapp_filter")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("myapp_filter_300_zzz"))
	})

	It("breaks equal-seq ties by the lexicographically greatest tail", func() {
		fakeProcNetUnix(header + "\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12345 @myapp_filter_100_aaa\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12346 @myapp_filter_200_bbb\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12347 @myapp_filter_200_ccc\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12348 @other_50_x\n")

		name, err := Resolve("myapp_filter")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("myapp_filter_200_ccc"))
	})

	It("ignores filesystem-pathed sockets and non-matching prefixes", func() {
		fakeProcNetUnix(header + "\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12345 /tmp/other.sock\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12346 @unrelated_1_aaa\n")

		_, err := Resolve("myapp_filter")
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.NoMatchingSocket)).To(BeTrue())
	})

	It("rejects entries whose tail contains disallowed characters", func() {
		fakeProcNetUnix(header + "\n" +
			"0000000000000000: 00000002 00000000 00010000 0001 01 12345 @myapp_filter_100_a.b\n")

		_, err := Resolve("myapp_filter")
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.NoMatchingSocket)).To(BeTrue())
	})

	It("returns NoMatchingSocket when /proc/net/unix has no abstract entries at all", func() {
		fakeProcNetUnix(header + "\n")

		_, err := Resolve("myapp_filter")
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.NoMatchingSocket)).To(BeTrue())
	})

	It("returns NoMatchingSocket when the proc file cannot be opened", func() {
		original := procNetUnixPath
		procNetUnixPath = filepath.Join(GinkgoT().TempDir(), "does-not-exist")
		DeferCleanup(func() { procNetUnixPath = original })

		_, err := Resolve("myapp_filter")
		Expect(err).To(HaveOccurred())
		Expect(liberr.HasCode(err, liberr.NoMatchingSocket)).To(BeTrue())
	})
})
