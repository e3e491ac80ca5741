/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package zynxcfg_test

import (
	"testing"

	"github.com/Mufanc/zynx/zynxcfg"

	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestZynxCfg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ZynxCfg Suite")
}

var _ = Describe("RegisterFlag and Load", func() {
	It("defaults to the standard module root and log level when unset", func() {
		cmd := &spfcbr.Command{Use: "zynxd"}
		vpr := spfvpr.New()
		Expect(zynxcfg.RegisterFlag(cmd, vpr)).To(Succeed())

		cfg := zynxcfg.Load(vpr)
		Expect(cfg.ModuleRoot).To(Equal(zynxcfg.DefaultModuleRoot))
		Expect(cfg.LogLevel).To(Equal(zynxcfg.DefaultLogLevel))
	})

	It("picks up flag values once parsed", func() {
		cmd := &spfcbr.Command{Use: "zynxd"}
		vpr := spfvpr.New()
		Expect(zynxcfg.RegisterFlag(cmd, vpr)).To(Succeed())

		Expect(cmd.PersistentFlags().Set("module-root", "/custom/modules")).To(Succeed())
		Expect(cmd.PersistentFlags().Set("log-level", "debug")).To(Succeed())

		cfg := zynxcfg.Load(vpr)
		Expect(cfg.ModuleRoot).To(Equal("/custom/modules"))
		Expect(cfg.LogLevel).To(Equal("debug"))
	})
})
