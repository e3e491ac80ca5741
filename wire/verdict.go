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

package wire

// Verdict is the three-valued response a filter gives for a fork event.
// MoreInfo is only meaningful in the fast phase (spec §4.5/§7); a MoreInfo
// seen in the slow phase is a protocol violation treated as Deny.
type Verdict uint32

const (
	Allow Verdict = 0
	Deny  Verdict = 1
	// MoreInfo, when returned for CheckArgsFast, asks the adapter to send
	// CheckArgsSlow on the same connection before a final verdict is given.
	MoreInfo Verdict = 2
)

var verdictNames = map[Verdict]string{
	Allow:    "allow",
	Deny:     "deny",
	MoreInfo: "more_info",
}

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if s, ok := verdictNames[v]; ok {
		return s
	}
	return "unknown"
}

// ParseVerdict recovers a Verdict from its wire value. It returns
// (Deny, false) for any value outside {0,1,2}, since an unrecognized
// verdict must never be treated as Allow.
func ParseVerdict(v uint32) (Verdict, bool) {
	switch Verdict(v) {
	case Allow, Deny, MoreInfo:
		return Verdict(v), true
	default:
		return Deny, false
	}
}
