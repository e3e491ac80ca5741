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

import "bytes"

// PackageInfo describes one package running in the forked process.
type PackageInfo struct {
	PackageName string
	Debuggable  bool
	DataDir     string
	SeInfo      string
	Gids        []uint32
}

// CheckArgsFast is the cheap, always-sent first phase of a check exchange.
type CheckArgsFast struct {
	Uid            uint32
	Gid            uint32
	IsSystemServer bool
	IsChildZygote  bool
	PackageInfo    []PackageInfo
}

// CheckArgsSlow is only sent when the fast-phase response was MoreInfo.
type CheckArgsSlow struct {
	Fast        CheckArgsFast
	NiceName    *string
	AppDataDir  *string
}

// CheckResponse is what a filter replies with, for either phase.
type CheckResponse struct {
	Result Verdict
}

// Encode fields, per spec §6:
//   PackageInfo:     1 package_name:str   2 debuggable:bool
//                    3 data_dir:str       4 seinfo:str
//                    5 gids:repeated u32
//   CheckArgsFast:   1 uid:u32            2 gid:u32
//                    3 is_system_server:bool  4 is_child_zygote:bool
//                    5 package_info:repeated PackageInfo
//   CheckArgsSlow:   1 fast:CheckArgsFast
//                    2 nice_name:optional str  3 app_data_dir:optional str
//   CheckResponse:   1 result:enum{ALLOW=0, DENY=1, MORE_INFO=2}

// MarshalPackageInfo encodes p per its wire layout. The four scalar fields
// are always written, even when empty or false; Gids are written as one
// tag-value pair per element, preserving order.
func MarshalPackageInfo(p PackageInfo) []byte {
	var buf bytes.Buffer
	putString(&buf, 1, p.PackageName)
	putBool(&buf, 2, p.Debuggable)
	putString(&buf, 3, p.DataDir)
	putString(&buf, 4, p.SeInfo)
	for _, g := range p.Gids {
		putUint32(&buf, 5, g)
	}
	return buf.Bytes()
}

// UnmarshalPackageInfo decodes bytes produced by MarshalPackageInfo,
// skipping any field number it does not recognize.
func UnmarshalPackageInfo(payload []byte) (PackageInfo, error) {
	var p PackageInfo
	r := newReader(payload)
	for {
		field, wt, ok, err := r.tag()
		if err != nil {
			return p, err
		}
		if !ok {
			break
		}
		switch field {
		case 1:
			b, err := r.bytesField()
			if err != nil {
				return p, err
			}
			p.PackageName = string(b)
		case 2:
			v, err := r.uvarint()
			if err != nil {
				return p, err
			}
			p.Debuggable = v != 0
		case 3:
			b, err := r.bytesField()
			if err != nil {
				return p, err
			}
			p.DataDir = string(b)
		case 4:
			b, err := r.bytesField()
			if err != nil {
				return p, err
			}
			p.SeInfo = string(b)
		case 5:
			v, err := r.uvarint()
			if err != nil {
				return p, err
			}
			p.Gids = append(p.Gids, uint32(v))
		default:
			if err := r.skip(wt); err != nil {
				return p, err
			}
		}
	}
	return p, nil
}

// MarshalCheckArgsFast encodes f per its wire layout.
func MarshalCheckArgsFast(f CheckArgsFast) []byte {
	var buf bytes.Buffer
	putUint32(&buf, 1, f.Uid)
	putUint32(&buf, 2, f.Gid)
	putBool(&buf, 3, f.IsSystemServer)
	putBool(&buf, 4, f.IsChildZygote)
	for _, pi := range f.PackageInfo {
		putBytes(&buf, 5, MarshalPackageInfo(pi))
	}
	return buf.Bytes()
}

// UnmarshalCheckArgsFast decodes bytes produced by MarshalCheckArgsFast.
func UnmarshalCheckArgsFast(payload []byte) (CheckArgsFast, error) {
	var f CheckArgsFast
	r := newReader(payload)
	for {
		field, wt, ok, err := r.tag()
		if err != nil {
			return f, err
		}
		if !ok {
			break
		}
		switch field {
		case 1:
			v, err := r.uvarint()
			if err != nil {
				return f, err
			}
			f.Uid = uint32(v)
		case 2:
			v, err := r.uvarint()
			if err != nil {
				return f, err
			}
			f.Gid = uint32(v)
		case 3:
			v, err := r.uvarint()
			if err != nil {
				return f, err
			}
			f.IsSystemServer = v != 0
		case 4:
			v, err := r.uvarint()
			if err != nil {
				return f, err
			}
			f.IsChildZygote = v != 0
		case 5:
			b, err := r.bytesField()
			if err != nil {
				return f, err
			}
			pi, err := UnmarshalPackageInfo(b)
			if err != nil {
				return f, err
			}
			f.PackageInfo = append(f.PackageInfo, pi)
		default:
			if err := r.skip(wt); err != nil {
				return f, err
			}
		}
	}
	return f, nil
}

// MarshalCheckArgsSlow encodes s per its wire layout. NiceName/AppDataDir
// are omitted entirely when nil, per the optional-field encoding rule.
func MarshalCheckArgsSlow(s CheckArgsSlow) []byte {
	var buf bytes.Buffer
	putBytes(&buf, 1, MarshalCheckArgsFast(s.Fast))
	if s.NiceName != nil {
		putString(&buf, 2, *s.NiceName)
	}
	if s.AppDataDir != nil {
		putString(&buf, 3, *s.AppDataDir)
	}
	return buf.Bytes()
}

// UnmarshalCheckArgsSlow decodes bytes produced by MarshalCheckArgsSlow.
func UnmarshalCheckArgsSlow(payload []byte) (CheckArgsSlow, error) {
	var s CheckArgsSlow
	r := newReader(payload)
	for {
		field, wt, ok, err := r.tag()
		if err != nil {
			return s, err
		}
		if !ok {
			break
		}
		switch field {
		case 1:
			b, err := r.bytesField()
			if err != nil {
				return s, err
			}
			f, err := UnmarshalCheckArgsFast(b)
			if err != nil {
				return s, err
			}
			s.Fast = f
		case 2:
			b, err := r.bytesField()
			if err != nil {
				return s, err
			}
			v := string(b)
			s.NiceName = &v
		case 3:
			b, err := r.bytesField()
			if err != nil {
				return s, err
			}
			v := string(b)
			s.AppDataDir = &v
		default:
			if err := r.skip(wt); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// MarshalCheckResponse encodes r per its wire layout.
func MarshalCheckResponse(r CheckResponse) []byte {
	var buf bytes.Buffer
	putUint32(&buf, 1, uint32(r.Result))
	return buf.Bytes()
}

// UnmarshalCheckResponse decodes bytes produced by MarshalCheckResponse.
// An out-of-range result value decodes successfully as Deny, since the
// adapter treats any non-{Allow,Deny,MoreInfo} value the same as a
// protocol violation further up the stack.
func UnmarshalCheckResponse(payload []byte) (CheckResponse, error) {
	var resp CheckResponse
	r := newReader(payload)
	for {
		field, wt, ok, err := r.tag()
		if err != nil {
			return resp, err
		}
		if !ok {
			break
		}
		switch field {
		case 1:
			v, err := r.uvarint()
			if err != nil {
				return resp, err
			}
			verdict := Deny
			if v>>32 == 0 {
				verdict, _ = ParseVerdict(uint32(v))
			}
			resp.Result = verdict
		default:
			if err := r.skip(wt); err != nil {
				return resp, err
			}
		}
	}
	return resp, nil
}
