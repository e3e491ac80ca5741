/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errors provides the error taxonomy of the policy adapter
// subsystem (spec §7): one CodeError per exchange-level failure kind, plus
// ConfigParse for scan-time failures.
package errors

import "fmt"

// CodeError classifies an error the way an HTTP status code classifies a
// response: a small numeric tag plus a human-readable default message.
type CodeError uint16

const (
	// ConfigParse marks a scan-time module configuration failure: missing
	// [filter] section, unknown type, missing required field, or two
	// transport variants present at once. Scan-time only — never returned
	// from an exchange.
	ConfigParse CodeError = iota + 1
	// SpawnFailed marks a stdio transport child-process spawn failure,
	// including a second consecutive respawn failure after child death.
	SpawnFailed
	// ConnectFailed marks a socket-file or unix-abstract connect failure.
	ConnectFailed
	// NoMatchingSocket marks an abstract-socket resolver miss.
	NoMatchingSocket
	// Timeout marks a message read/write that exceeded its deadline.
	Timeout
	// OversizedFrame marks a frame whose length header exceeds 1 MiB.
	OversizedFrame
	// DecodeError marks a frame that failed structural TLV decode.
	DecodeError
	// ConnectionClosed marks an EOF where a message was expected.
	ConnectionClosed
	// ProtocolViolation marks a MoreInfo verdict returned in the slow phase.
	ProtocolViolation
	// Transport is the catch-all for any other I/O failure on a connection.
	Transport
)

var defaultMessage = map[CodeError]string{
	ConfigParse:       "invalid module configuration",
	SpawnFailed:       "failed to spawn filter child process",
	ConnectFailed:     "failed to connect to filter socket",
	NoMatchingSocket:  "no abstract socket matches the configured prefix",
	Timeout:           "message deadline exceeded",
	OversizedFrame:    "frame length exceeds 1 MiB",
	DecodeError:       "malformed frame payload",
	ConnectionClosed:  "connection closed before message completed",
	ProtocolViolation: "unexpected verdict for this phase",
	Transport:         "transport error",
}

// String implements fmt.Stringer.
func (c CodeError) String() string {
	if m, ok := defaultMessage[c]; ok {
		return m
	}
	return "unknown error"
}

// Error builds a new Error with this code and the code's default message.
// parent, if non-nil, is wrapped and reachable through errors.Is/errors.As.
func (c CodeError) Error(parent error) Error {
	msg := c.String()
	return &codeErr{code: c, msg: msg, parent: parent}
}

// Errorf is like Error but formats msg with args via fmt.Sprintf.
func (c CodeError) Errorf(parent error, format string, args ...any) Error {
	return &codeErr{code: c, msg: fmt.Sprintf(format, args...), parent: parent}
}

// If returns c.Error(parent) when parent is non-nil, and nil otherwise — for
// terse "wrap only if something went wrong" call sites.
func (c CodeError) If(parent error) Error {
	if parent == nil {
		return nil
	}
	return c.Error(parent)
}
