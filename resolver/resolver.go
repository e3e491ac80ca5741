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

// Package resolver discovers Linux abstract-namespace Unix sockets by
// prefix, scanning /proc/net/unix the same way a process inspects its own
// socket table: no caching, no netlink, just the kernel's text snapshot
// (spec §4.4).
package resolver

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	liberr "github.com/Mufanc/zynx/errors"
)

// netUnixPathField is the index of the path column in a /proc/net/unix
// line, once split on whitespace. See
// https://man7.org/linux/man-pages/man5/proc.5.html.
const netUnixPathField = 7

// procNetUnixPath is the file this resolver reads. It is a package var
// rather than a constant so tests can point it at a fixture file.
var procNetUnixPath = "/proc/net/unix"

var tailPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// candidate is one parsed abstract-namespace entry matching prefix_seq_tail.
type candidate struct {
	seq      uint64
	tail     string
	fullName string
}

// Resolve scans /proc/net/unix for abstract-namespace sockets named
// "<prefix>_<seq>_<tail>" and returns the full abstract name of the entry
// with the greatest seq, breaking ties by the lexicographically greatest
// tail. It is meant to be called fresh for every exchange — the server may
// rotate sockets between forks (spec §4.4).
func Resolve(prefix string) (string, error) {
	f, err := os.Open(procNetUnixPath)
	if err != nil {
		return "", liberr.NoMatchingSocket.Error(err)
	}
	defer func() { _ = f.Close() }()

	best, found, err := scan(f, prefix)
	if err != nil {
		return "", err
	}
	if !found {
		return "", liberr.NoMatchingSocket.Errorf(nil, "no abstract socket matching prefix %q", prefix)
	}
	return best.fullName, nil
}

func scan(r io.Reader, prefix string) (candidate, bool, error) {
	var best candidate
	found := false

	want := prefix + "_"
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) <= netUnixPathField {
			continue
		}

		path := fields[netUnixPathField]
		if path == "" || path[0] != '@' {
			continue // not an abstract-namespace socket
		}
		name := path[1:]
		if !strings.HasPrefix(name, want) {
			continue
		}

		rest := name[len(want):]
		sep := strings.IndexByte(rest, '_')
		if sep < 0 {
			continue
		}
		seqStr, tail := rest[:sep], rest[sep+1:]
		if tail == "" || !tailPattern.MatchString(tail) {
			continue
		}
		seq, err := strconv.ParseUint(seqStr, 10, 64)
		if err != nil {
			continue
		}

		cand := candidate{seq: seq, tail: tail, fullName: name}
		if !found || better(cand, best) {
			best = cand
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return candidate{}, false, liberr.NoMatchingSocket.Error(err)
	}
	return best, found, nil
}

// better reports whether a should replace b as the current pick: greater
// seq wins outright, equal seq is broken by the lexicographically greater
// tail (spec §4.4 step 4).
func better(a, b candidate) bool {
	if a.seq != b.seq {
		return a.seq > b.seq
	}
	return a.tail > b.tail
}
