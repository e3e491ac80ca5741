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

package errors

import (
	stderrs "errors"
)

// Error extends the standard error with a classification code and parent
// chaining, matching the errors.Is/errors.As contract via Unwrap.
type Error interface {
	error

	// Code returns the classification code of this error.
	Code() CodeError
	// IsCode reports whether this error's own code equals c.
	IsCode(c CodeError) bool
	// HasCode reports whether this error or any of its parents has code c.
	HasCode(c CodeError) bool
	// Unwrap exposes the parent error, for errors.Is/errors.As.
	Unwrap() error
}

type codeErr struct {
	code   CodeError
	msg    string
	parent error
}

func (e *codeErr) Error() string {
	if e.parent != nil {
		return e.msg + ": " + e.parent.Error()
	}
	return e.msg
}

func (e *codeErr) Code() CodeError { return e.code }

func (e *codeErr) IsCode(c CodeError) bool { return e.code == c }

func (e *codeErr) HasCode(c CodeError) bool {
	if e.code == c {
		return true
	}
	var next Error
	if stderrs.As(e.parent, &next) {
		return next.HasCode(c)
	}
	return false
}

func (e *codeErr) Unwrap() error { return e.parent }

// Is reports whether err is an Error (any CodeError).
func Is(err error) bool {
	var e Error
	return stderrs.As(err, &e)
}

// Get returns err as an Error if it is one, nil otherwise.
func Get(err error) Error {
	var e Error
	if stderrs.As(err, &e) {
		return e
	}
	return nil
}

// HasCode reports whether err, or any error it wraps, carries code c.
func HasCode(err error, c CodeError) bool {
	e := Get(err)
	if e == nil {
		return false
	}
	return e.HasCode(c)
}
