// Copyright (c) 2026 The OpenQuery Authors.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package backoff provides the delay strategies used between reconnect
// attempts.
package backoff

import "time"

// Strategy returns the duration to wait before the given reconnect
// attempt. Attempts are numbered from zero. Implementations must be safe
// for concurrent use.
type Strategy interface {
	Duration(attempt uint) time.Duration
}

// Fixed is a constant-delay strategy: every attempt waits the same
// duration. This is the client default, driven by the reconnect-delay
// configuration value.
type Fixed time.Duration

// Duration returns the fixed delay regardless of attempt number.
func (f Fixed) Duration(uint) time.Duration {
	return time.Duration(f)
}

// None never waits. Useful in tests.
var None Strategy = Fixed(0)
