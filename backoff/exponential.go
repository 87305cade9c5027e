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

package backoff

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// ExponentialOption configures an exponential backoff strategy.
type ExponentialOption func(*exponentialOptions)

type exponentialOptions struct {
	base, min, max time.Duration
	rand           *rand.Rand
	minMaxDiff     int64
}

func (e exponentialOptions) validate() (err error) {
	if e.base <= 0 {
		err = multierr.Append(err, errors.New("exponential backoff base must be positive"))
	}
	if e.min < 0 {
		err = multierr.Append(err, errors.New("exponential backoff minimum cannot be negative"))
	}
	if e.max < 0 {
		err = multierr.Append(err, errors.New("exponential backoff maximum cannot be negative"))
	}
	if e.max < e.min {
		err = multierr.Append(err, errors.New("exponential backoff maximum cannot be below the minimum"))
	}
	return err
}

var defaultExponentialOpts = exponentialOptions{
	base: 10 * time.Millisecond,
	max:  30 * time.Second,
}

// BaseJump sets the ceiling of the first attempt's delay; the ceiling
// doubles with every further attempt.
func BaseJump(d time.Duration) ExponentialOption {
	return func(o *exponentialOptions) { o.base = d }
}

// MaxBackoff caps the delay of any attempt, however many have failed.
func MaxBackoff(d time.Duration) ExponentialOption {
	return func(o *exponentialOptions) { o.max = d }
}

// MinBackoff is the delay floor every attempt waits at least.
func MinBackoff(d time.Duration) ExponentialOption {
	return func(o *exponentialOptions) { o.min = d }
}

// randSource is an internal option for deterministic tests.
func randSource(source rand.Source) ExponentialOption {
	return func(o *exponentialOptions) { o.rand = rand.New(source) }
}

// Exponential is a fully jittered exponential backoff strategy: each
// attempt waits a uniformly random duration in [min, min(base<<attempt,
// max)]. Safe for concurrent use.
type Exponential struct {
	mu   sync.Mutex
	opts exponentialOptions
}

var _ Strategy = (*Exponential)(nil)

// NewExponential returns a new exponential backoff strategy.
func NewExponential(opts ...ExponentialOption) (*Exponential, error) {
	options := defaultExponentialOpts
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	if options.rand == nil {
		options.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	options.minMaxDiff = options.max.Nanoseconds() - options.min.Nanoseconds()

	return &Exponential{opts: options}, nil
}

// Duration returns the wait before the given attempt.
func (e *Exponential) Duration(attempt uint) time.Duration {
	minlessBackoff := (1 << attempt) * e.opts.base.Nanoseconds()
	// The shift overflowed, or we passed the configured max; either way
	// saturate at the max delay.
	if minlessBackoff > e.opts.minMaxDiff || minlessBackoff <= 0 {
		minlessBackoff = e.opts.minMaxDiff
	}

	e.mu.Lock()
	jitter := e.opts.rand.Int63n(minlessBackoff + 1)
	e.mu.Unlock()

	return e.opts.min + time.Duration(jitter)
}
