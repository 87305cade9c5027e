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

package transport

import (
	"go.uber.org/atomic"

	"github.com/openquery/drill-go/internal/bufferpool"
	"github.com/openquery/drill-go/wire"
)

// Batch is one reference-counted block of query output. Its payload is
// drawn from the client's allocator, so every batch must be released
// exactly once by whichever consumer last holds it; releasing returns
// the payload to the pool.
//
// Releasing a batch more than once panics: the payload may already back
// another batch, and continuing would corrupt it.
type Batch struct {
	header  *wire.QueryData
	payload *bufferpool.Buffer
	refs    atomic.Int32
}

// NewBatch builds a batch owning a pooled copy of payload. Transports
// call this as data frames arrive.
func NewBatch(header *wire.QueryData, payload []byte, pool *bufferpool.Pool) *Batch {
	buf := pool.Get()
	if len(payload) > 0 {
		buf.Write(payload) //nolint:errcheck // bytes.Buffer writes cannot fail
	}
	b := &Batch{header: header, payload: buf}
	b.refs.Store(1)
	return b
}

// Header returns the batch header.
func (b *Batch) Header() *wire.QueryData {
	return b.header
}

// Bytes returns the raw batch payload. The slice is only valid until the
// batch is released.
func (b *Batch) Bytes() []byte {
	return b.payload.Bytes()
}

// Retain adds a reference, for handing the batch to an additional
// consumer. Each reference requires its own Release.
func (b *Batch) Retain() {
	if b.refs.Inc() <= 1 {
		panic("retain of already-released batch")
	}
}

// Release drops one reference, returning the payload to the allocator
// when the last reference goes. Calling Release on a fully released
// batch panics.
func (b *Batch) Release() {
	refs := b.refs.Dec()
	switch {
	case refs == 0:
		b.payload.Release()
	case refs < 0:
		panic("batch released more times than retained")
	}
}
