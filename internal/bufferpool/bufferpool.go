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

// Package bufferpool is the client's batch payload allocator: a pool of
// byte buffers that result batches draw from and return to on release.
//
// The pool exists so that a high-throughput result stream does not
// allocate a fresh payload per batch. A Pool can be shared between
// multiple clients; whoever constructed it is responsible for closing it,
// and must do so only after every outstanding buffer has been released.
package bufferpool

import (
	"bytes"
	"sync"

	"go.uber.org/atomic"
)

// Pool allocates payload buffers for result batches.
type Pool struct {
	pool   sync.Pool
	closed atomic.Bool
}

// NewPool returns an empty allocator.
func NewPool() *Pool {
	p := &Pool{}
	p.pool.New = func() interface{} {
		return &Buffer{pool: p, buf: &bytes.Buffer{}}
	}
	return p
}

// Get returns a reset buffer from the pool, allocating one if the pool is
// empty. Get after Close still returns a usable buffer; it will simply
// not be recycled.
func (p *Pool) Get() *Buffer {
	buf := p.pool.Get().(*Buffer)
	buf.released = false
	return buf
}

// Close marks the allocator as torn down. Buffers released afterwards are
// dropped for garbage collection instead of being recycled. Close never
// fails and may be called multiple times.
func (p *Pool) Close() error {
	p.closed.Store(true)
	return nil
}

func (p *Pool) put(buf *Buffer) {
	if p.closed.Load() {
		return
	}
	p.pool.Put(buf)
}

// Buffer is one pooled payload. It must be released exactly once; any use
// after release panics, since the memory may already belong to another
// batch.
type Buffer struct {
	pool     *Pool
	released bool
	buf      *bytes.Buffer
}

func (b *Buffer) checkUseAfterFree() {
	if b.released {
		panic("use-after-free of pooled batch payload")
	}
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.checkUseAfterFree()
	return b.buf.Write(p)
}

// Bytes returns the buffered payload. The slice is only valid until the
// buffer is released.
func (b *Buffer) Bytes() []byte {
	b.checkUseAfterFree()
	return b.buf.Bytes()
}

// Len returns the payload length.
func (b *Buffer) Len() int {
	b.checkUseAfterFree()
	return b.buf.Len()
}

// Release resets the buffer and returns it to the pool.
func (b *Buffer) Release() {
	b.checkUseAfterFree()
	b.buf.Reset()
	b.released = true
	b.pool.put(b)
}
