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
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/internal/bufferpool"
	"github.com/openquery/drill-go/wire"
)

func TestFutureResolve(t *testing.T) {
	f := NewFuture()
	go f.Resolve(&wire.Ack{OK: true})

	resp, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &wire.Ack{OK: true}, resp)
}

func TestFutureFail(t *testing.T) {
	f := NewFuture()
	f.Fail(errors.New("boom"))

	_, err := f.Await(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestFutureResolvesAtMostOnce(t *testing.T) {
	f := NewFuture()
	f.Resolve("first")
	f.Fail(errors.New("ignored"))
	f.Resolve("ignored")

	resp, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", resp)
}

func TestFutureAwaitContextExpiry(t *testing.T) {
	f := NewFuture()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	require.Error(t, err)
	assert.True(t, drillerrors.IsTimeout(err), "context expiry must map to timeout, got %v", err)
}

func TestBatchReleaseExactlyOnce(t *testing.T) {
	pool := bufferpool.NewPool()
	batch := NewBatch(&wire.QueryData{RowCount: 3}, []byte("rows"), pool)

	assert.Equal(t, []byte("rows"), batch.Bytes())
	assert.Equal(t, int32(3), batch.Header().RowCount)

	batch.Release()
	assert.Panics(t, func() { batch.Release() },
		"double release must be a loud programming error")
}

func TestBatchRetain(t *testing.T) {
	pool := bufferpool.NewPool()
	batch := NewBatch(&wire.QueryData{}, []byte("shared"), pool)

	batch.Retain()
	batch.Release()
	// Still one reference outstanding; payload must remain readable.
	assert.Equal(t, []byte("shared"), batch.Bytes())
	batch.Release()

	assert.Panics(t, func() { batch.Retain() })
}

func TestIsChannelClosed(t *testing.T) {
	assert.True(t, IsChannelClosed(ErrChannelClosed))
	assert.True(t, IsChannelClosed(fmt.Errorf("submit: %w", ErrChannelClosed)))
	assert.False(t, IsChannelClosed(errors.New("some server error")))
	assert.False(t, IsChannelClosed(nil))
}
