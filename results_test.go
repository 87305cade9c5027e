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

package drill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/openquery/drill-go/api/transport"
	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/drilltest"
	"github.com/openquery/drill-go/internal/bufferpool"
	"github.com/openquery/drill-go/internal/executor"
	"github.com/openquery/drill-go/wire"
)

func TestResultAggregatorResolvesOnce(t *testing.T) {
	a := newResultAggregator(nil, nil, zaptest.NewLogger(t), clientMetrics{})

	a.QueryCompleted(wire.QueryStateCompleted)
	a.SubmissionFailed(errors.New("late failure")) // ignored: already terminal

	batches, err := a.getResults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestResultAggregatorCanceledState(t *testing.T) {
	a := newResultAggregator(nil, nil, zaptest.NewLogger(t), clientMetrics{})
	a.QueryCompleted(wire.QueryStateCanceled)

	_, err := a.getResults(context.Background())
	require.NoError(t, err, "cancellation is a server-reported terminal state, not a client error")
	assert.Equal(t, wire.QueryStateCanceled, a.state)
}

func TestResultAggregatorReleasesLateBatches(t *testing.T) {
	pool := bufferpool.NewPool()
	a := newResultAggregator(nil, nil, zaptest.NewLogger(t), clientMetrics{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.getResults(ctx)
	require.Error(t, err)
	assert.True(t, drillerrors.IsTimeout(err))

	late := transport.NewBatch(&wire.QueryData{RowCount: 1}, []byte("late"), pool)
	a.DataArrived(late)

	assert.Panics(t, func() { late.Release() },
		"a batch arriving after the caller gave up must be released on arrival")
}

func TestDispatchingListenerKeepsOrder(t *testing.T) {
	pool := executor.New(zaptest.NewLogger(t))
	defer pool.StopNow()

	inner := drilltest.NewRecordingListener()
	listener := newDispatchingListener(pool, inner)

	id := drilltest.NewQueryID()
	listener.QueryIDArrived(id)
	for i := 0; i < 10; i++ {
		listener.DataArrived(nil)
	}
	listener.QueryCompleted(wire.QueryStateCompleted)

	require.True(t, inner.AwaitDone(time.Second))
	pool.Wait()

	events := inner.Events()
	require.Len(t, events, 12)
	assert.Equal(t, "queryID", events[0].Kind)
	for _, ev := range events[1:11] {
		assert.Equal(t, "data", ev.Kind)
	}
	assert.Equal(t, "completed", events[11].Kind)
}

func TestDispatchingListenerForwardsFailure(t *testing.T) {
	pool := executor.New(zaptest.NewLogger(t))
	defer pool.StopNow()

	inner := drilltest.NewRecordingListener()
	listener := newDispatchingListener(pool, inner)

	boom := errors.New("fragment failure")
	listener.SubmissionFailed(boom)

	require.True(t, inner.AwaitDone(time.Second))
	events := inner.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "failed", events[0].Kind)
	assert.Equal(t, boom, events[0].Err)
}
