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
	"sync"

	"go.uber.org/zap"

	"github.com/openquery/drill-go/api/transport"
	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/internal/executor"
	"github.com/openquery/drill-go/wire"
)

// resultAggregator turns the push-style results listener into a single
// awaitable result. It accumulates streamed batches and resolves once,
// on the query's terminal callback.
//
// On a transport-level disconnect it attempts exactly one reconnect and,
// if that succeeds, resubmits the original query with itself as the
// listener. Batches buffered before the disconnect are retained, so a
// resubmitted query delivers its batches at least once, not exactly
// once; callers that cannot tolerate duplicates must not rely on the
// transparent retry.
type resultAggregator struct {
	conn    *connectionManager
	query   *wire.RunQuery
	logger  *zap.Logger
	metrics clientMetrics

	mu      sync.Mutex
	queryID *wire.QueryID
	batches []*transport.Batch
	state   wire.QueryState
	err     error
	// abandoned is set when the waiting caller gave up; batches arriving
	// afterwards have no owner and are released on arrival.
	abandoned bool

	done     chan struct{}
	resolved bool
}

var _ transport.ResultsListener = (*resultAggregator)(nil)

func newResultAggregator(conn *connectionManager, query *wire.RunQuery, logger *zap.Logger, m clientMetrics) *resultAggregator {
	return &resultAggregator{
		conn:    conn,
		query:   query,
		logger:  logger,
		metrics: m,
		done:    make(chan struct{}),
	}
}

// QueryIDArrived records the server-assigned id. Diagnostics only; no
// state transition.
func (a *resultAggregator) QueryIDArrived(id *wire.QueryID) {
	a.mu.Lock()
	a.queryID = id
	a.mu.Unlock()
	a.logger.Debug("query id arrived", zap.Stringer("queryID", id))
}

// DataArrived appends the batch to the result sequence. Ownership of the
// batch passes to the aggregator.
func (a *resultAggregator) DataArrived(batch *transport.Batch) {
	a.mu.Lock()
	if a.abandoned {
		a.mu.Unlock()
		batch.Release()
		return
	}
	a.batches = append(a.batches, batch)
	a.mu.Unlock()
	a.metrics.batchesReceived.Inc()
}

// QueryCompleted resolves the pending result with the accumulated
// batches. Terminal.
func (a *resultAggregator) QueryCompleted(state wire.QueryState) {
	a.resolve(state, nil)
}

// SubmissionFailed handles the query's failure callback. A
// channel-closed cause gets one reconnect-and-resubmit; anything else,
// or a failed reconnect, resolves the result with the error.
func (a *resultAggregator) SubmissionFailed(err error) {
	if transport.IsChannelClosed(err) {
		if a.conn.reconnect(context.Background()) {
			a.logger.Debug("resubmitting query after reconnect",
				zap.Stringer("queryID", a.queryIDForLog()))
			if serr := a.conn.submit(a, a.query); serr != nil {
				a.resolve(wire.QueryStateFailed, serr)
			}
			return
		}
	}
	a.resolve(wire.QueryStateFailed, err)
}

func (a *resultAggregator) queryIDForLog() *wire.QueryID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queryID
}

func (a *resultAggregator) resolve(state wire.QueryState, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolved {
		return
	}
	a.resolved = true
	a.state = state
	a.err = err
	close(a.done)
}

// getResults blocks until the query resolves. On success, ownership of
// every batch transfers to the caller, who must release each exactly
// once. On any failure, including context expiry, the aggregator
// releases all buffered batches itself before returning the error, so
// the caller never owes cleanup on the failure path.
func (a *resultAggregator) getResults(ctx context.Context) ([]*transport.Batch, error) {
	select {
	case <-a.done:
	case <-ctx.Done():
		a.releaseAll()
		return nil, drillerrors.Wrap(drillerrors.CodeTimeout, ctx.Err(),
			"awaiting query results")
	}

	a.mu.Lock()
	err := a.err
	batches := a.batches
	a.batches = nil
	a.mu.Unlock()

	if err != nil {
		releaseBatches(batches)
		return nil, mapSubmissionError(err)
	}
	return batches, nil
}

func (a *resultAggregator) releaseAll() {
	a.mu.Lock()
	a.abandoned = true
	batches := a.batches
	a.batches = nil
	a.mu.Unlock()
	releaseBatches(batches)
}

func releaseBatches(batches []*transport.Batch) {
	for _, batch := range batches {
		batch.Release()
	}
}

func mapSubmissionError(err error) error {
	if drillerrors.IsStatus(err) {
		return drillerrors.FromError(err)
	}
	if transport.IsChannelClosed(err) {
		return drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
			"connection lost and could not be re-established")
	}
	return drillerrors.Wrap(drillerrors.CodeServerError, err, "query failed")
}

// dispatchingListener moves a caller-supplied listener's callbacks off
// the transport's I/O goroutine onto a serial executor queue, keeping
// per-query callback order while letting a slow consumer lag without
// stalling the connection.
type dispatchingListener struct {
	queue *executor.Queue
	inner transport.ResultsListener
}

var _ transport.ResultsListener = (*dispatchingListener)(nil)

func newDispatchingListener(pool *executor.Pool, inner transport.ResultsListener) *dispatchingListener {
	return &dispatchingListener{queue: pool.NewQueue(), inner: inner}
}

func (l *dispatchingListener) QueryIDArrived(id *wire.QueryID) {
	l.queue.Push(func() { l.inner.QueryIDArrived(id) })
}

func (l *dispatchingListener) DataArrived(batch *transport.Batch) {
	l.queue.Push(func() { l.inner.DataArrived(batch) })
}

func (l *dispatchingListener) QueryCompleted(state wire.QueryState) {
	l.queue.Push(func() { l.inner.QueryCompleted(state) })
}

func (l *dispatchingListener) SubmissionFailed(err error) {
	l.queue.Push(func() { l.inner.SubmissionFailed(err) })
}
