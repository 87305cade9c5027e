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
	"math/rand"

	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"

	"github.com/openquery/drill-go/backoff"
	"github.com/openquery/drill-go/cluster"
	"github.com/openquery/drill-go/internal/bufferpool"
)

// Option configures a Client beyond its Config.
type Option func(*clientOptions)

type clientOptions struct {
	logger *zap.Logger
	tracer opentracing.Tracer
	meter  *metrics.Scope

	direct              bool
	coordinator         cluster.Coordinator
	coordinatorProvider func() (cluster.Coordinator, error)

	allocator *bufferpool.Pool

	strategy   backoff.Strategy
	randSource rand.Source
}

// Logger sets a logger for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// Tracer specifies the tracer to use for query submission spans.
//
// By default, opentracing.GlobalTracer() is used.
func Tracer(tracer opentracing.Tracer) Option {
	return func(o *clientOptions) {
		o.tracer = tracer
	}
}

// Metrics sets the scope client counters are registered under.
//
// The default is to not record any metrics.
func Metrics(meter *metrics.Scope) Option {
	return func(o *clientOptions) {
		o.meter = meter
	}
}

// DirectConnection makes the client bypass the cluster coordinator and
// connect straight to an endpoint from the "drillbit" connection
// property.
func DirectConnection() Option {
	return func(o *clientOptions) {
		o.direct = true
	}
}

// WithCoordinator hands the client a shared, caller-owned coordinator.
// The client will use it for discovery but never close it; teardown
// stays with the caller. Mutually exclusive with DirectConnection.
func WithCoordinator(coordinator cluster.Coordinator) Option {
	return func(o *clientOptions) {
		o.coordinator = coordinator
	}
}

// WithCoordinatorProvider tells the client how to construct its own
// coordinator at connect time. A coordinator obtained this way is owned
// by the client and closed during Close.
func WithCoordinatorProvider(provider func() (cluster.Coordinator, error)) Option {
	return func(o *clientOptions) {
		o.coordinatorProvider = provider
	}
}

// WithAllocator hands the client a shared, caller-owned batch allocator.
// The client will draw batch payloads from it but never close it. By
// default the client creates and owns its own allocator.
func WithAllocator(pool *bufferpool.Pool) Option {
	return func(o *clientOptions) {
		o.allocator = pool
	}
}

// BackoffStrategy overrides the delay between reconnect attempts.
//
// The default is a fixed delay of Config.ReconnectDelayMillis.
func BackoffStrategy(strategy backoff.Strategy) Option {
	return func(o *clientOptions) {
		o.strategy = strategy
	}
}

// randomSource is an internal option for deterministic endpoint
// selection in tests.
func randomSource(source rand.Source) Option {
	return func(o *clientOptions) {
		o.randSource = source
	}
}
