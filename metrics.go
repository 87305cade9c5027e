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
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

// clientMetrics are the client's counters. All fields are nil-safe:
// with no Metrics option the whole struct stays zero and every Inc is a
// no-op.
type clientMetrics struct {
	connects         *metrics.Counter
	connectFailures  *metrics.Counter
	reconnects       *metrics.Counter
	queriesSubmitted *metrics.Counter
	batchesReceived  *metrics.Counter
}

func newClientMetrics(meter *metrics.Scope, logger *zap.Logger) clientMetrics {
	if meter == nil {
		return clientMetrics{}
	}

	var m clientMetrics
	var err error
	m.connects, err = meter.Counter(metrics.Spec{
		Name: "connects",
		Help: "Number of successful connection handshakes.",
	})
	if err != nil {
		logger.Error("Failed to create connects counter.", zap.Error(err))
	}
	m.connectFailures, err = meter.Counter(metrics.Spec{
		Name: "connect_failures",
		Help: "Number of failed connection handshakes.",
	})
	if err != nil {
		logger.Error("Failed to create connect failures counter.", zap.Error(err))
	}
	m.reconnects, err = meter.Counter(metrics.Spec{
		Name: "reconnects",
		Help: "Number of successful transparent reconnects.",
	})
	if err != nil {
		logger.Error("Failed to create reconnects counter.", zap.Error(err))
	}
	m.queriesSubmitted, err = meter.Counter(metrics.Spec{
		Name: "queries_submitted",
		Help: "Number of queries submitted.",
	})
	if err != nil {
		logger.Error("Failed to create queries submitted counter.", zap.Error(err))
	}
	m.batchesReceived, err = meter.Counter(metrics.Spec{
		Name: "batches_received",
		Help: "Number of result batches received.",
	})
	if err != nil {
		logger.Error("Failed to create batches received counter.", zap.Error(err))
	}
	return m
}
