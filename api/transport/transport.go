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

// Package transport declares the seam between the client and the wire
// transport that carries the user protocol. The transport itself (byte
// framing, message encoding, socket management) is an external
// collaborator; the client depends only on the interfaces here.
package transport

import (
	"context"

	"go.uber.org/zap"

	"github.com/openquery/drill-go/cluster"
	"github.com/openquery/drill-go/wire"
)

// Transport is one client connection to a server endpoint.
//
// A Transport is reusable across connection generations: Close tears
// down the current connection, after which ConnectAsync may be called
// again to dial a fresh endpoint. The client's reconnect loop relies on
// this.
type Transport interface {
	// ConnectAsync starts the handshake with the given endpoint and
	// returns immediately. The future resolves with the server's
	// *wire.EndpointInfo (possibly nil) on success, or fails with the
	// handshake error.
	ConnectAsync(endpoint cluster.Endpoint, props *wire.UserProperties, creds *wire.UserCredentials) *Future

	// Send issues a request/response exchange. The future resolves with
	// the response message for the given request type.
	Send(ctx context.Context, rpcType wire.RPCType, req interface{}) *Future

	// SubmitQuery starts a query. All results are pushed to listener;
	// the callbacks for one query are never invoked concurrently with
	// each other and arrive in server production order, ending with
	// exactly one of QueryCompleted or SubmissionFailed.
	SubmitQuery(listener ResultsListener, query *wire.RunQuery) error

	// IsActive reports whether the underlying connection is up. The
	// client detects dropped connections lazily through this, not via
	// push notification.
	IsActive() bool

	// ServerInfo returns the handshake's server description, or nil
	// before a successful connect or when the server sent none.
	ServerInfo() *wire.EndpointInfo

	// Close tears down the current connection and stops its I/O loop
	// gracefully. It is idempotent.
	Close() error
}

// Options carries the client-level settings a dialer needs to construct
// a Transport.
type Options struct {
	// ClientName identifies this client to servers during handshakes.
	ClientName string

	// SupportComplexTypes advertises whether the consumer accepts
	// complex (map, array) columns natively; servers encode them as
	// JSON text otherwise.
	SupportComplexTypes bool

	// EventLoopSize is the number of goroutines driving I/O completion
	// for this connection.
	EventLoopSize int

	Logger *zap.Logger
}

// Dialer constructs transports. Implementations wrap whatever RPC stack
// actually moves bytes.
type Dialer interface {
	Dial(opts Options) (Transport, error)
}

// ResultsListener receives the streamed callbacks for one submitted
// query. The transport invokes these on an I/O-owned goroutine; the
// client is responsible for moving slow consumers off that goroutine.
type ResultsListener interface {
	// QueryIDArrived delivers the server-assigned query id. It carries
	// no state transition; the id exists for diagnostics and for
	// cancel/resume requests.
	QueryIDArrived(id *wire.QueryID)

	// DataArrived delivers one result batch. Ownership of the batch
	// transfers to the listener, which must eventually release it.
	DataArrived(batch *Batch)

	// QueryCompleted is the final callback of a successful query.
	QueryCompleted(state wire.QueryState)

	// SubmissionFailed is the final callback of a failed query.
	SubmissionFailed(err error)
}
