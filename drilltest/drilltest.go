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

// Package drilltest provides scriptable fakes for testing code built on
// the drill client: a fake wire transport, a fake cluster coordinator
// and a recording results listener.
package drilltest

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openquery/drill-go/api/transport"
	"github.com/openquery/drill-go/cluster"
	"github.com/openquery/drill-go/wire"
)

// NewQueryID mints a random query id.
func NewQueryID() *wire.QueryID {
	id := uuid.New()
	return &wire.QueryID{
		Part1: int64(binary.BigEndian.Uint64(id[:8])),
		Part2: int64(binary.BigEndian.Uint64(id[8:])),
	}
}

// FakeDialer hands out a single FakeTransport and records the options it
// was dialed with.
type FakeDialer struct {
	Transport *FakeTransport

	// DialErr, when set, fails Dial instead.
	DialErr error

	mu    sync.Mutex
	opts  []transport.Options
	dials int
}

var _ transport.Dialer = (*FakeDialer)(nil)

// NewFakeDialer returns a dialer wrapping a fresh FakeTransport.
func NewFakeDialer() *FakeDialer {
	return &FakeDialer{Transport: NewFakeTransport()}
}

func (d *FakeDialer) Dial(opts transport.Options) (transport.Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	d.opts = append(d.opts, opts)
	if d.DialErr != nil {
		return nil, d.DialErr
	}
	return d.Transport, nil
}

// Dials returns how many times Dial was called.
func (d *FakeDialer) Dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

// DialOptions returns the options passed to the most recent Dial, or the
// zero value if Dial was never called.
func (d *FakeDialer) DialOptions() transport.Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.opts) == 0 {
		return transport.Options{}
	}
	return d.opts[len(d.opts)-1]
}

// FakeTransport is a scriptable in-memory transport. Exported script
// fields must be set before the transport is handed to a client.
//
// By default every connect succeeds, Send resolves with the canned
// response for the request's type, and SubmitQuery records the listener
// for the test to drive manually.
type FakeTransport struct {
	// ConnectErrs fails successive ConnectAsync calls in order; once the
	// slice is exhausted connects succeed.
	ConnectErrs []error

	// Info is the server description reported after a successful connect.
	Info *wire.EndpointInfo

	// SubmitFunc, when set, handles each SubmitQuery call; it may drive
	// the listener synchronously. When nil the submission is recorded and
	// the listener kept for manual driving.
	SubmitFunc func(listener transport.ResultsListener, query *wire.RunQuery) error

	// SubmitErr, when set, fails SubmitQuery synchronously.
	SubmitErr error

	mu        sync.Mutex
	active    bool
	connected *wire.EndpointInfo
	dialed    []cluster.Endpoint
	props     *wire.UserProperties
	creds     *wire.UserCredentials
	connects  int
	closes    int
	responses map[wire.RPCType]interface{}
	sendErr   error
	sent      []wire.RPCType
	queries   []*wire.RunQuery
	listeners []transport.ResultsListener
	submitted chan struct{}
}

var _ transport.Transport = (*FakeTransport)(nil)

// NewFakeTransport returns a transport that accepts every connect.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		responses: make(map[wire.RPCType]interface{}),
		submitted: make(chan struct{}, 16),
	}
}

func (t *FakeTransport) ConnectAsync(endpoint cluster.Endpoint, props *wire.UserProperties, creds *wire.UserCredentials) *transport.Future {
	t.mu.Lock()
	t.connects++
	t.dialed = append(t.dialed, endpoint)
	t.props = props
	t.creds = creds
	var err error
	if len(t.ConnectErrs) > 0 {
		err, t.ConnectErrs = t.ConnectErrs[0], t.ConnectErrs[1:]
	}
	if err == nil {
		t.active = true
		t.connected = t.Info
	}
	t.mu.Unlock()

	future := transport.NewFuture()
	if err != nil {
		future.Fail(err)
	} else {
		future.Resolve(t.Info)
	}
	return future
}

// RespondWith sets the canned response for a request type.
func (t *FakeTransport) RespondWith(rpcType wire.RPCType, resp interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[rpcType] = resp
}

// FailSends makes every subsequent Send fail with err.
func (t *FakeTransport) FailSends(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendErr = err
}

func (t *FakeTransport) Send(_ context.Context, rpcType wire.RPCType, _ interface{}) *transport.Future {
	t.mu.Lock()
	t.sent = append(t.sent, rpcType)
	err := t.sendErr
	resp := t.responses[rpcType]
	t.mu.Unlock()

	future := transport.NewFuture()
	if err != nil {
		future.Fail(err)
	} else {
		future.Resolve(resp)
	}
	return future
}

func (t *FakeTransport) SubmitQuery(listener transport.ResultsListener, query *wire.RunQuery) error {
	t.mu.Lock()
	if err := t.SubmitErr; err != nil {
		t.mu.Unlock()
		return err
	}
	t.queries = append(t.queries, query)
	t.listeners = append(t.listeners, listener)
	fn := t.SubmitFunc
	t.mu.Unlock()

	select {
	case t.submitted <- struct{}{}:
	default:
	}
	if fn != nil {
		return fn(listener, query)
	}
	return nil
}

func (t *FakeTransport) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SetActive overrides the connection's liveness, simulating a dropped
// connection without a Close.
func (t *FakeTransport) SetActive(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = active
}

func (t *FakeTransport) ServerInfo() *wire.EndpointInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *FakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closes++
	t.active = false
	return nil
}

// Connects returns how many handshakes were attempted.
func (t *FakeTransport) Connects() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connects
}

// Closes returns how many times Close was called.
func (t *FakeTransport) Closes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closes
}

// HandshakeProperties returns the properties from the most recent
// ConnectAsync.
func (t *FakeTransport) HandshakeProperties() *wire.UserProperties {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.props
}

// HandshakeCredentials returns the credentials from the most recent
// ConnectAsync.
func (t *FakeTransport) HandshakeCredentials() *wire.UserCredentials {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.creds
}

// Dialed returns the endpoints handed to ConnectAsync, in order.
func (t *FakeTransport) Dialed() []cluster.Endpoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]cluster.Endpoint(nil), t.dialed...)
}

// Sent returns the request types handed to Send, in order.
func (t *FakeTransport) Sent() []wire.RPCType {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]wire.RPCType(nil), t.sent...)
}

// Submissions returns the queries handed to SubmitQuery, in order.
func (t *FakeTransport) Submissions() []*wire.RunQuery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*wire.RunQuery(nil), t.queries...)
}

// LastListener returns the listener from the most recent SubmitQuery,
// for tests driving callbacks by hand.
func (t *FakeTransport) LastListener() transport.ResultsListener {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.listeners) == 0 {
		return nil
	}
	return t.listeners[len(t.listeners)-1]
}

// AwaitSubmission blocks until a SubmitQuery call lands or the timeout
// expires, reporting whether one landed. Useful when the submission
// happens on another goroutine, as during a transparent resubmit.
func (t *FakeTransport) AwaitSubmission(timeout time.Duration) bool {
	select {
	case <-t.submitted:
		return true
	case <-time.After(timeout):
		return false
	}
}

// FakeCoordinator is a scriptable cluster coordinator.
type FakeCoordinator struct {
	// EndpointSets are returned by successive AvailableEndpoints calls;
	// the last set repeats once the script is exhausted.
	EndpointSets [][]cluster.Endpoint

	// EndpointsErr, when set, fails every AvailableEndpoints call.
	EndpointsErr error

	// StartErr, when set, fails Start.
	StartErr error

	mu      sync.Mutex
	calls   int
	started bool
	closed  bool
}

var _ cluster.Coordinator = (*FakeCoordinator)(nil)

// NewFakeCoordinator returns a coordinator always reporting the given
// endpoints.
func NewFakeCoordinator(endpoints ...cluster.Endpoint) *FakeCoordinator {
	return &FakeCoordinator{EndpointSets: [][]cluster.Endpoint{endpoints}}
}

func (c *FakeCoordinator) Start(time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.StartErr != nil {
		return c.StartErr
	}
	c.started = true
	return nil
}

func (c *FakeCoordinator) AvailableEndpoints() ([]cluster.Endpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.EndpointsErr != nil {
		return nil, c.EndpointsErr
	}
	if len(c.EndpointSets) == 0 {
		return nil, nil
	}
	i := c.calls
	if i >= len(c.EndpointSets) {
		i = len(c.EndpointSets) - 1
	}
	c.calls++
	return c.EndpointSets[i], nil
}

func (c *FakeCoordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Started reports whether Start succeeded.
func (c *FakeCoordinator) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Closed reports whether Close was called.
func (c *FakeCoordinator) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ListenerEvent is one recorded listener callback.
type ListenerEvent struct {
	Kind  string // "queryID", "data", "completed", "failed"
	ID    *wire.QueryID
	Batch *transport.Batch
	State wire.QueryState
	Err   error
}

// RecordingListener records every callback it receives, in order, and
// signals terminal callbacks on Done.
type RecordingListener struct {
	mu     sync.Mutex
	events []ListenerEvent
	done   chan struct{}
}

var _ transport.ResultsListener = (*RecordingListener)(nil)

// NewRecordingListener returns an empty recording listener.
func NewRecordingListener() *RecordingListener {
	return &RecordingListener{done: make(chan struct{}, 1)}
}

func (l *RecordingListener) QueryIDArrived(id *wire.QueryID) {
	l.record(ListenerEvent{Kind: "queryID", ID: id})
}

func (l *RecordingListener) DataArrived(batch *transport.Batch) {
	l.record(ListenerEvent{Kind: "data", Batch: batch})
}

func (l *RecordingListener) QueryCompleted(state wire.QueryState) {
	l.record(ListenerEvent{Kind: "completed", State: state})
	l.signal()
}

func (l *RecordingListener) SubmissionFailed(err error) {
	l.record(ListenerEvent{Kind: "failed", Err: err})
	l.signal()
}

func (l *RecordingListener) record(ev ListenerEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *RecordingListener) signal() {
	select {
	case l.done <- struct{}{}:
	default:
	}
}

// Events returns a snapshot of the recorded callbacks.
func (l *RecordingListener) Events() []ListenerEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ListenerEvent(nil), l.events...)
}

// AwaitDone blocks until a terminal callback lands or the timeout
// expires, reporting whether one landed.
func (l *RecordingListener) AwaitDone(timeout time.Duration) bool {
	select {
	case <-l.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
