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
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/openquery/drill-go/api/transport"
	"github.com/openquery/drill-go/backoff"
	"github.com/openquery/drill-go/cluster"
	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/internal/bufferpool"
	"github.com/openquery/drill-go/internal/executor"
	"github.com/openquery/drill-go/wire"
)

// connectionState tracks the single transport connection's lifecycle.
type connectionState int

const (
	stateDisconnected connectionState = iota
	stateConnecting
	stateConnected
)

var stateToName = map[connectionState]string{
	stateDisconnected: "disconnected",
	stateConnecting:   "connecting",
	stateConnected:    "connected",
}

func (s connectionState) String() string {
	if name, ok := stateToName[s]; ok {
		return name
	}
	return "unknown"
}

// connectionManager owns the client's single transport connection and
// serializes connect, reconnect and close behind one mutex, so a
// reconnect can never race a fresh connect or a teardown.
type connectionManager struct {
	dialer transport.Dialer
	topts  transport.Options

	logger  *zap.Logger
	metrics clientMetrics

	strategy          backoff.Strategy
	reconnectAttempts int

	allocator     *bufferpool.Pool
	ownsAllocator bool

	exec *executor.Pool

	mu              sync.Mutex
	state           connectionState
	closed          bool
	transport       transport.Transport
	coordinator     cluster.Coordinator
	ownsCoordinator bool
	// lastEndpoints is the candidate set from the most recent resolve;
	// direct connections reconnect against it since they have no
	// coordinator to re-query.
	lastEndpoints []cluster.Endpoint
	props         *wire.UserProperties
	creds         *wire.UserCredentials
	rng           *rand.Rand
}

// isConnected reports whether the manager currently holds an established
// connection. A dropped transport is only discovered lazily, so this is
// an optimistic answer.
func (m *connectionManager) isConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateConnected
}

// setCoordinator records the discovery backend and whether teardown of
// it belongs to this manager. Ownership is decided by the caller at
// construction/connect time, never inferred.
func (m *connectionManager) setCoordinator(coordinator cluster.Coordinator, owns bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coordinator = coordinator
	m.ownsCoordinator = owns
}

// connect establishes the connection against one of the candidate
// endpoints, chosen uniformly at random. It is an idempotent no-op when
// already connected, and serialized against reconnect and close.
func (m *connectionManager) connect(ctx context.Context, endpoints []cluster.Endpoint, props *wire.UserProperties, creds *wire.UserCredentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return drillerrors.ConnectionFailureErrorf("client is closed")
	}
	if m.state == stateConnected {
		return nil
	}

	if m.transport == nil {
		t, err := m.dialer.Dial(m.topts)
		if err != nil {
			return drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
				"failed to set up transport")
		}
		m.transport = t
	}

	m.state = stateConnecting
	m.lastEndpoints = endpoints
	m.props = props
	m.creds = creds

	endpoint := cluster.ChooseRandom(endpoints, m.rng)
	m.logger.Debug("connecting to server",
		zap.String("address", endpoint.Address),
		zap.Int("port", endpoint.Port))

	if err := m.handshake(ctx, endpoint); err != nil {
		m.state = stateDisconnected
		m.metrics.connectFailures.Inc()
		return err
	}

	m.state = stateConnected
	m.metrics.connects.Inc()
	return nil
}

// handshake runs one asynchronous connection attempt and blocks on its
// completion. Callers hold m.mu.
func (m *connectionManager) handshake(ctx context.Context, endpoint cluster.Endpoint) error {
	future := m.transport.ConnectAsync(endpoint, m.props, m.creds)
	if _, err := future.Await(ctx); err != nil {
		if drillerrors.IsStatus(err) {
			return err
		}
		return drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
			"handshake with %s failed", endpoint)
	}
	return nil
}

// reconnect re-establishes a dropped connection, retrying up to the
// configured budget with the configured delay before each attempt. It
// returns true as soon as the transport is active again; a coordinator
// that transiently reports no endpoints just costs one attempt. It never
// returns an error: failures are swallowed, logged, and retried until
// the budget runs out.
func (m *connectionManager) reconnect(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	if m.transport != nil && m.transport.IsActive() {
		return true
	}

	for attempt := 0; attempt < m.reconnectAttempts; attempt++ {
		select {
		case <-time.After(m.strategy.Duration(uint(attempt))):
		case <-ctx.Done():
			m.state = stateDisconnected
			return false
		}

		endpoints, err := m.liveEndpoints()
		if err != nil {
			m.logger.Debug("reconnect attempt could not list endpoints", zap.Error(err))
			continue
		}
		if len(endpoints) == 0 {
			continue
		}

		// Reconnect may run before any connect has dialed a transport.
		if m.transport == nil {
			t, err := m.dialer.Dial(m.topts)
			if err != nil {
				m.logger.Debug("reconnect attempt could not set up transport", zap.Error(err))
				continue
			}
			m.transport = t
		} else if err := m.transport.Close(); err != nil {
			// Drop the stale connection before dialing a new endpoint so
			// the old handle cannot leak.
			m.logger.Debug("error closing stale transport", zap.Error(err))
		}

		endpoint := cluster.ChooseRandom(endpoints, m.rng)
		if err := m.handshake(ctx, endpoint); err != nil {
			m.logger.Debug("reconnect attempt failed",
				zap.String("address", endpoint.Address),
				zap.Int("port", endpoint.Port),
				zap.Error(err))
			continue
		}

		m.state = stateConnected
		m.metrics.reconnects.Inc()
		return true
	}

	m.state = stateDisconnected
	return false
}

// liveEndpoints returns the current candidate set: the coordinator's
// registered endpoints, or for direct connections the last parsed list.
// Callers hold m.mu.
func (m *connectionManager) liveEndpoints() ([]cluster.Endpoint, error) {
	if m.coordinator == nil {
		return m.lastEndpoints, nil
	}
	return m.coordinator.AvailableEndpoints()
}

// submit starts a query on the current connection.
func (m *connectionManager) submit(listener transport.ResultsListener, query *wire.RunQuery) error {
	t, err := m.active()
	if err != nil {
		return err
	}
	return t.SubmitQuery(listener, query)
}

// send issues a request/response exchange on the current connection.
func (m *connectionManager) send(ctx context.Context, rpcType wire.RPCType, req interface{}) (*transport.Future, error) {
	t, err := m.active()
	if err != nil {
		return nil, err
	}
	return t.Send(ctx, rpcType, req), nil
}

// serverInfo returns the connected server's handshake description, or
// nil.
func (m *connectionManager) serverInfo() *wire.EndpointInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transport == nil {
		return nil
	}
	return m.transport.ServerInfo()
}

func (m *connectionManager) active() (transport.Transport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != stateConnected || m.transport == nil {
		return nil, drillerrors.ConnectionFailureErrorf(
			"client is not connected (state %s)", m.state)
	}
	return m.transport, nil
}

// close tears the client down. It is idempotent and total: every owned
// resource is attended to even when an earlier step fails. Order
// matters: the transport goes first so outstanding batch payloads are
// released before the allocator they came from, and the executor is
// stopped last, immediately, without draining queued callbacks.
func (m *connectionManager) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.transport != nil {
		err = multierr.Append(err, m.transport.Close())
	}

	if m.ownsAllocator && m.allocator != nil {
		// Pool.Close never fails; keep the call explicit for ordering.
		_ = m.allocator.Close()
	}

	if m.ownsCoordinator && m.coordinator != nil {
		if cerr := m.coordinator.Close(); cerr != nil {
			m.logger.Warn("error while closing cluster coordinator", zap.Error(cerr))
		}
		m.coordinator = nil
	}

	m.exec.StopNow()
	m.state = stateDisconnected
	return err
}
