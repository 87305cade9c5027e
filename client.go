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
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	"github.com/openquery/drill-go/api/transport"
	"github.com/openquery/drill-go/backoff"
	"github.com/openquery/drill-go/cluster"
	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/internal/bufferpool"
	"github.com/openquery/drill-go/internal/executor"
	"github.com/openquery/drill-go/wire"
)

const anonymousUser = "anonymous"

// Client submits queries to a distributed query engine over a single
// managed connection. Construct with NewClient, establish the connection
// with Connect, and always Close.
//
// A Client is safe for concurrent use.
type Client struct {
	cfg    Config
	logger *zap.Logger
	tracer opentracing.Tracer

	conn    *connectionManager
	exec    *executor.Pool
	metrics clientMetrics

	direct              bool
	coordinatorProvider func() (cluster.Coordinator, error)
	borrowedCoordinator cluster.Coordinator
}

// NewClient builds a client. The dialer is the wire transport's entry
// point and is required; everything else has defaults.
func NewClient(cfg Config, dialer transport.Dialer, opts ...Option) (*Client, error) {
	if dialer == nil {
		return nil, drillerrors.ConnectionFailureErrorf("no transport dialer provided")
	}

	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.direct && options.coordinator != nil {
		return nil, drillerrors.InvalidConnectionInfoErrorf(
			"a direct connection cannot also use a cluster coordinator")
	}

	cfg = cfg.withDefaults()

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := options.tracer
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	// Explicit ownership: the client tears down only what it created
	// itself. Borrowed collaborators outlive Close.
	allocator := options.allocator
	ownsAllocator := allocator == nil
	if ownsAllocator {
		allocator = bufferpool.NewPool()
	}

	strategy := options.strategy
	if strategy == nil {
		strategy = backoff.Fixed(cfg.reconnectDelay())
	}
	source := options.randSource
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}

	m := newClientMetrics(options.meter, logger)
	exec := executor.New(logger)

	conn := &connectionManager{
		dialer: dialer,
		topts: transport.Options{
			ClientName:          cfg.ClientName,
			SupportComplexTypes: *cfg.SupportComplexTypes,
			EventLoopSize:       cfg.EventLoopSize,
			Logger:              logger,
		},
		logger:            logger,
		metrics:           m,
		strategy:          strategy,
		reconnectAttempts: cfg.ReconnectAttempts,
		allocator:         allocator,
		ownsAllocator:     ownsAllocator,
		exec:              exec,
		rng:               rand.New(source),
	}
	if options.coordinator != nil {
		conn.setCoordinator(options.coordinator, false /* owned by caller */)
	}

	return &Client{
		cfg:                 cfg,
		logger:              logger,
		tracer:              tracer,
		conn:                conn,
		exec:                exec,
		metrics:             m,
		direct:              options.direct,
		coordinatorProvider: options.coordinatorProvider,
		borrowedCoordinator: options.coordinator,
	}, nil
}

// Allocator returns the client's batch payload allocator.
func (c *Client) Allocator() *bufferpool.Pool {
	return c.conn.allocator
}

// Connect resolves a server endpoint and establishes the connection,
// blocking until the handshake completes or fails. It is an idempotent
// no-op when already connected; concurrent calls are serialized and only
// one connection attempt proceeds.
//
// In direct mode the endpoint candidates come from the "drillbit"
// property; otherwise the cluster coordinator is queried for the live
// endpoint set. One candidate is then chosen uniformly at random.
func (c *Client) Connect(ctx context.Context, props Properties) error {
	cp, err := decodeProperties(props)
	if err != nil {
		return err
	}

	var endpoints []cluster.Endpoint
	if c.direct {
		endpoints, err = cluster.ParseEndpoints(cp.Drillbit, c.cfg.DefaultPort)
		if err != nil {
			return err
		}
	} else {
		coordinator, err := c.ensureCoordinator()
		if err != nil {
			return err
		}
		endpoints, err = coordinator.AvailableEndpoints()
		if err != nil {
			return drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
				"failed to list endpoints from cluster coordinator")
		}
		if len(endpoints) == 0 {
			return drillerrors.ConnectionFailureErrorf(
				"no active server endpoint registered with the cluster coordinator")
		}
	}

	userProps := buildUserProperties(props)
	creds := credentialsFromProperties(userProps)

	return c.conn.connect(ctx, endpoints, userProps, creds)
}

// ensureCoordinator returns the discovery backend, constructing and
// starting a client-owned one from the provider on first use.
func (c *Client) ensureCoordinator() (cluster.Coordinator, error) {
	if c.borrowedCoordinator != nil {
		return c.borrowedCoordinator, nil
	}
	c.conn.mu.Lock()
	existing := c.conn.coordinator
	c.conn.mu.Unlock()
	if existing != nil {
		return existing, nil
	}

	if c.coordinatorProvider == nil {
		return nil, drillerrors.InvalidConnectionInfoErrorf(
			"no cluster coordinator configured; use DirectConnection, WithCoordinator or WithCoordinatorProvider")
	}
	coordinator, err := c.coordinatorProvider()
	if err != nil {
		return nil, drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
			"failure setting up cluster coordinator")
	}
	if err := coordinator.Start(c.cfg.coordinatorTimeout()); err != nil {
		return nil, drillerrors.Wrap(drillerrors.CodeConnectionFailure, err,
			"failure starting cluster coordinator")
	}
	c.conn.setCoordinator(coordinator, true /* owned: client created it */)
	return coordinator, nil
}

// buildUserProperties converts the property map into the wire form, in
// deterministic key order.
func buildUserProperties(props Properties) *wire.UserProperties {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := &wire.UserProperties{Properties: make([]*wire.Property, 0, len(keys))}
	for _, key := range keys {
		out.Properties = append(out.Properties, &wire.Property{Key: key, Value: props[key]})
	}
	return out
}

// credentialsFromProperties derives the query identity. With no "user"
// property the identity defaults to "anonymous", a convenience default
// for unauthenticated clusters, not a security boundary; authentication,
// where enabled, happens in the transport handshake with the full
// property set.
func credentialsFromProperties(props *wire.UserProperties) *wire.UserCredentials {
	user := props.Get(PropertyUser)
	if user == "" {
		user = anonymousUser
	}
	return &wire.UserCredentials{UserName: user}
}

// Reconnect re-establishes a dropped connection, retrying up to the
// configured budget. It returns true if the connection is active when it
// returns. Queries in flight during a transparent reconnect are handled
// by RunQuery itself; Reconnect exists for callers driving their own
// listeners.
func (c *Client) Reconnect(ctx context.Context) bool {
	return c.conn.reconnect(ctx)
}

// Close tears the client down: the transport connection, the owned
// allocator and coordinator (borrowed ones are left alone), and the
// callback executor. It is idempotent, and teardown failures of owned
// collaborators never abort the remaining steps.
func (c *Client) Close() error {
	return c.conn.close()
}

// ServerInfo returns the connected server's description from the
// handshake, or nil when not connected or when the server sent none.
func (c *Client) ServerInfo() *wire.EndpointInfo {
	return c.conn.serverInfo()
}

// SetClientName overrides the name reported to servers. It must be
// called before Connect.
func (c *Client) SetClientName(name string) error {
	if c.conn.isConnected() {
		return drillerrors.Newf(drillerrors.CodeUnknown,
			"attempted to modify client connection property after connection has been established")
	}
	c.cfg.ClientName = name
	c.conn.topts.ClientName = name
	return nil
}

// SetSupportComplexTypes overrides whether results may contain complex
// (map, array) columns natively; when false they arrive as JSON text.
// It must be called before Connect.
func (c *Client) SetSupportComplexTypes(supported bool) error {
	if c.conn.isConnected() {
		return drillerrors.Newf(drillerrors.CodeUnknown,
			"attempted to modify client connection property after connection has been established")
	}
	c.cfg.SupportComplexTypes = &supported
	c.conn.topts.SupportComplexTypes = supported
	return nil
}

// RunQuery submits a query plan and blocks until the full result stream
// has been collected. Supported query types are SQL, LOGICAL and
// PHYSICAL.
//
// On success the caller owns every returned batch and must release each
// exactly once. On failure the client has already released any buffered
// batches; the caller owes no cleanup.
//
// A transport-level disconnect mid-stream is retried once by
// reconnecting and resubmitting the same query; batches received before
// the disconnect are retained, so batch delivery across such a retry is
// at least once, not exactly once.
func (c *Client) RunQuery(ctx context.Context, queryType wire.QueryType, plan string) ([]*transport.Batch, error) {
	if err := checkPlanQueryType(queryType); err != nil {
		return nil, err
	}
	query := &wire.RunQuery{
		Type:        queryType,
		ResultsMode: wire.ResultsModeStreamFull,
		Plan:        plan,
	}
	return c.collect(ctx, "RunQuery", query)
}

// RunQueryWithListener submits a query plan and returns immediately;
// all results are pushed to listener. Listener callbacks are dispatched
// on the client's executor in per-query order, never on a transport I/O
// goroutine. The listener owns every batch it is handed.
func (c *Client) RunQueryWithListener(queryType wire.QueryType, plan string, listener transport.ResultsListener) error {
	if err := checkPlanQueryType(queryType); err != nil {
		return err
	}
	query := &wire.RunQuery{
		Type:        queryType,
		ResultsMode: wire.ResultsModeStreamFull,
		Plan:        plan,
	}
	return c.submitWithListener(query, listener)
}

// RunFragments executes pre-planned fragments (an EXECUTION-type
// submission), pushing results to listener. The fragment plans are also
// serialized into one JSON array carried as the query's plan text for
// server-side logging; a fragment whose plan is not valid JSON fails the
// call synchronously with a serialization error, and nothing is
// submitted.
func (c *Client) RunFragments(fragments []*wire.PlanFragment, listener transport.ResultsListener) error {
	planText, err := fragmentsPlanJSON(fragments)
	if err != nil {
		c.logger.Error("failed to serialize fragment plans", zap.Error(err))
		return err
	}
	query := &wire.RunQuery{
		Type:        wire.QueryTypeExecution,
		ResultsMode: wire.ResultsModeStreamFull,
		Plan:        planText,
		Fragments:   fragments,
	}
	return c.submitWithListener(query, listener)
}

// fragmentsPlanJSON materializes the combined fragment plan as a JSON
// array of the individual fragment plans.
func fragmentsPlanJSON(fragments []*wire.PlanFragment) (string, error) {
	arr := make([]json.RawMessage, 0, len(fragments))
	for i, fragment := range fragments {
		var tree interface{}
		if err := json.Unmarshal([]byte(fragment.FragmentJSON), &tree); err != nil {
			return "", drillerrors.Wrap(drillerrors.CodeSerializationFailure, err,
				"invalid fragment plan JSON for fragment %d", i)
		}
		arr = append(arr, json.RawMessage(fragment.FragmentJSON))
	}
	combined, err := json.Marshal(arr)
	if err != nil {
		return "", drillerrors.Wrap(drillerrors.CodeSerializationFailure, err,
			"failed to serialize combined fragment plan")
	}
	return string(combined), nil
}

// PlanQuery asks the server to plan a query and return its executable
// fragments without running it. The fragments feed RunFragments; with
// splitPlan the server splits the plan into one fragment per execution
// unit. Supported query types are SQL, LOGICAL and PHYSICAL.
func (c *Client) PlanQuery(ctx context.Context, queryType wire.QueryType, query string, splitPlan bool) (*wire.QueryPlanFragments, error) {
	if err := checkPlanQueryType(queryType); err != nil {
		return nil, err
	}
	future, err := c.conn.send(ctx, wire.RPCGetQueryPlanFragments,
		&wire.GetQueryPlanFragmentsReq{Query: query, Type: queryType, SplitPlan: splitPlan})
	if err != nil {
		return nil, err
	}
	resp, err := future.Await(ctx)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	typed, ok := resp.(*wire.QueryPlanFragments)
	if !ok {
		return nil, drillerrors.ServerErrorf("unexpected response type %T to plan request", resp)
	}
	if typed.Status != wire.RequestStatusOK {
		if typed.Error != nil {
			return nil, drillerrors.Wrap(drillerrors.CodeServerError, typed.Error,
				"server failed to plan query")
		}
		return nil, drillerrors.ServerErrorf("server failed to plan query")
	}
	return typed, nil
}

// CreatePreparedStatement asks the server to prepare a SQL statement,
// blocking for the response.
func (c *Client) CreatePreparedStatement(ctx context.Context, sqlQuery string) (*wire.PreparedStatement, error) {
	future, err := c.conn.send(ctx, wire.RPCCreatePreparedStatement,
		&wire.CreatePreparedStatementReq{SQLQuery: sqlQuery})
	if err != nil {
		return nil, err
	}
	resp, err := future.Await(ctx)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	typed, ok := resp.(*wire.CreatePreparedStatementResp)
	if !ok {
		return nil, drillerrors.ServerErrorf("unexpected response type %T to prepared statement request", resp)
	}
	if typed.Status != wire.RequestStatusOK {
		return nil, prepareError(typed.Error)
	}
	return typed.PreparedStatement, nil
}

func prepareError(serverErr *wire.ServerError) error {
	if serverErr == nil {
		return drillerrors.ServerErrorf("server failed to prepare statement")
	}
	return drillerrors.Wrap(drillerrors.CodeServerError, serverErr,
		"server failed to prepare statement")
}

// ExecutePreparedStatement runs a previously prepared statement and
// blocks for the collected batches, with the same ownership and retry
// semantics as RunQuery.
func (c *Client) ExecutePreparedStatement(ctx context.Context, handle *wire.PreparedStatementHandle) ([]*transport.Batch, error) {
	query := &wire.RunQuery{
		Type:                    wire.QueryTypePrepared,
		ResultsMode:             wire.ResultsModeStreamFull,
		PreparedStatementHandle: handle,
	}
	return c.collect(ctx, "ExecutePreparedStatement", query)
}

// ExecutePreparedStatementWithListener runs a prepared statement,
// pushing results to listener.
func (c *Client) ExecutePreparedStatementWithListener(handle *wire.PreparedStatementHandle, listener transport.ResultsListener) error {
	query := &wire.RunQuery{
		Type:                    wire.QueryTypePrepared,
		ResultsMode:             wire.ResultsModeStreamFull,
		PreparedStatementHandle: handle,
	}
	return c.submitWithListener(query, listener)
}

// collect submits a query with an aggregating listener and blocks on the
// assembled result.
func (c *Client) collect(ctx context.Context, operation string, query *wire.RunQuery) ([]*transport.Batch, error) {
	span := c.tracer.StartSpan(operation)
	ext.SpanKindRPCClient.Set(span)
	span.SetTag("query.type", query.Type.String())
	defer span.Finish()

	aggregator := newResultAggregator(c.conn, query, c.logger, c.metrics)
	if err := c.conn.submit(aggregator, query); err != nil {
		ext.Error.Set(span, true)
		return nil, err
	}
	c.metrics.queriesSubmitted.Inc()

	batches, err := aggregator.getResults(ctx)
	if err != nil {
		ext.Error.Set(span, true)
		return nil, err
	}
	return batches, nil
}

func (c *Client) submitWithListener(query *wire.RunQuery, listener transport.ResultsListener) error {
	if err := c.conn.submit(newDispatchingListener(c.exec, listener), query); err != nil {
		return err
	}
	c.metrics.queriesSubmitted.Inc()
	return nil
}

func checkPlanQueryType(queryType wire.QueryType) error {
	switch queryType {
	case wire.QueryTypeSQL, wire.QueryTypeLogical, wire.QueryTypePhysical:
		return nil
	default:
		return drillerrors.Newf(drillerrors.CodeUnknown,
			"only query types %s, %s and %s are supported in this API",
			wire.QueryTypeSQL, wire.QueryTypeLogical, wire.QueryTypePhysical)
	}
}

// AckFuture is the pending server acknowledgement of a fire-and-forget
// request.
type AckFuture struct {
	future *transport.Future
}

// Await blocks for the server's acknowledgement.
func (f *AckFuture) Await(ctx context.Context) (*wire.Ack, error) {
	resp, err := f.future.Await(ctx)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	ack, ok := resp.(*wire.Ack)
	if !ok {
		return nil, drillerrors.ServerErrorf("unexpected response type %T to acknowledged request", resp)
	}
	return ack, nil
}

// CancelQuery asks the server to cancel a running query. The request is
// fire-and-forget: it does not interrupt a caller blocked on that
// query's results, which still ends with the query's own terminal
// callback. Await the returned future for the server's acknowledgement.
func (c *Client) CancelQuery(ctx context.Context, id *wire.QueryID) (*AckFuture, error) {
	c.logger.Debug("cancelling query", zap.Stringer("queryID", id))
	future, err := c.conn.send(ctx, wire.RPCCancelQuery, id)
	if err != nil {
		return nil, err
	}
	return &AckFuture{future: future}, nil
}

// ResumeQuery asks the server to resume a paused query. Fire-and-forget,
// like CancelQuery.
func (c *Client) ResumeQuery(ctx context.Context, id *wire.QueryID) (*AckFuture, error) {
	c.logger.Debug("resuming query", zap.Stringer("queryID", id))
	future, err := c.conn.send(ctx, wire.RPCResumePausedQuery, id)
	if err != nil {
		return nil, err
	}
	return &AckFuture{future: future}, nil
}
