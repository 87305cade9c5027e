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

// Package drill is a client for submitting queries to a distributed SQL
// query engine and consuming their streamed results.
//
// A Client manages a single connection to one server, chosen at random
// from the endpoints registered with a cluster coordinator (or from a
// literal connection string in direct mode). Queries are submitted
// asynchronously on the wire; RunQuery adapts the resulting stream of
// callbacks into a blocking call that returns the collected batches,
// while RunQueryWithListener hands each callback to caller code in
// arrival order.
//
// When the connection drops mid-query the client reconnects to a live
// endpoint and resubmits the interrupted query once, transparently.
// Batches received before the drop are kept, so delivery across such a
// retry is at least once.
//
// Basic usage:
//
//	client, err := drill.NewClient(drill.Config{}, dialer,
//		drill.WithCoordinatorProvider(newCoordinator),
//		drill.Logger(logger))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	if err := client.Connect(ctx, drill.Properties{"user": "dremio"}); err != nil {
//		return err
//	}
//	batches, err := client.RunQuery(ctx, wire.QueryTypeSQL, "SELECT * FROM t")
//	if err != nil {
//		return err
//	}
//	for _, b := range batches {
//		process(b.Bytes())
//		b.Release()
//	}
package drill
