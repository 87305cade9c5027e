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

package cluster

import "time"

// Coordinator is the cluster membership service the client consults when
// it is not connecting directly to a named endpoint. Implementations
// typically wrap a distributed configuration service that servers
// register themselves with.
//
// AvailableEndpoints returning an empty set is not an error at this
// layer: during the initial connect the caller treats it as a failed
// precondition, while the reconnect loop treats it as transient and
// retries.
type Coordinator interface {
	// Start establishes the coordinator session, waiting up to timeout.
	Start(timeout time.Duration) error

	// AvailableEndpoints returns the currently registered endpoints.
	AvailableEndpoints() ([]Endpoint, error)

	// Close tears down the coordinator session. Implementations must
	// tolerate multiple calls.
	Close() error
}
