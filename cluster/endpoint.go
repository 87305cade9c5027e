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

// Package cluster resolves and selects server endpoints, either from a
// direct connection string or from a cluster coordinator.
package cluster

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/openquery/drill-go/drillerrors"
)

// Endpoint is one candidate server address. Immutable once constructed.
type Endpoint struct {
	Address string
	Port    int
}

// String returns the endpoint in host:port form.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Address, e.Port)
}

const maxPort = 1<<16 - 1

// ParseEndpoints parses a direct connection string of the form
//
//	host[:port][,host[:port]]*
//
// into the ordered list of candidate endpoints. Entries without an
// explicit port use defaultPort. Blank entries are ignored. Any grammar
// violation fails the whole parse with an invalid-connection-info error;
// a partial result is never returned.
func ParseEndpoints(spec string, defaultPort int) ([]Endpoint, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, drillerrors.InvalidConnectionInfoErrorf(
			"no server information specified in the connection string")
	}
	if defaultPort <= 0 || defaultPort > maxPort {
		return nil, drillerrors.InvalidConnectionInfoErrorf(
			"no usable default port configured: %d", defaultPort)
	}

	var endpoints []Endpoint
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if entry[0] == ':' {
			return nil, drillerrors.InvalidConnectionInfoErrorf(
				"malformed connection string with hostname or address missing for an entry: %s", entry)
		}

		parts := strings.Split(entry, ":")
		if len(parts) > 2 {
			return nil, drillerrors.InvalidConnectionInfoErrorf(
				"malformed connection string with more than one port in an entry: %s", entry)
		}

		address := strings.TrimSpace(parts[0])
		port := defaultPort
		if len(parts) == 2 {
			// A trailing colon ("host:") means no port was given; the
			// entry falls back to the default like a bare host.
			if portText := strings.TrimSpace(parts[1]); portText != "" {
				parsed, err := strconv.Atoi(portText)
				if err != nil || parsed < 0 || parsed > maxPort {
					return nil, drillerrors.InvalidConnectionInfoErrorf(
						"malformed port value in entry: %s:%s passed in connection string", address, portText)
				}
				port = parsed
			}
		}

		endpoints = append(endpoints, Endpoint{Address: address, Port: port})
	}

	if len(endpoints) == 0 {
		return nil, drillerrors.InvalidConnectionInfoErrorf(
			"no valid server information specified in the connection string")
	}
	return endpoints, nil
}

// ChooseRandom picks one endpoint uniformly at random. Random selection
// spreads independent clients across the cluster instead of piling them
// onto the first entry; callers must not substitute first-in-list.
func ChooseRandom(endpoints []Endpoint, rng *rand.Rand) Endpoint {
	return endpoints[rng.Intn(len(endpoints))]
}
