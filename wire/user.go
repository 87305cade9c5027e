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

package wire

import "strings"

// Property is one key/value connection property.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UserProperties is the ordered set of connection properties forwarded to
// the server during the handshake. Properties are opaque to this client
// beyond the few keys it consumes itself (see the client package).
type UserProperties struct {
	Properties []*Property `json:"properties,omitempty"`
}

// Get returns the value for key, case-insensitively, or "".
func (p *UserProperties) Get(key string) string {
	if p == nil {
		return ""
	}
	for _, prop := range p.Properties {
		if strings.EqualFold(prop.Key, key) {
			return prop.Value
		}
	}
	return ""
}

// UserCredentials identifies the user a query runs as. The identity is
// opaque to this client; it is derived from connection properties and
// passed through to the server.
type UserCredentials struct {
	UserName string `json:"userName"`
}

// EndpointInfo describes the software at the far end of a connection, as
// reported during the handshake.
type EndpointInfo struct {
	Name         string `json:"name,omitempty"`
	Version      string `json:"version,omitempty"`
	MajorVersion uint32 `json:"majorVersion,omitempty"`
	MinorVersion uint32 `json:"minorVersion,omitempty"`
	PatchVersion uint32 `json:"patchVersion,omitempty"`
}
