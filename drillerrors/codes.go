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

package drillerrors

import (
	"fmt"
	"strings"
)

// Code categorizes an error raised by the client.
type Code int

const (
	// CodeOK means no error; it is never carried by a Status.
	CodeOK Code = 0

	// CodeUnknown is for errors that do not fit any other category,
	// typically foreign errors wrapped at the API boundary.
	CodeUnknown Code = 1

	// CodeInvalidConnectionInfo means the connection string or related
	// configuration is malformed. These errors are never retried.
	CodeInvalidConnectionInfo Code = 2

	// CodeConnectionFailure means the client could not establish or keep
	// a connection to a server endpoint, including coordinator discovery
	// failures and handshake rejections.
	CodeConnectionFailure Code = 3

	// CodeTimeout means an operation did not complete before its
	// deadline elapsed or its context was cancelled.
	CodeTimeout Code = 4

	// CodeSerializationFailure means a request could not be built
	// because part of it failed to serialize. The failure is local and
	// synchronous; nothing was sent.
	CodeSerializationFailure Code = 5

	// CodeServerError means the server reported a failure executing the
	// request.
	CodeServerError Code = 6
)

var codeNames = map[Code]string{
	CodeOK:                    "ok",
	CodeUnknown:               "unknown",
	CodeInvalidConnectionInfo: "invalid-connection-info",
	CodeConnectionFailure:     "connection-failure",
	CodeTimeout:               "timeout",
	CodeSerializationFailure:  "serialization-failure",
	CodeServerError:           "server-error",
}

var namesToCode = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for code, name := range codeNames {
		m[name] = code
	}
	return m
}()

// String returns the lowercase dashed name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if name, ok := codeNames[c]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("unknown error code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	code, ok := namesToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown error code string: %s", string(text))
	}
	*c = code
	return nil
}
