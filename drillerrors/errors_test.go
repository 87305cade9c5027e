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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewfOKCodeIsNil(t *testing.T) {
	assert.Nil(t, Newf(CodeOK, "nothing wrong"))
	assert.Nil(t, Wrap(CodeOK, errors.New("cause"), "nothing wrong"))
}

func TestStatusCodeAndMessage(t *testing.T) {
	st := Newf(CodeConnectionFailure, "handshake to %s failed", "10.0.0.1:31010")
	require.NotNil(t, st)
	assert.Equal(t, CodeConnectionFailure, st.Code())
	assert.Equal(t, "handshake to 10.0.0.1:31010 failed", st.Message())
	assert.Equal(t, "code:connection-failure message:handshake to 10.0.0.1:31010 failed", st.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	st := Wrap(CodeConnectionFailure, cause, "submission failed")

	assert.True(t, errors.Is(st, cause), "cause must be reachable via errors.Is")
	assert.Equal(t, CodeConnectionFailure, FromError(st).Code())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		msg      string
		give     error
		wantNil  bool
		wantCode Code
	}{
		{msg: "nil error", give: nil, wantNil: true},
		{msg: "plain status", give: Newf(CodeTimeout, "deadline"), wantCode: CodeTimeout},
		{
			msg:      "wrapped status",
			give:     fmt.Errorf("run query: %w", Newf(CodeServerError, "boom")),
			wantCode: CodeServerError,
		},
		{msg: "foreign error", give: errors.New("boom"), wantCode: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			st := FromError(tt.give)
			if tt.wantNil {
				assert.Nil(t, st)
				return
			}
			require.NotNil(t, st)
			assert.Equal(t, tt.wantCode, st.Code())
		})
	}
}

func TestIsStatus(t *testing.T) {
	assert.False(t, IsStatus(nil))
	assert.False(t, IsStatus(errors.New("boom")))
	assert.True(t, IsStatus(Newf(CodeUnknown, "boom")))
	assert.True(t, IsStatus(fmt.Errorf("wrapped: %w", Newf(CodeUnknown, "boom"))))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		construct func(string, ...interface{}) *Status
		predicate func(error) bool
	}{
		{"invalid connection info", InvalidConnectionInfoErrorf, IsInvalidConnectionInfo},
		{"connection failure", ConnectionFailureErrorf, IsConnectionFailure},
		{"timeout", TimeoutErrorf, IsTimeout},
		{"serialization failure", SerializationFailureErrorf, IsSerializationFailure},
		{"server error", ServerErrorf, IsServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.construct("oops")
			assert.True(t, tt.predicate(err))
			assert.False(t, tt.predicate(errors.New("unrelated")))

			for _, other := range tests {
				if other.name != tt.name {
					assert.False(t, other.predicate(err),
						"%s must not classify as %s", tt.name, other.name)
				}
			}
		})
	}
}
