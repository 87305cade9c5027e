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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "invalid-connection-info", CodeInvalidConnectionInfo.String())
	assert.Equal(t, "code(99)", Code(99).String())
}

func TestCodeMarshalRoundTrip(t *testing.T) {
	for code, name := range codeNames {
		text, err := code.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var parsed Code
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, code, parsed)
	}
}

func TestCodeMarshalUnknown(t *testing.T) {
	_, err := Code(99).MarshalText()
	assert.Error(t, err)

	var c Code
	assert.Error(t, c.UnmarshalText([]byte("not-a-code")))
}
