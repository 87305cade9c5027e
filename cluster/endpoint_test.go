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

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquery/drill-go/drillerrors"
)

func TestParseEndpoints(t *testing.T) {
	tests := []struct {
		msg         string
		give        string
		defaultPort int
		want        []Endpoint
	}{
		{
			msg:         "single host default port",
			give:        "10.0.0.1",
			defaultPort: 31010,
			want:        []Endpoint{{Address: "10.0.0.1", Port: 31010}},
		},
		{
			msg:         "single host explicit port",
			give:        "10.0.0.1:9000",
			defaultPort: 31010,
			want:        []Endpoint{{Address: "10.0.0.1", Port: 9000}},
		},
		{
			msg:         "mixed list",
			give:        "10.0.0.1,10.0.0.2:9000",
			defaultPort: 31010,
			want: []Endpoint{
				{Address: "10.0.0.1", Port: 31010},
				{Address: "10.0.0.2", Port: 9000},
			},
		},
		{
			msg:         "blank entries ignored",
			give:        " host1 , , host2:1234 ,",
			defaultPort: 31010,
			want: []Endpoint{
				{Address: "host1", Port: 31010},
				{Address: "host2", Port: 1234},
			},
		},
		{
			msg:         "spaces around port",
			give:        "host1: 5000",
			defaultPort: 31010,
			want:        []Endpoint{{Address: "host1", Port: 5000}},
		},
		{
			msg:         "trailing colon uses default port",
			give:        "host1:,host2:9000",
			defaultPort: 31010,
			want: []Endpoint{
				{Address: "host1", Port: 31010},
				{Address: "host2", Port: 9000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := ParseEndpoints(tt.give, tt.defaultPort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEndpointsInvalid(t *testing.T) {
	tests := []struct {
		msg         string
		give        string
		defaultPort int
	}{
		{msg: "empty string", give: "", defaultPort: 31010},
		{msg: "whitespace only", give: "   ", defaultPort: 31010},
		{msg: "leading colon", give: ":9000", defaultPort: 31010},
		{msg: "leading colon in list", give: "host1,:9000", defaultPort: 31010},
		{msg: "more than one port", give: "host1:9000:9001", defaultPort: 31010},
		{msg: "non-numeric port", give: "host1:abc", defaultPort: 31010},
		{msg: "port out of range", give: "host1:70000", defaultPort: 31010},
		{msg: "negative port", give: "host1:-1", defaultPort: 31010},
		{msg: "only blank entries", give: ",,,", defaultPort: 31010},
		{msg: "unusable default port", give: "host1", defaultPort: 0},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := ParseEndpoints(tt.give, tt.defaultPort)
			assert.Nil(t, got, "a partial result must never be returned")
			require.Error(t, err)
			assert.True(t, drillerrors.IsInvalidConnectionInfo(err),
				"want invalid-connection-info, got %v", err)
		})
	}
}

func TestParseEndpointsNamesOffendingEntry(t *testing.T) {
	_, err := ParseEndpoints("host1:abc", 31010)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host1:abc")
}

func TestChooseRandomIsUniform(t *testing.T) {
	endpoints := []Endpoint{
		{Address: "a", Port: 1},
		{Address: "b", Port: 2},
		{Address: "c", Port: 3},
	}
	rng := rand.New(rand.NewSource(7))

	counts := make(map[string]int)
	for i := 0; i < 3000; i++ {
		counts[ChooseRandom(endpoints, rng).Address]++
	}

	for _, ep := range endpoints {
		assert.Greater(t, counts[ep.Address], 800,
			"endpoint %s chosen too rarely for a uniform pick", ep.Address)
	}
}
