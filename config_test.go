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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquery/drill-go/drillerrors"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, 5, cfg.ReconnectAttempts)
	assert.Equal(t, 500, cfg.ReconnectDelayMillis)
	assert.Equal(t, 2, cfg.EventLoopSize)
	assert.Equal(t, 31010, cfg.DefaultPort)
	require.NotNil(t, cfg.SupportComplexTypes)
	assert.True(t, *cfg.SupportComplexTypes)
	assert.Equal(t, DefaultClientName, cfg.ClientName)
	assert.Equal(t, 10000, cfg.CoordinatorTimeoutMillis)
}

func TestConfigWithDefaultsKeepsOverrides(t *testing.T) {
	f := false
	cfg := Config{
		ReconnectAttempts:   1,
		SupportComplexTypes: &f,
		ClientName:          "tester",
	}.withDefaults()

	assert.Equal(t, 1, cfg.ReconnectAttempts)
	assert.False(t, *cfg.SupportComplexTypes)
	assert.Equal(t, "tester", cfg.ClientName)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
reconnectAttempts: 3
reconnectDelayMillis: 50
eventLoopSize: 4
defaultPort: 9000
clientName: analytics
`))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ReconnectAttempts)
	assert.Equal(t, 50, cfg.ReconnectDelayMillis)
	assert.Equal(t, 4, cfg.EventLoopSize)
	assert.Equal(t, 9000, cfg.DefaultPort)
	assert.Equal(t, "analytics", cfg.ClientName)
}

func TestParseConfigInvalidYAML(t *testing.T) {
	_, err := ParseConfig([]byte("reconnectAttempts: [oops"))
	require.Error(t, err)
	assert.True(t, drillerrors.IsSerializationFailure(err))
}

func TestDecodeProperties(t *testing.T) {
	tests := []struct {
		msg   string
		props Properties
		want  connectionProperties
	}{
		{
			msg:  "nil map",
			want: connectionProperties{},
		},
		{
			msg:   "client-consumed keys",
			props: Properties{"drillbit": "host:31010", "user": "alice"},
			want:  connectionProperties{Drillbit: "host:31010", User: "alice"},
		},
		{
			msg:   "unknown keys ignored",
			props: Properties{"password": "hunter2", "schema": "dfs"},
			want:  connectionProperties{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := decodeProperties(tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildUserProperties(t *testing.T) {
	props := buildUserProperties(Properties{
		"zookeeper": "zk1:2181",
		"user":      "alice",
		"schema":    "dfs",
	})
	require.NotNil(t, props)
	require.Len(t, props.Properties, 3)

	// Deterministic key order.
	assert.Equal(t, "schema", props.Properties[0].Key)
	assert.Equal(t, "user", props.Properties[1].Key)
	assert.Equal(t, "zookeeper", props.Properties[2].Key)

	assert.Nil(t, buildUserProperties(nil), "empty input should produce no properties")
}

func TestCredentialsFromProperties(t *testing.T) {
	tests := []struct {
		msg   string
		props Properties
		want  string
	}{
		{msg: "no properties", want: "anonymous"},
		{msg: "user set", props: Properties{"user": "alice"}, want: "alice"},
		{msg: "user key case-insensitive", props: Properties{"User": "bob"}, want: "bob"},
		{msg: "other keys only", props: Properties{"schema": "dfs"}, want: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			creds := credentialsFromProperties(buildUserProperties(tt.props))
			assert.Equal(t, tt.want, creds.UserName)
		})
	}
}
