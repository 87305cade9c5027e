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
	"time"

	"github.com/uber-go/mapdecode"
	yaml "gopkg.in/yaml.v2"

	"github.com/openquery/drill-go/drillerrors"
)

const (
	defaultReconnectAttempts = 5
	defaultReconnectDelay    = 500 * time.Millisecond
	defaultEventLoopSize     = 2
	defaultUserPort          = 31010
	defaultCoordTimeout      = 10 * time.Second

	// DefaultClientName identifies this client to servers unless
	// overridden by configuration or SetClientName.
	DefaultClientName = "OpenQuery Go client"
)

// Config carries the client's tunables. The zero value is usable: any
// unset field is filled with its default at construction time.
type Config struct {
	// ReconnectAttempts bounds the reconnect retry budget.
	ReconnectAttempts int `yaml:"reconnectAttempts" config:"reconnectAttempts"`

	// ReconnectDelayMillis is the pause before each reconnect attempt.
	ReconnectDelayMillis int `yaml:"reconnectDelayMillis" config:"reconnectDelayMillis"`

	// EventLoopSize is the number of goroutines driving transport I/O.
	EventLoopSize int `yaml:"eventLoopSize" config:"eventLoopSize"`

	// DefaultPort is used for connection-string entries that do not name
	// a port. Direct connections without a usable default port are a
	// configuration error.
	DefaultPort int `yaml:"defaultPort" config:"defaultPort"`

	// SupportComplexTypes advertises whether the consumer accepts
	// complex (map, array) columns natively. Defaults to true; when
	// false, servers return such columns as JSON-encoded text.
	SupportComplexTypes *bool `yaml:"supportComplexTypes" config:"supportComplexTypes"`

	// ClientName identifies this client to servers during handshakes.
	ClientName string `yaml:"clientName" config:"clientName"`

	// CoordinatorTimeoutMillis bounds coordinator session establishment
	// when the client owns the coordinator connection.
	CoordinatorTimeoutMillis int `yaml:"coordinatorTimeoutMillis" config:"coordinatorTimeoutMillis"`
}

func (c Config) withDefaults() Config {
	if c.ReconnectAttempts == 0 {
		c.ReconnectAttempts = defaultReconnectAttempts
	}
	if c.ReconnectDelayMillis == 0 {
		c.ReconnectDelayMillis = int(defaultReconnectDelay / time.Millisecond)
	}
	if c.EventLoopSize == 0 {
		c.EventLoopSize = defaultEventLoopSize
	}
	if c.DefaultPort == 0 {
		c.DefaultPort = defaultUserPort
	}
	if c.SupportComplexTypes == nil {
		t := true
		c.SupportComplexTypes = &t
	}
	if c.ClientName == "" {
		c.ClientName = DefaultClientName
	}
	if c.CoordinatorTimeoutMillis == 0 {
		c.CoordinatorTimeoutMillis = int(defaultCoordTimeout / time.Millisecond)
	}
	return c
}

func (c Config) reconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelayMillis) * time.Millisecond
}

func (c Config) coordinatorTimeout() time.Duration {
	return time.Duration(c.CoordinatorTimeoutMillis) * time.Millisecond
}

// ParseConfig unmarshals a YAML document into a Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, drillerrors.Wrap(drillerrors.CodeSerializationFailure, err,
			"failed to parse client configuration")
	}
	return cfg, nil
}

// Properties are the connection properties supplied at Connect time. The
// full set is forwarded to the server; the client itself consumes only
// the keys below.
type Properties map[string]string

// Property keys consumed by the client.
const (
	// PropertyDrillbit carries the direct connection string
	// (host[:port][,host[:port]]*).
	PropertyDrillbit = "drillbit"

	// PropertyUser names the identity queries run as.
	PropertyUser = "user"
)

// connectionProperties are the client-consumed properties, decoded from
// the raw property map.
type connectionProperties struct {
	Drillbit string `config:"drillbit"`
	User     string `config:"user"`
}

func decodeProperties(props Properties) (connectionProperties, error) {
	var out connectionProperties
	if props == nil {
		return out, nil
	}
	// Property maps carry arbitrary server-bound keys; only the tagged
	// fields are for the client, the rest pass through untouched.
	if err := mapdecode.Decode(&out, map[string]string(props),
		mapdecode.TagName("config"),
		mapdecode.IgnoreUnused(true)); err != nil {
		return out, drillerrors.Wrap(drillerrors.CodeInvalidConnectionInfo, err,
			"failed to decode connection properties")
	}
	return out, nil
}
