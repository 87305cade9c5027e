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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/drilltest"
	"github.com/openquery/drill-go/wire"
)

func connectedTestClient(t *testing.T) (*Client, *drilltest.FakeDialer) {
	t.Helper()
	dialer := drilltest.NewFakeDialer()
	client := newTestClient(t, dialer, fastConfig(), DirectConnection())
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Connect(context.Background(), directProps("localhost")))
	return client, dialer
}

func TestCatalogs(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetCatalogs, &wire.GetCatalogsResp{
		Status:   wire.RequestStatusOK,
		Catalogs: []*wire.CatalogMetadata{{CatalogName: "DRILL"}},
	})

	catalogs, err := client.Catalogs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, catalogs, 1)
	assert.Equal(t, "DRILL", catalogs[0].CatalogName)
}

func TestSchemas(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetSchemas, &wire.GetSchemasResp{
		Status: wire.RequestStatusOK,
		Schemas: []*wire.SchemaMetadata{
			{CatalogName: "DRILL", SchemaName: "dfs.tmp"},
		},
	})

	schemas, err := client.Schemas(context.Background(), &wire.GetSchemasReq{
		SchemaNameFilter: &wire.LikeFilter{Pattern: "dfs.%"},
	})
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, "dfs.tmp", schemas[0].SchemaName)
}

func TestTables(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetTables, &wire.GetTablesResp{
		Status: wire.RequestStatusOK,
		Tables: []*wire.TableMetadata{
			{SchemaName: "dfs.tmp", TableName: "events", Type: "TABLE"},
		},
	})

	tables, err := client.Tables(context.Background(), &wire.GetTablesReq{
		TableTypeFilter: []string{"TABLE"},
	})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "events", tables[0].TableName)
}

func TestColumns(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetColumns, &wire.GetColumnsResp{
		Status: wire.RequestStatusOK,
		Columns: []*wire.ColumnMetadata{
			{TableName: "events", ColumnName: "ts", OrdinalPosition: 1, DataType: "TIMESTAMP"},
		},
	})

	columns, err := client.Columns(context.Background(), &wire.GetColumnsReq{
		ColumnNameFilter: &wire.LikeFilter{Pattern: "ts"},
	})
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, "ts", columns[0].ColumnName)
}

func TestMetadataRequiresConnection(t *testing.T) {
	dialer := drilltest.NewFakeDialer()
	client := newTestClient(t, dialer, fastConfig(), DirectConnection())
	defer client.Close()

	_, err := client.Catalogs(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, drillerrors.IsConnectionFailure(err))
	assert.Empty(t, dialer.Transport.Sent())
}

func TestMetadataServerFailure(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetTables, &wire.GetTablesResp{
		Status: wire.RequestStatusFailed,
		Error:  &wire.ServerError{Message: "not authorized"},
	})

	_, err := client.Tables(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, drillerrors.IsServerError(err))
	assert.Contains(t, err.Error(), "not authorized")
}

func TestMetadataServerTimeout(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetSchemas, &wire.GetSchemasResp{
		Status: wire.RequestStatusTimeout,
	})

	_, err := client.Schemas(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, drillerrors.IsTimeout(err))
}

func TestMetadataUnexpectedResponse(t *testing.T) {
	client, dialer := connectedTestClient(t)
	dialer.Transport.RespondWith(wire.RPCGetCatalogs, &wire.GetSchemasResp{})

	_, err := client.Catalogs(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, drillerrors.IsServerError(err))
}
