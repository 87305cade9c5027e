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

	"github.com/openquery/drill-go/drillerrors"
	"github.com/openquery/drill-go/wire"
)

// Metadata operations. Filters use SQL LIKE patterns with an optional
// escape character; the client forwards them verbatim and all matching
// happens server side.

// Catalogs lists the catalogs visible to this session.
func (c *Client) Catalogs(ctx context.Context, req *wire.GetCatalogsReq) ([]*wire.CatalogMetadata, error) {
	if req == nil {
		req = &wire.GetCatalogsReq{}
	}
	resp, err := c.metadataCall(ctx, wire.RPCGetCatalogs, req)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*wire.GetCatalogsResp)
	if !ok {
		return nil, badMetadataResponse(wire.RPCGetCatalogs, resp)
	}
	if typed.Status != wire.RequestStatusOK {
		return nil, metadataError(wire.RPCGetCatalogs, typed.Status, typed.Error)
	}
	return typed.Catalogs, nil
}

// Schemas lists the schemas matching the request's filters.
func (c *Client) Schemas(ctx context.Context, req *wire.GetSchemasReq) ([]*wire.SchemaMetadata, error) {
	if req == nil {
		req = &wire.GetSchemasReq{}
	}
	resp, err := c.metadataCall(ctx, wire.RPCGetSchemas, req)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*wire.GetSchemasResp)
	if !ok {
		return nil, badMetadataResponse(wire.RPCGetSchemas, resp)
	}
	if typed.Status != wire.RequestStatusOK {
		return nil, metadataError(wire.RPCGetSchemas, typed.Status, typed.Error)
	}
	return typed.Schemas, nil
}

// Tables lists the tables matching the request's filters. The table
// type filter is an exact-match set, not a pattern.
func (c *Client) Tables(ctx context.Context, req *wire.GetTablesReq) ([]*wire.TableMetadata, error) {
	if req == nil {
		req = &wire.GetTablesReq{}
	}
	resp, err := c.metadataCall(ctx, wire.RPCGetTables, req)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*wire.GetTablesResp)
	if !ok {
		return nil, badMetadataResponse(wire.RPCGetTables, resp)
	}
	if typed.Status != wire.RequestStatusOK {
		return nil, metadataError(wire.RPCGetTables, typed.Status, typed.Error)
	}
	return typed.Tables, nil
}

// Columns lists the columns matching the request's filters.
func (c *Client) Columns(ctx context.Context, req *wire.GetColumnsReq) ([]*wire.ColumnMetadata, error) {
	if req == nil {
		req = &wire.GetColumnsReq{}
	}
	resp, err := c.metadataCall(ctx, wire.RPCGetColumns, req)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*wire.GetColumnsResp)
	if !ok {
		return nil, badMetadataResponse(wire.RPCGetColumns, resp)
	}
	if typed.Status != wire.RequestStatusOK {
		return nil, metadataError(wire.RPCGetColumns, typed.Status, typed.Error)
	}
	return typed.Columns, nil
}

func (c *Client) metadataCall(ctx context.Context, rpcType wire.RPCType, req interface{}) (interface{}, error) {
	future, err := c.conn.send(ctx, rpcType, req)
	if err != nil {
		return nil, err
	}
	resp, err := future.Await(ctx)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	return resp, nil
}

func badMetadataResponse(rpcType wire.RPCType, resp interface{}) error {
	return drillerrors.ServerErrorf("unexpected response type %T to %s request", resp, rpcType)
}

func metadataError(rpcType wire.RPCType, status wire.RequestStatus, serverErr *wire.ServerError) error {
	if status == wire.RequestStatusTimeout {
		return drillerrors.TimeoutErrorf("server timed out handling %s request", rpcType)
	}
	if serverErr != nil {
		return drillerrors.Wrap(drillerrors.CodeServerError, serverErr,
			"server failed %s request", rpcType)
	}
	return drillerrors.ServerErrorf("server failed %s request", rpcType)
}
