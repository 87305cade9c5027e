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

import "fmt"

// RPCType tags a request message with the operation it invokes.
type RPCType int32

const (
	RPCHandshake               RPCType = 0
	RPCAck                     RPCType = 1
	RPCGoodbye                 RPCType = 2
	RPCRunQuery                RPCType = 3
	RPCCancelQuery             RPCType = 4
	RPCRequestResults          RPCType = 5
	RPCResumePausedQuery       RPCType = 6
	RPCGetQueryPlanFragments   RPCType = 7
	RPCGetCatalogs             RPCType = 8
	RPCGetSchemas              RPCType = 9
	RPCGetTables               RPCType = 10
	RPCGetColumns              RPCType = 11
	RPCCreatePreparedStatement RPCType = 12
	RPCGetServerMeta           RPCType = 13
)

var rpcTypeNames = map[RPCType]string{
	RPCHandshake:               "HANDSHAKE",
	RPCAck:                     "ACK",
	RPCGoodbye:                 "GOODBYE",
	RPCRunQuery:                "RUN_QUERY",
	RPCCancelQuery:             "CANCEL_QUERY",
	RPCRequestResults:          "REQUEST_RESULTS",
	RPCResumePausedQuery:       "RESUME_PAUSED_QUERY",
	RPCGetQueryPlanFragments:   "GET_QUERY_PLAN_FRAGMENTS",
	RPCGetCatalogs:             "GET_CATALOGS",
	RPCGetSchemas:              "GET_SCHEMAS",
	RPCGetTables:               "GET_TABLES",
	RPCGetColumns:              "GET_COLUMNS",
	RPCCreatePreparedStatement: "CREATE_PREPARED_STATEMENT",
	RPCGetServerMeta:           "GET_SERVER_META",
}

func (t RPCType) String() string {
	if name, ok := rpcTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RPCType(%d)", int32(t))
}
