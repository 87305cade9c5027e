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

// RequestStatus is the server's verdict on a metadata or prepare request.
type RequestStatus int32

const (
	RequestStatusUnknown RequestStatus = 0
	RequestStatusOK      RequestStatus = 1
	RequestStatusFailed  RequestStatus = 2
	RequestStatusTimeout RequestStatus = 3
)

// LikeFilter is a SQL LIKE pattern with an optional escape character.
// The client forwards filters untouched; pattern matching is performed
// entirely by the server.
type LikeFilter struct {
	Pattern string `json:"pattern,omitempty"`
	Escape  string `json:"escape,omitempty"`
}

// GetCatalogsReq lists catalogs visible to the session.
type GetCatalogsReq struct {
	CatalogNameFilter *LikeFilter `json:"catalogNameFilter,omitempty"`
}

// CatalogMetadata describes one catalog row.
type CatalogMetadata struct {
	CatalogName string `json:"catalogName"`
	Description string `json:"description,omitempty"`
	Connect     string `json:"connect,omitempty"`
}

// GetCatalogsResp is the response to GetCatalogsReq.
type GetCatalogsResp struct {
	Status   RequestStatus      `json:"status"`
	Catalogs []*CatalogMetadata `json:"catalogs,omitempty"`
	Error    *ServerError       `json:"error,omitempty"`
}

// GetSchemasReq lists schemas matching the given filters.
type GetSchemasReq struct {
	CatalogNameFilter *LikeFilter `json:"catalogNameFilter,omitempty"`
	SchemaNameFilter  *LikeFilter `json:"schemaNameFilter,omitempty"`
}

// SchemaMetadata describes one schema row.
type SchemaMetadata struct {
	CatalogName string `json:"catalogName"`
	SchemaName  string `json:"schemaName"`
	Owner       string `json:"owner,omitempty"`
	Type        string `json:"type,omitempty"`
	Mutable     string `json:"mutable,omitempty"`
}

// GetSchemasResp is the response to GetSchemasReq.
type GetSchemasResp struct {
	Status  RequestStatus     `json:"status"`
	Schemas []*SchemaMetadata `json:"schemas,omitempty"`
	Error   *ServerError      `json:"error,omitempty"`
}

// GetTablesReq lists tables matching the given filters. TableTypeFilter
// is an exact-match set (for example TABLE, VIEW), not a pattern.
type GetTablesReq struct {
	CatalogNameFilter *LikeFilter `json:"catalogNameFilter,omitempty"`
	SchemaNameFilter  *LikeFilter `json:"schemaNameFilter,omitempty"`
	TableNameFilter   *LikeFilter `json:"tableNameFilter,omitempty"`
	TableTypeFilter   []string    `json:"tableTypeFilter,omitempty"`
}

// TableMetadata describes one table row.
type TableMetadata struct {
	CatalogName string `json:"catalogName"`
	SchemaName  string `json:"schemaName"`
	TableName   string `json:"tableName"`
	Type        string `json:"type,omitempty"`
}

// GetTablesResp is the response to GetTablesReq.
type GetTablesResp struct {
	Status RequestStatus    `json:"status"`
	Tables []*TableMetadata `json:"tables,omitempty"`
	Error  *ServerError     `json:"error,omitempty"`
}

// GetColumnsReq lists columns matching the given filters.
type GetColumnsReq struct {
	CatalogNameFilter *LikeFilter `json:"catalogNameFilter,omitempty"`
	SchemaNameFilter  *LikeFilter `json:"schemaNameFilter,omitempty"`
	TableNameFilter   *LikeFilter `json:"tableNameFilter,omitempty"`
	ColumnNameFilter  *LikeFilter `json:"columnNameFilter,omitempty"`
}

// ColumnMetadata describes one column row.
type ColumnMetadata struct {
	CatalogName     string `json:"catalogName"`
	SchemaName      string `json:"schemaName"`
	TableName       string `json:"tableName"`
	ColumnName      string `json:"columnName"`
	OrdinalPosition int32  `json:"ordinalPosition"`
	DataType        string `json:"dataType,omitempty"`
	IsNullable      bool   `json:"isNullable,omitempty"`
	DefaultValue    string `json:"defaultValue,omitempty"`
}

// GetColumnsResp is the response to GetColumnsReq.
type GetColumnsResp struct {
	Status  RequestStatus     `json:"status"`
	Columns []*ColumnMetadata `json:"columns,omitempty"`
	Error   *ServerError      `json:"error,omitempty"`
}
