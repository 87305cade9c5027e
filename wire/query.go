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

// QueryType identifies the kind of plan carried by a RunQuery message.
type QueryType int32

const (
	QueryTypeUnknown  QueryType = 0
	QueryTypeSQL      QueryType = 1
	QueryTypeLogical  QueryType = 2
	QueryTypePhysical QueryType = 3
	// QueryTypeExecution submits pre-planned fragments produced by an
	// earlier planning call, bypassing the planner entirely.
	QueryTypeExecution QueryType = 4
	// QueryTypePrepared executes a previously created prepared statement.
	QueryTypePrepared QueryType = 5
)

var queryTypeNames = map[QueryType]string{
	QueryTypeUnknown:   "UNKNOWN",
	QueryTypeSQL:       "SQL",
	QueryTypeLogical:   "LOGICAL",
	QueryTypePhysical:  "PHYSICAL",
	QueryTypeExecution: "EXECUTION",
	QueryTypePrepared:  "PREPARED_STATEMENT",
}

func (t QueryType) String() string {
	if name, ok := queryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("QueryType(%d)", int32(t))
}

// QueryResultsMode selects how the server delivers results. The protocol
// currently defines a single mode: the full result set is streamed to the
// client as it is produced.
type QueryResultsMode int32

// ResultsModeStreamFull streams every batch to the client.
const ResultsModeStreamFull QueryResultsMode = 1

// QueryID is the server-assigned identifier for a running query.
type QueryID struct {
	Part1 int64 `json:"part1"`
	Part2 int64 `json:"part2"`
}

// String renders the id in the canonical dashed-hex form used in server
// logs, so client and server diagnostics can be correlated.
func (id *QueryID) String() string {
	if id == nil {
		return "<nil>"
	}
	p1, p2 := uint64(id.Part1), uint64(id.Part2)
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		p1>>32, (p1>>16)&0xffff, p1&0xffff, p2>>48, p2&0xffffffffffff)
}

// QueryState is the terminal (or in-flight) state reported by the server
// for a query.
type QueryState int32

const (
	QueryStateStarting              QueryState = 0
	QueryStateRunning               QueryState = 1
	QueryStateCompleted             QueryState = 2
	QueryStateCanceled              QueryState = 3
	QueryStateFailed                QueryState = 4
	QueryStateCancellationRequested QueryState = 5
	QueryStateEnqueued              QueryState = 6
	QueryStatePreparing             QueryState = 7
	QueryStatePlanning              QueryState = 8
)

var queryStateNames = map[QueryState]string{
	QueryStateStarting:              "STARTING",
	QueryStateRunning:               "RUNNING",
	QueryStateCompleted:             "COMPLETED",
	QueryStateCanceled:              "CANCELED",
	QueryStateFailed:                "FAILED",
	QueryStateCancellationRequested: "CANCELLATION_REQUESTED",
	QueryStateEnqueued:              "ENQUEUED",
	QueryStatePreparing:             "PREPARING",
	QueryStatePlanning:              "PLANNING",
}

func (s QueryState) String() string {
	if name, ok := queryStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("QueryState(%d)", int32(s))
}

// RunQuery submits a query or pre-planned fragments for execution.
type RunQuery struct {
	Type        QueryType        `json:"type"`
	ResultsMode QueryResultsMode `json:"resultsMode"`

	// Plan is the query text (SQL, logical or physical plan). For
	// fragment execution it carries the serialized fragment plans, kept
	// for server-side logging.
	Plan string `json:"plan,omitempty"`

	Fragments []*PlanFragment `json:"fragments,omitempty"`

	PreparedStatementHandle *PreparedStatementHandle `json:"preparedStatementHandle,omitempty"`
}

// FragmentHandle names one fragment of a distributed plan.
type FragmentHandle struct {
	QueryID         *QueryID `json:"queryId,omitempty"`
	MajorFragmentID int32    `json:"majorFragmentId"`
	MinorFragmentID int32    `json:"minorFragmentId"`
}

// PlanFragment is one unit of a split physical plan, as returned by the
// planning call and resubmitted for execution.
type PlanFragment struct {
	Handle       *FragmentHandle `json:"handle,omitempty"`
	FragmentJSON string          `json:"fragmentJson,omitempty"`
	LeafFragment bool            `json:"leafFragment,omitempty"`
}

// GetQueryPlanFragmentsReq asks the planner to compile a query into its
// executable fragments without running them. With SplitPlan set the
// server returns one fragment per execution unit; otherwise a single
// fragment carries the whole plan.
type GetQueryPlanFragmentsReq struct {
	Query     string    `json:"query"`
	Type      QueryType `json:"type,omitempty"`
	SplitPlan bool      `json:"splitPlan,omitempty"`
}

// QueryPlanFragments carries the planner's output, resubmittable for
// execution as-is.
type QueryPlanFragments struct {
	Status    RequestStatus   `json:"status"`
	QueryID   *QueryID        `json:"queryId,omitempty"`
	Fragments []*PlanFragment `json:"fragments,omitempty"`
	Error     *ServerError    `json:"error,omitempty"`
}

// PreparedStatementHandle is the server-issued, opaque handle for a
// prepared statement. Clients must not interpret its contents.
type PreparedStatementHandle struct {
	ServerInfo []byte `json:"serverInfo,omitempty"`
}

// CreatePreparedStatementReq asks the server to prepare a SQL statement.
type CreatePreparedStatementReq struct {
	SQLQuery string `json:"sqlQuery"`
}

// PreparedStatement couples the handle with the result-set column
// metadata the server derived at prepare time.
type PreparedStatement struct {
	Columns []*ColumnMetadata        `json:"columns,omitempty"`
	Handle  *PreparedStatementHandle `json:"serverHandle,omitempty"`
}

// CreatePreparedStatementResp carries the prepared statement, or the
// server error that prevented preparation.
type CreatePreparedStatementResp struct {
	Status            RequestStatus      `json:"status"`
	PreparedStatement *PreparedStatement `json:"preparedStatement,omitempty"`
	Error             *ServerError       `json:"error,omitempty"`
}

// QueryData is the header of one streamed result batch.
type QueryData struct {
	QueryID  *QueryID `json:"queryId,omitempty"`
	RowCount int32    `json:"rowCount"`
}

// Ack is the server's acknowledgement of a fire-and-forget request.
type Ack struct {
	OK bool `json:"ok"`
}

// ServerError is an error reported by the server inside a response
// message, as opposed to a transport-level failure.
type ServerError struct {
	ErrorID string `json:"errorId,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *ServerError) Error() string {
	if e.ErrorID == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (error id %s)", e.Message, e.ErrorID)
}
