// Package triage runs the email processing pipeline: model invocation,
// response interpretation, tool routing, and audit recording.
package triage

import (
	"context"
	"time"

	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
)

// DecisionStatus tags how an interpreted response resolved.
type DecisionStatus string

const (
	DecisionSuccess DecisionStatus = "success"
	DecisionSkipped DecisionStatus = "skipped"
	DecisionError   DecisionStatus = "error"
)

// Decision is the interpreter's verdict on one model response. ToolResult
// is set only when a tool call was routed.
type Decision struct {
	Status     DecisionStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	ToolResult *tools.Result  `json:"tool_result,omitempty"`
}

// FallbackStatus reports which layer produced the response.
type FallbackStatus struct {
	FallbackUsed bool   `json:"fallback_used"`
	FallbackType string `json:"fallback_type"`
	ModelUsed    string `json:"model_used"`
}

// Outcome is the full result of processing one inbound email.
type Outcome struct {
	RequestID        string         `json:"request_id"`
	Status           DecisionStatus `json:"status"`
	Reason           string         `json:"reason,omitempty"`
	ToolResult       *tools.Result  `json:"tool_result,omitempty"`
	Fallback         FallbackStatus `json:"fallback"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	Timestamp        time.Time      `json:"timestamp"`
}

// Audit statuses recorded around a processing cycle.
const (
	AuditStarted   = "PROCESSING_STARTED"
	AuditCompleted = "COMPLETED"
	AuditError     = "ERROR"
)

// AuditEntry is one row of the processing audit trail.
type AuditEntry struct {
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	Subject   string    `json:"subject"`
	Sender    string    `json:"sender"`
	UserID    string    `json:"user_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClassificationRecord persists a successful triage result.
type ClassificationRecord struct {
	RequestID string    `json:"request_id"`
	Subject   string    `json:"subject"`
	Sender    string    `json:"sender"`
	UserID    string    `json:"user_id"`
	ToolName  string    `json:"tool_name"`
	Result    any       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder persists audit and classification records. Failures must not
// break the processing flow; the processor logs and continues.
type Recorder interface {
	RecordAudit(ctx context.Context, entry AuditEntry) error
	RecordClassification(ctx context.Context, rec ClassificationRecord) error
}
