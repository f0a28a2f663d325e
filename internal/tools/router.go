package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/executor"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

// ============================================================================
// Tool routing
// ============================================================================

// Call is a single tool invocation request as produced by the model.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Status reports how a routed call ended.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the enriched outcome of a routed tool call. Payload carries the
// handler's typed data on success; ValidationErrors is populated only when
// the arguments failed schema validation.
type Result struct {
	Status           Status               `json:"status"`
	Message          string               `json:"message,omitempty"`
	RequestID        string               `json:"request_id"`
	ToolName         string               `json:"tool_name"`
	EmailContext     email.Context        `json:"email_context"`
	Payload          any                  `json:"payload,omitempty"`
	DurationMs       int64                `json:"duration_ms,omitempty"`
	ValidationErrors []schemas.FieldError `json:"validation_errors,omitempty"`
}

// Router validates tool calls against their schemas and dispatches them to
// registered handlers. Validation happens once at this boundary so handlers
// see arguments that already passed the schema checks.
type Router struct {
	schemas *schemas.Registry
	exec    *executor.Registry
}

func NewRouter(schemaReg *schemas.Registry, execReg *executor.Registry) *Router {
	return &Router{schemas: schemaReg, exec: execReg}
}

// DefaultRouter wires the built-in schema and handler registries.
func DefaultRouter() *Router {
	return NewRouter(schemas.Defaults(), executor.Defaults())
}

// Route validates and executes a single tool call. It never returns an
// error: all failures are folded into the Result so callers report them
// uniformly.
func (r *Router) Route(ctx context.Context, call Call, emailCtx email.Context, requestID string) *Result {
	log := logger.Logger.With(
		zap.String("request_id", requestID),
		zap.String("tool_name", call.Name),
	)
	log.Info("routing tool call")

	result := &Result{
		RequestID:    requestID,
		ToolName:     call.Name,
		EmailContext: emailCtx,
	}

	def, ok := r.schemas.Get(call.Name)
	if !ok {
		result.Status = StatusError
		result.Message = fmt.Sprintf("unknown tool: %s, available tools: %s",
			call.Name, strings.Join(r.schemas.Names(), ", "))
		log.Warn("unknown tool requested")
		return result
	}

	if validation := def.Validate(call.Arguments); !validation.Valid {
		result.Status = StatusError
		result.Message = validation.Message()
		result.ValidationErrors = validation.Errors
		log.Warn("tool arguments failed validation",
			zap.Int("error_count", len(validation.Errors)))
		return result
	}

	execResult, err := r.dispatch(ctx, call)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("tool execution failed: %v", err)
		log.Error("tool execution failed", zap.Error(err))
		return result
	}

	result.DurationMs = execResult.DurationMs
	if !execResult.Success {
		result.Status = StatusError
		result.Message = execResult.Error
		log.Warn("tool reported error", zap.String("message", execResult.Error))
		return result
	}

	result.Status = StatusSuccess
	result.Payload = execResult.Data
	log.Info("tool execution completed", zap.Int64("duration_ms", execResult.DurationMs))
	return result
}

// dispatch runs the handler, converting panics into errors so one bad
// handler cannot take down the whole pipeline.
func (r *Router) dispatch(ctx context.Context, call Call) (result *executor.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("handler panic in %s: %v", call.Name, rec)
		}
	}()
	return r.exec.Execute(ctx, call.Name, call.Arguments)
}

// Schemas exposes the schema registry for wire-format serialization.
func (r *Router) Schemas() *schemas.Registry {
	return r.schemas
}
