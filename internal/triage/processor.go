package triage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/model"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
)

// Processor orchestrates one email through the full pipeline. It is
// stateless across requests and safe for concurrent use.
type Processor struct {
	invoker     *model.Invoker
	router      *tools.Router
	interpreter *Interpreter
	recorder    Recorder // nil disables persistence
	context     string   // extra system prompt context
}

func NewProcessor(invoker *model.Invoker, router *tools.Router, recorder Recorder) *Processor {
	return &Processor{
		invoker:     invoker,
		router:      router,
		interpreter: NewInterpreter(router),
		recorder:    recorder,
	}
}

// WithContext returns a copy of the processor that appends extra context
// to the system prompt.
func (p *Processor) WithContext(extra string) *Processor {
	clone := *p
	clone.context = extra
	return &clone
}

// Process runs the pipeline for one inbound email. It always returns an
// outcome: invocation exhaustion resolves through the rule-based fallback
// and persistence failures are logged and swallowed.
func (p *Processor) Process(ctx context.Context, inbound *email.Inbound) *Outcome {
	start := time.Now()
	requestID := uuid.NewString()
	emailCtx := inbound.Context()

	log := logger.Logger.With(zap.String("request_id", requestID))
	log.Info("processing email",
		zap.String("subject", inbound.Subject),
		zap.String("sender", inbound.Sender),
		zap.String("user_id", emailCtx.UserID),
	)

	p.recordAudit(ctx, requestID, emailCtx, AuditStarted, "")

	messages := []model.Message{
		{Role: "system", Content: SystemPrompt(p.context)},
		{Role: "user", Content: inbound.FormatForModel()},
	}
	invocation := p.invoker.InvokeWithTools(ctx, messages, p.router.Schemas().WireFormat())
	resp := invocation.Response

	decision := p.interpreter.Interpret(ctx, resp, emailCtx, requestID)

	outcome := &Outcome{
		RequestID:  requestID,
		Status:     decision.Status,
		Reason:     decision.Reason,
		ToolResult: decision.ToolResult,
		Fallback: FallbackStatus{
			FallbackUsed: resp.FallbackUsed(),
			FallbackType: fallbackType(resp),
			ModelUsed:    resp.Model,
		},
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Timestamp:        time.Now().UTC(),
	}

	switch decision.Status {
	case DecisionSuccess:
		p.recordClassification(ctx, requestID, emailCtx, decision.ToolResult)
		p.recordAudit(ctx, requestID, emailCtx, AuditCompleted, "")
	case DecisionSkipped:
		p.recordAudit(ctx, requestID, emailCtx, AuditCompleted, decision.Reason)
	default:
		p.recordAudit(ctx, requestID, emailCtx, AuditError, decision.Reason)
	}

	log.Info("email processing completed",
		zap.String("status", string(outcome.Status)),
		zap.Bool("fallback_used", outcome.Fallback.FallbackUsed),
		zap.Int64("processing_time_ms", outcome.ProcessingTimeMs),
	)
	return outcome
}

func fallbackType(resp *model.Response) string {
	if resp.FallbackMode == "" {
		return "none"
	}
	return resp.FallbackMode
}

// recordAudit persists an audit row, logging and swallowing failures so
// they never break processing.
func (p *Processor) recordAudit(ctx context.Context, requestID string, emailCtx email.Context, status, detail string) {
	if p.recorder == nil {
		return
	}
	entry := AuditEntry{
		RequestID: requestID,
		Status:    status,
		Subject:   emailCtx.Subject,
		Sender:    emailCtx.Sender,
		UserID:    emailCtx.UserID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
	if err := p.recorder.RecordAudit(ctx, entry); err != nil {
		logger.Logger.Error("failed to save audit record",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (p *Processor) recordClassification(ctx context.Context, requestID string, emailCtx email.Context, result *tools.Result) {
	if p.recorder == nil || result == nil {
		return
	}
	rec := ClassificationRecord{
		RequestID: requestID,
		Subject:   emailCtx.Subject,
		Sender:    emailCtx.Sender,
		UserID:    emailCtx.UserID,
		ToolName:  result.ToolName,
		Result:    result.Payload,
		Timestamp: time.Now().UTC(),
	}
	if err := p.recorder.RecordClassification(ctx, rec); err != nil {
		logger.Logger.Error("failed to save classification record",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}
