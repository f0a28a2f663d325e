package triage

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/model"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
)

// Interpreter turns a model response into a triage decision by extracting
// tool calls and routing the first valid one.
type Interpreter struct {
	router *tools.Router
}

func NewInterpreter(router *tools.Router) *Interpreter {
	return &Interpreter{router: router}
}

// Interpret applies the decision rules in order: an explicit skip signal,
// then the first tool call, then the default skip. Later tool calls in
// the same response are ignored. Empty content is treated the same as a
// response with no candidates: nothing to act on means skip.
func (i *Interpreter) Interpret(ctx context.Context, resp *model.Response, emailCtx email.Context, requestID string) *Decision {
	if resp == nil || len(resp.Content) == 0 {
		logger.Logger.Info("model response had no content",
			zap.String("request_id", requestID),
		)
		return &Decision{Status: DecisionSkipped, Reason: "No action required"}
	}

	// A lone text block mentioning "skip" is the model declining to act.
	if len(resp.Content) == 1 && resp.Content[0].IsText() {
		text := resp.Content[0].Text
		if strings.Contains(strings.ToLower(text), "skip") {
			logger.Logger.Info("model skipped email",
				zap.String("request_id", requestID),
				zap.String("reason", text),
			)
			return &Decision{Status: DecisionSkipped, Reason: text}
		}
	}

	for _, call := range resp.ToolUses() {
		result := i.router.Route(ctx, tools.Call{Name: call.Name, Arguments: call.Input}, emailCtx, requestID)
		decision := &Decision{ToolResult: result}
		if result.Status == tools.StatusSuccess {
			decision.Status = DecisionSuccess
		} else {
			decision.Status = DecisionError
			decision.Reason = result.Message
		}
		return decision
	}

	return &Decision{Status: DecisionSkipped, Reason: "No action required"}
}
