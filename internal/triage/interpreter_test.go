package triage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/model"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
	"github.com/inboxpilot-ai/inboxpilot/internal/triage"
)

var interpCtx = email.Context{Subject: "Portal access", Sender: "ceo@bigcompany.com", UserID: "u-1"}

func classifyArgs() map[string]any {
	return map[string]any{
		"email_type": "complaint",
		"priority":   "urgent",
		"category":   "Service outage",
	}
}

func TestInterpretEmptyResponseSkips(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())

	decision := interp.Interpret(context.Background(), nil, interpCtx, "req-1")
	assert.Equal(t, triage.DecisionSkipped, decision.Status)
	assert.Equal(t, "No action required", decision.Reason)
	assert.Nil(t, decision.ToolResult)

	decision = interp.Interpret(context.Background(), &model.Response{}, interpCtx, "req-1")
	assert.Equal(t, triage.DecisionSkipped, decision.Status)
	assert.Equal(t, "No action required", decision.Reason)
}

func TestInterpretSkipSignal(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())
	resp := &model.Response{
		Content: []model.ContentBlock{
			{Type: "text", Text: `{"action": "skip", "reason": "automated newsletter"}`},
		},
	}

	decision := interp.Interpret(context.Background(), resp, interpCtx, "req-2")
	assert.Equal(t, triage.DecisionSkipped, decision.Status)
	assert.Contains(t, decision.Reason, "newsletter")
	assert.Nil(t, decision.ToolResult)
}

func TestInterpretFirstToolCallWins(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())
	resp := &model.Response{
		Content: []model.ContentBlock{
			{Type: "text", Text: "Classifying this email."},
			{Type: "tool_use", ID: "tu-1", Name: "classify_email", Input: classifyArgs()},
			{Type: "tool_use", ID: "tu-2", Name: "create_task", Input: map[string]any{}},
		},
	}

	decision := interp.Interpret(context.Background(), resp, interpCtx, "req-3")
	require.Equal(t, triage.DecisionSuccess, decision.Status)
	require.NotNil(t, decision.ToolResult)
	assert.Equal(t, "classify_email", decision.ToolResult.ToolName)
	assert.Equal(t, "req-3", decision.ToolResult.RequestID)
	assert.Equal(t, interpCtx, decision.ToolResult.EmailContext)
}

func TestInterpretNestedToolUseShape(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())
	resp := &model.Response{
		Content: []model.ContentBlock{
			{ToolUse: &model.ToolUse{ID: "tu-1", Name: "classify_email", Input: classifyArgs()}},
		},
	}

	decision := interp.Interpret(context.Background(), resp, interpCtx, "req-4")
	assert.Equal(t, triage.DecisionSuccess, decision.Status)
}

func TestInterpretToolFailure(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())
	resp := &model.Response{
		Content: []model.ContentBlock{
			{Type: "tool_use", ID: "tu-1", Name: "classify_email", Input: map[string]any{
				"email_type": "ransom_note",
			}},
		},
	}

	decision := interp.Interpret(context.Background(), resp, interpCtx, "req-5")
	require.Equal(t, triage.DecisionError, decision.Status)
	require.NotNil(t, decision.ToolResult)
	assert.NotEmpty(t, decision.ToolResult.ValidationErrors)
	assert.Equal(t, decision.ToolResult.Message, decision.Reason)
}

func TestInterpretDefaultsToSkipped(t *testing.T) {
	interp := triage.NewInterpreter(tools.DefaultRouter())
	resp := &model.Response{
		Content: []model.ContentBlock{
			{Type: "text", Text: "This looks routine."},
			{Type: "text", Text: "Nothing to do here."},
		},
	}

	decision := interp.Interpret(context.Background(), resp, interpCtx, "req-6")
	assert.Equal(t, triage.DecisionSkipped, decision.Status)
	assert.Equal(t, "No action required", decision.Reason)
}
