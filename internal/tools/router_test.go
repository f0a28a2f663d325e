package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/executor"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

var testContext = email.Context{
	Subject: "Portal access",
	Sender:  "ceo@bigcompany.com",
	UserID:  "u-42",
}

func TestRouteUnknownToolListsKnownNames(t *testing.T) {
	router := tools.DefaultRouter()

	result := router.Route(context.Background(), tools.Call{
		Name:      "resolve_incident",
		Arguments: map[string]any{},
	}, testContext, "req-1")

	require.Equal(t, tools.StatusError, result.Status)
	assert.Contains(t, result.Message, "unknown tool: resolve_incident")
	for _, name := range []string{
		schemas.ToolClassifyEmail,
		schemas.ToolGenerateDraft,
		schemas.ToolScheduleMeeting,
		schemas.ToolCreateTask,
	} {
		assert.Contains(t, result.Message, name)
	}
	assert.Equal(t, "req-1", result.RequestID)
}

func TestRouteCollectsAllValidationErrors(t *testing.T) {
	router := tools.DefaultRouter()

	result := router.Route(context.Background(), tools.Call{
		Name: schemas.ToolScheduleMeeting,
		Arguments: map[string]any{
			"date":     "2024-06-01",
			"duration": 5,
		},
	}, testContext, "req-2")

	require.Equal(t, tools.StatusError, result.Status)

	var fields []string
	for _, fe := range result.ValidationErrors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "time")
	assert.Contains(t, fields, "attendees")
	assert.Contains(t, fields, "meeting_title")
	assert.Contains(t, fields, "duration")
}

func TestRouteSuccessEnrichesResult(t *testing.T) {
	router := tools.DefaultRouter()

	result := router.Route(context.Background(), tools.Call{
		Name: schemas.ToolClassifyEmail,
		Arguments: map[string]any{
			"email_type": "meeting_request",
			"priority":   "medium",
			"category":   "Scheduling",
		},
	}, testContext, "req-3")

	require.Equal(t, tools.StatusSuccess, result.Status, result.Message)
	assert.Equal(t, "req-3", result.RequestID)
	assert.Equal(t, schemas.ToolClassifyEmail, result.ToolName)
	assert.Equal(t, testContext, result.EmailContext)

	classification, ok := result.Payload.(executor.Classification)
	require.True(t, ok)
	assert.Equal(t, "Scheduling", classification.Category)
}

func TestRouteReportsHandlerFailure(t *testing.T) {
	router := tools.DefaultRouter()

	// Passes the schema (string type) but fails the handler's date check.
	result := router.Route(context.Background(), tools.Call{
		Name: schemas.ToolScheduleMeeting,
		Arguments: map[string]any{
			"date":          "2024-13-40",
			"time":          "10:00",
			"duration":      30,
			"attendees":     []string{"a@example.com"},
			"meeting_title": "Sync",
		},
	}, testContext, "req-4")

	require.Equal(t, tools.StatusError, result.Status)
	assert.Empty(t, result.ValidationErrors)
	assert.Contains(t, result.Message, "YYYY-MM-DD")
}

type panickyTool struct{}

func (panickyTool) Name() string        { return "panicky" }
func (panickyTool) Description() string { return "always panics" }
func (panickyTool) Execute(ctx context.Context, input map[string]any) (*executor.Result, error) {
	panic("boom")
}

func TestRouteRecoversHandlerPanic(t *testing.T) {
	schemaReg := schemas.NewRegistry()
	schemaReg.Register(schemas.NewDefinition("panicky", "always panics").Build())

	execReg := executor.NewRegistry()
	execReg.Register(panickyTool{})

	router := tools.NewRouter(schemaReg, execReg)

	result := router.Route(context.Background(), tools.Call{
		Name:      "panicky",
		Arguments: map[string]any{},
	}, testContext, "req-5")

	require.Equal(t, tools.StatusError, result.Status)
	assert.Contains(t, result.Message, "tool execution failed")
	assert.Contains(t, result.Message, "boom")
}
