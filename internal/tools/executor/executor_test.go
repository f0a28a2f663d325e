package executor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxpilot-ai/inboxpilot/internal/tools/executor"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

func TestClassifyEmailEchoesCategory(t *testing.T) {
	tool := &executor.ClassifyEmail{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"email_type": "complaint",
		"priority":   "high",
		"category":   "Service outage report",
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	classification, ok := result.Data.(executor.Classification)
	require.True(t, ok)
	assert.Equal(t, "complaint", classification.EmailType)
	assert.Equal(t, "high", classification.Priority)
	assert.Equal(t, "Service outage report", classification.Category)
	assert.InDelta(t, 0.95, classification.Confidence, 0.001)
}

func TestClassifyEmailRejectsBadEnum(t *testing.T) {
	tool := &executor.ClassifyEmail{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"email_type": "newsletter",
		"priority":   "high",
		"category":   "x",
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "email_type")
}

func TestGenerateDraftComposesContent(t *testing.T) {
	tool := &executor.GenerateDraft{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"tone":          "formal",
		"summary":       "the quarterly invoice",
		"urgency":       "high",
		"response_type": "acknowledgment",
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	payload, ok := result.Data.(executor.DraftPayload)
	require.True(t, ok)
	assert.Equal(t, "formal", payload.Draft.Tone)
	assert.True(t, strings.HasPrefix(payload.Draft.Content, "Dear Sir/Madam,"))
	assert.Contains(t, payload.Draft.Content, "Thank you for reaching out regarding the quarterly invoice.")
	assert.Contains(t, payload.Draft.Content, "I'll prioritize this and respond as soon as possible.")
	assert.Contains(t, payload.Draft.Content, "Best regards,\nAI Assistant")
}

func TestGenerateDraftNamesAllMissingArguments(t *testing.T) {
	tool := &executor.GenerateDraft{}

	result, err := tool.Execute(context.Background(), map[string]any{"tone": "formal"})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "missing required arguments: summary, urgency, response_type", result.Error)
}

func TestScheduleMeetingDurationBounds(t *testing.T) {
	tool := &executor.ScheduleMeeting{}

	base := func(duration int) map[string]any {
		return map[string]any{
			"date":          "2024-06-01",
			"time":          "14:30",
			"duration":      duration,
			"attendees":     []string{"a@example.com", "b@example.com"},
			"meeting_title": "Planning",
		}
	}

	cases := []struct {
		name     string
		duration int
		valid    bool
	}{
		{"below minimum", 10, false},
		{"inclusive maximum", 480, true},
		{"above maximum", 481, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tool.Execute(context.Background(), base(tc.duration))
			require.NoError(t, err)
			assert.Equal(t, tc.valid, result.Success, result.Error)
		})
	}
}

func TestScheduleMeetingRejectsImpossibleDate(t *testing.T) {
	tool := &executor.ScheduleMeeting{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"date":          "2024-13-40",
		"time":          "14:30",
		"duration":      30,
		"attendees":     []string{"a@example.com"},
		"meeting_title": "Planning",
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.Error, "YYYY-MM-DD")
}

func TestScheduleMeetingSuccess(t *testing.T) {
	tool := &executor.ScheduleMeeting{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"date":          "2024-06-01",
		"time":          "09:15",
		"duration":      45,
		"attendees":     []any{"a@example.com"},
		"meeting_title": "Kickoff",
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	meeting, ok := result.Data.(executor.Meeting)
	require.True(t, ok)
	assert.Equal(t, "Kickoff", meeting.Title)
	assert.Equal(t, 45, meeting.Duration)
	assert.True(t, strings.HasPrefix(meeting.MeetingID, "meeting_"))
}

func TestCreateTask(t *testing.T) {
	tool := &executor.CreateTask{}

	t.Run("success sets pending status", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{
			"title":       "Follow up on outage",
			"description": "Check portal access for the client team",
			"due_date":    "2024-06-15",
			"priority":    "high",
			"assignee":    "ops@example.com",
		})
		require.NoError(t, err)
		require.True(t, result.Success, result.Error)

		task, ok := result.Data.(executor.Task)
		require.True(t, ok)
		assert.Equal(t, "pending", task.Status)
		assert.True(t, strings.HasPrefix(task.TaskID, "task_"))
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{
			"title":       "t",
			"description": "d",
			"due_date":    "2024-06-15",
			"priority":    "urgent",
			"assignee":    "ops@example.com",
		})
		require.NoError(t, err)
		require.False(t, result.Success)
		assert.Contains(t, result.Error, "priority")
	})

	t.Run("rejects invalid due date", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{
			"title":       "t",
			"description": "d",
			"due_date":    "June 15th",
			"priority":    "low",
			"assignee":    "ops@example.com",
		})
		require.NoError(t, err)
		require.False(t, result.Success)
		assert.Contains(t, result.Error, "YYYY-MM-DD")
	})
}

func TestRegistryDefaults(t *testing.T) {
	reg := executor.Defaults()

	for _, name := range []string{
		schemas.ToolClassifyEmail,
		schemas.ToolGenerateDraft,
		schemas.ToolScheduleMeeting,
		schemas.ToolCreateTask,
	} {
		_, ok := reg.Get(name)
		assert.True(t, ok, name)
	}

	_, err := reg.Execute(context.Background(), "summon_demon", nil)
	var notFound *executor.ToolNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "summon_demon", notFound.Name)
}
