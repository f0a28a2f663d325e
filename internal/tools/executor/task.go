package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

// Task is the typed payload of a create_task call. Status is always
// "pending" at creation time.
type Task struct {
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateTask records a follow-up task extracted from the email.
type CreateTask struct{}

func (t *CreateTask) Name() string { return schemas.ToolCreateTask }

func (t *CreateTask) Description() string {
	return "Create a follow-up task from email content"
}

func (t *CreateTask) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	title := stringArg(input, "title")
	description := stringArg(input, "description")
	dueDate := stringArg(input, "due_date")
	priority := stringArg(input, "priority")
	assignee := stringArg(input, "assignee")

	var missing []string
	for _, arg := range []struct{ name, value string }{
		{"title", title},
		{"description", description},
		{"due_date", dueDate},
		{"priority", priority},
		{"assignee", assignee},
	} {
		if arg.value == "" {
			missing = append(missing, arg.name)
		}
	}
	if len(missing) > 0 {
		return TimedResult(NewErrorResult(
			fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))), start), nil
	}

	if !oneOf(schemas.TaskPriorities, priority) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid priority, must be one of: %s",
				strings.Join(schemas.TaskPriorities, ", "))), start), nil
	}

	if !validDate(dueDate) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("due date must be in YYYY-MM-DD format")), start), nil
	}

	now := time.Now().UTC()
	task := Task{
		TaskID:      fmt.Sprintf("task_%s", now.Format("20060102_150405")),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Assignee:    assignee,
		Status:      "pending",
		Timestamp:   now,
	}

	logger.Logger.Info("task created",
		zap.String("task_id", task.TaskID),
		zap.String("priority", priority),
		zap.String("due_date", dueDate),
	)

	return TimedResult(NewSuccessResult(task), start), nil
}
