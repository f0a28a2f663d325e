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

// Classification is the typed payload of a classify_email call.
type Classification struct {
	EmailType  string    `json:"email_type"`
	Priority   string    `json:"priority"`
	Category   string    `json:"category"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// ClassifyEmail records the email's type, priority and category.
type ClassifyEmail struct{}

func (t *ClassifyEmail) Name() string { return schemas.ToolClassifyEmail }

func (t *ClassifyEmail) Description() string {
	return "Classify the email type and determine priority level"
}

func (t *ClassifyEmail) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	emailType := stringArg(input, "email_type")
	priority := stringArg(input, "priority")
	category := stringArg(input, "category")

	if emailType == "" || priority == "" || category == "" {
		return TimedResult(NewErrorResult(
			fmt.Errorf("missing required arguments: email_type, priority, category")), start), nil
	}

	if !oneOf(schemas.EmailTypes, emailType) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid email_type %q, must be one of: %s",
				emailType, strings.Join(schemas.EmailTypes, ", "))), start), nil
	}
	if !oneOf(schemas.Priorities, priority) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid priority %q, must be one of: %s",
				priority, strings.Join(schemas.Priorities, ", "))), start), nil
	}

	classification := Classification{
		EmailType:  emailType,
		Priority:   priority,
		Category:   category,
		Timestamp:  time.Now().UTC(),
		Confidence: 0.95,
	}

	logger.Logger.Info("email classified",
		zap.String("email_type", emailType),
		zap.String("priority", priority),
	)

	return TimedResult(NewSuccessResult(classification), start), nil
}
