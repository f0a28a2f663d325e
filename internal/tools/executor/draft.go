package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

// DraftPayload is the typed payload of a generate_draft call.
type DraftPayload struct {
	Draft        draft.EmailDraft `json:"draft"`
	Summary      string           `json:"summary"`
	ResponseType string           `json:"response_type"`
	Timestamp    time.Time        `json:"timestamp"`
}

// GenerateDraft composes a response draft from tone, summary, urgency and
// response type.
type GenerateDraft struct{}

func (t *GenerateDraft) Name() string { return schemas.ToolGenerateDraft }

func (t *GenerateDraft) Description() string {
	return "Generate a professional draft response to the email"
}

func (t *GenerateDraft) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	tone := stringArg(input, "tone")
	summary := stringArg(input, "summary")
	urgency := stringArg(input, "urgency")
	responseType := stringArg(input, "response_type")

	var missing []string
	for _, arg := range []struct{ name, value string }{
		{"tone", tone}, {"summary", summary}, {"urgency", urgency}, {"response_type", responseType},
	} {
		if arg.value == "" {
			missing = append(missing, arg.name)
		}
	}
	if len(missing) > 0 {
		return TimedResult(NewErrorResult(
			fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))), start), nil
	}

	if !oneOf(schemas.Tones, tone) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid tone %q, must be one of: %s",
				tone, strings.Join(schemas.Tones, ", "))), start), nil
	}
	if !oneOf(schemas.Urgencies, urgency) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid urgency %q, must be one of: %s",
				urgency, strings.Join(schemas.Urgencies, ", "))), start), nil
	}
	if !oneOf(schemas.ResponseTypes, responseType) {
		return TimedResult(NewErrorResult(
			fmt.Errorf("invalid response_type %q, must be one of: %s",
				responseType, strings.Join(schemas.ResponseTypes, ", "))), start), nil
	}

	now := time.Now().UTC()
	payload := DraftPayload{
		Draft: draft.EmailDraft{
			Content:   composeDraft(tone, summary, urgency, responseType),
			Tone:      tone,
			Urgency:   urgency,
			EditedVia: draft.EditedViaAI,
		},
		Summary:      summary,
		ResponseType: responseType,
		Timestamp:    now,
	}

	logger.Logger.Info("draft generated",
		zap.String("tone", tone),
		zap.String("response_type", responseType),
	)

	return TimedResult(NewSuccessResult(payload), start), nil
}

// Greeting and phrasing tables keyed by tone, urgency and response type.
var (
	greetings = map[string]string{
		draft.ToneFormal:     "Dear Sir/Madam,",
		draft.ToneFriendly:   "Hi there!",
		draft.ToneNeutral:    "Hello,",
		draft.ToneApologetic: "Dear [Name],",
	}

	urgencyLanguage = map[string]string{
		draft.UrgencyLow:    "I'll get back to you when I have a chance.",
		draft.UrgencyMedium: "I'll respond to this shortly.",
		draft.UrgencyHigh:   "I'll prioritize this and respond as soon as possible.",
	}
)

// composeDraft builds the draft body from the parameter tables.
func composeDraft(tone, summary, urgency, responseType string) string {
	followup := urgencyLanguage[urgency]

	var body string
	switch responseType {
	case "information_request":
		body = fmt.Sprintf("I received your inquiry about %s. Let me gather the information you need. %s", summary, followup)
	case "meeting_proposal":
		body = fmt.Sprintf("Thank you for your meeting request regarding %s. I'd be happy to schedule a time to discuss this further. %s", summary, followup)
	case "task_confirmation":
		body = fmt.Sprintf("I've received your request about %s and will add it to my task list. %s", summary, followup)
	default: // acknowledgment
		body = fmt.Sprintf("Thank you for reaching out regarding %s. %s", summary, followup)
	}

	greeting, ok := greetings[tone]
	if !ok {
		greeting = "Hello,"
	}

	return fmt.Sprintf("%s\n\n%s\n\nBest regards,\nAI Assistant", greeting, body)
}
