package model

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// ============================================================================
// Rule-based fallback classification
// ============================================================================

// FallbackModeRuleBased marks responses synthesized by the keyword
// classifier instead of a live model.
const FallbackModeRuleBased = "rule_based"

// typeRule maps a keyword family to an email type. Rules are evaluated in
// order and the first match wins, so overlapping keywords resolve by table
// position rather than by control flow.
type typeRule struct {
	emailType string
	keywords  []string
}

// typeRules fixes the precedence meeting > task > complaint > inquiry.
// "down" and "outage" join the complaint family so service-outage mails
// classify as complaints rather than falling through to "other".
var typeRules = []typeRule{
	{"meeting_request", []string{"meeting", "schedule", "calendar", "appointment", "call", "zoom", "teams"}},
	{"task_assignment", []string{"task", "todo", "action item", "follow up", "deadline", "deliverable"}},
	{"complaint", []string{"complaint", "issue", "problem", "not working", "broken", "error", "bug", "down", "outage"}},
	{"inquiry", []string{"question", "inquiry", "asking", "wondering", "clarification", "information"}},
}

var urgentKeywords = []string{"urgent", "asap", "immediately", "critical", "emergency", "important"}

// shortEmailThreshold is the length below which an email defaults to low
// priority when nothing marks it urgent.
const shortEmailThreshold = 100

// Classification is the keyword classifier's output, shaped like the
// classify_email tool's arguments.
type Classification struct {
	EmailType string `json:"email_type"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
}

// ClassifyByRules classifies email text by keyword matching. Used when
// every model tier is exhausted.
func ClassifyByRules(content string) Classification {
	lowered := strings.ToLower(content)

	emailType := "other"
	for _, rule := range typeRules {
		if containsAny(lowered, rule.keywords) {
			emailType = rule.emailType
			break
		}
	}

	priority := "medium"
	switch {
	case containsAny(lowered, urgentKeywords):
		priority = "urgent"
	case len(lowered) < shortEmailThreshold:
		priority = "low"
	case emailType == "complaint":
		priority = "high"
	}

	logger.Logger.Info("rule-based classification",
		zap.String("email_type", emailType),
		zap.String("priority", priority),
	)

	return Classification{
		EmailType: emailType,
		Priority:  priority,
		Category:  "Rule-based classification: " + emailType,
	}
}

// RuleBasedResponse wraps a keyword classification in the model response
// shape so the interpreter handles it like any other tool_use content.
func RuleBasedResponse(messages []Message) *Response {
	content := firstUserContent(messages)
	classification := ClassifyByRules(content)

	return &Response{
		Content: []ContentBlock{
			{
				Type: "tool_use",
				ID:   "fallback_001",
				Name: "classify_email",
				Input: map[string]any{
					"email_type": classification.EmailType,
					"priority":   classification.Priority,
					"category":   classification.Category,
				},
			},
		},
		StopReason:   "end_turn",
		FallbackMode: FallbackModeRuleBased,
	}
}

func firstUserContent(messages []Message) string {
	for _, msg := range messages {
		if msg.Role == "user" {
			return msg.Content
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
