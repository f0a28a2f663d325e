// Package voice interprets transcribed edit commands against an email
// draft. Parsing is table-driven: ordered rules fix the precedence between
// tone, subject, append, and remove commands.
package voice

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// EditType classifies what a voice command does to the draft.
type EditType string

const (
	EditReplace EditType = "replace"
	EditAppend  EditType = "append"
	EditModify  EditType = "modify"
	EditRemove  EditType = "remove"
)

// typeRule maps a keyword family to an edit type, first match wins.
type typeRule struct {
	editType EditType
	keywords []string
}

var typeRules = []typeRule{
	{EditAppend, []string{"add", "include", "also"}},
	{EditRemove, []string{"remove", "delete", "take out"}},
	{EditModify, []string{"change", "modify", "edit", "tone", "make it"}},
}

// ClassifyEditType detects the edit type from the raw command text.
// Commands matching no keyword family are full replacements.
func ClassifyEditType(text string) EditType {
	lowered := strings.ToLower(text)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.editType
			}
		}
	}
	return EditReplace
}

// ============================================================================
// Edit rules
// ============================================================================

// substitution rewrites one lexical marker of the old tone. Patterns are
// word-bounded and case-insensitive so "Hi there" becomes "Dear there"
// without touching words like "this".
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

var toneSubstitutions = map[string][]substitution{
	draft.ToneFormal: {
		{regexp.MustCompile(`(?i)\bhi\b`), "Dear"},
		{regexp.MustCompile(`(?i)\bhello\b`), "Dear"},
		{regexp.MustCompile(`(?i)\bthanks\b`), "Thank you"},
		{regexp.MustCompile(`(?i)\byeah\b`), "Yes"},
		{regexp.MustCompile(`(?i)\byea\b`), "Yes"},
	},
	draft.ToneFriendly: {
		{regexp.MustCompile(`(?i)\bdear\b`), "Hi"},
		{regexp.MustCompile(`(?i)\bthank you\b`), "Thanks"},
		{regexp.MustCompile(`(?i)\bsincerely\b`), "Best regards"},
	},
}

func adjustTone(content, tone string) string {
	subs, ok := toneSubstitutions[tone]
	if !ok {
		return content
	}
	adjusted := content
	for _, sub := range subs {
		adjusted = sub.pattern.ReplaceAllString(adjusted, sub.replacement)
	}
	return adjusted
}

var (
	doubleQuoted = regexp.MustCompile(`"([^"]*)"`)
	singleQuoted = regexp.MustCompile(`'([^']*)'`)
)

// extractQuoted returns the first quoted substring, preferring double
// quotes, or "" when the text contains none.
func extractQuoted(text string) string {
	if m := doubleQuoted.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := singleQuoted.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// textAfter returns the trimmed text following the first case-insensitive
// occurrence of any keyword, applied in order.
func textAfter(text string, keywords ...string) string {
	result := text
	for _, kw := range keywords {
		lowered := strings.ToLower(result)
		if idx := strings.Index(lowered, kw); idx >= 0 {
			result = result[idx+len(kw):]
		}
	}
	return strings.TrimSpace(result)
}

// editRule is one parsing precedence step: a predicate on the lowercased
// command and the edit it performs.
type editRule struct {
	name    string
	matches func(lowered string) bool
	apply   func(instruction, lowered string, d draft.EmailDraft) draft.EmailDraft
}

// editRules order the command grammar: tone outranks subject, subject
// outranks append, append outranks remove.
var editRules = []editRule{
	{
		name: "tone",
		matches: func(lowered string) bool {
			return strings.Contains(lowered, "change tone") || strings.Contains(lowered, "make it")
		},
		apply: func(instruction, lowered string, d draft.EmailDraft) draft.EmailDraft {
			switch {
			case strings.Contains(lowered, "formal"):
				d.Tone = draft.ToneFormal
				d.Content = adjustTone(d.Content, draft.ToneFormal)
			case strings.Contains(lowered, "friendly"):
				d.Tone = draft.ToneFriendly
				d.Content = adjustTone(d.Content, draft.ToneFriendly)
			case strings.Contains(lowered, "urgent"):
				d.Urgency = draft.UrgencyHigh
			}
			return d
		},
	},
	{
		name: "subject",
		matches: func(lowered string) bool {
			return strings.Contains(lowered, "change subject") || strings.Contains(lowered, "subject to")
		},
		apply: func(instruction, lowered string, d draft.EmailDraft) draft.EmailDraft {
			subject := extractQuoted(instruction)
			if subject == "" {
				subject = textAfter(instruction, "subject to")
			}
			if subject != "" {
				d.Subject = subject
			}
			return d
		},
	},
	{
		name: "append",
		matches: func(lowered string) bool {
			return strings.Contains(lowered, "add") || strings.Contains(lowered, "include")
		},
		apply: func(instruction, lowered string, d draft.EmailDraft) draft.EmailDraft {
			if text := textAfter(instruction, "add", "include"); text != "" {
				d.Content = d.Content + "\n\n" + text
			}
			return d
		},
	},
	{
		name: "remove",
		matches: func(lowered string) bool {
			return strings.Contains(lowered, "remove") || strings.Contains(lowered, "delete")
		},
		apply: func(instruction, lowered string, d draft.EmailDraft) draft.EmailDraft {
			text := textAfter(instruction, "remove", "delete")
			text = strings.Trim(text, `"'`)
			if text != "" && strings.Contains(d.Content, text) {
				d.Content = strings.ReplaceAll(d.Content, text, "")
			}
			return d
		},
	},
}

// ApplyEdit interprets one command against the draft and returns the
// edited copy. The caller's draft value is never mutated, so the pre-edit
// version stays available for undo. Commands matching no rule dispatch on
// editType: replace swaps the whole content for the instruction text,
// everything else appends it as a new paragraph.
func ApplyEdit(instruction string, d draft.EmailDraft, editType EditType) draft.EmailDraft {
	lowered := strings.ToLower(instruction)

	matched := false
	for _, rule := range editRules {
		if rule.matches(lowered) {
			logger.Logger.Debug("voice edit rule matched", zap.String("rule", rule.name))
			d = rule.apply(instruction, lowered, d)
			matched = true
			break
		}
	}
	if !matched {
		if editType == EditReplace {
			d.Content = instruction
		} else {
			d.Content = d.Content + "\n\n" + instruction
		}
	}

	return d.Touch(draft.EditedViaVoice, time.Now().UTC())
}
