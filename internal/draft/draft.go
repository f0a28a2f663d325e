// Package draft defines the email draft structure shared by AI drafting and
// voice editing.
package draft

import "time"

// Tone values a draft may carry.
const (
	ToneFormal     = "formal"
	ToneFriendly   = "friendly"
	ToneNeutral    = "neutral"
	ToneApologetic = "apologetic"
)

// Urgency values a draft may carry.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Editor identifies what produced the latest revision of a draft.
const (
	EditedViaAI    = "ai"
	EditedViaVoice = "voice"
)

// EmailDraft is the response being composed for an inbound email.
// Edits derive a new value from the previous one; callers keep the pre-edit
// draft for undo and comparison.
type EmailDraft struct {
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	Tone       string     `json:"tone"`
	Urgency    string     `json:"urgency"`
	LastEdited *time.Time `json:"last_edited,omitempty"`
	EditedVia  string     `json:"edited_via,omitempty"`
}

// Touch returns a copy of the draft stamped with the given editor and time.
func (d EmailDraft) Touch(via string, at time.Time) EmailDraft {
	d.LastEdited = &at
	d.EditedVia = via
	return d
}
