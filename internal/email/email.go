// Package email defines the normalized inbound email record and its parsing.
package email

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Inbound is the normalized email record the pipeline operates on.
type Inbound struct {
	Subject   string            `json:"subject"`
	Sender    string            `json:"sender"`
	Recipient string            `json:"recipient"`
	Body      string            `json:"body"`
	UserID    string            `json:"user_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Context is the trimmed provenance slice attached to tool results.
type Context struct {
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	UserID  string `json:"user_id"`
}

// Context returns the trimmed context for audit enrichment.
func (e *Inbound) Context() Context {
	userID := e.UserID
	if userID == "" {
		userID = "anonymous"
	}
	return Context{
		Subject: e.Subject,
		Sender:  e.Sender,
		UserID:  userID,
	}
}

// FormatForModel renders the email as the user message sent to the model.
func (e *Inbound) FormatForModel() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Subject: %s\n", orDefault(e.Subject, "No Subject"))
	fmt.Fprintf(&sb, "From: %s\n", orDefault(e.Sender, "Unknown Sender"))
	fmt.Fprintf(&sb, "To: %s\n\n", orDefault(e.Recipient, "Unknown Recipient"))
	sb.WriteString(orDefault(e.Body, "No content"))

	if len(e.Metadata) > 0 {
		meta, err := json.Marshal(e.Metadata)
		if err == nil {
			fmt.Fprintf(&sb, "\n\nMetadata: %s", meta)
		}
	}

	return sb.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
