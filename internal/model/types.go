// Package model provides the tiered model client for email triage.
package model

import "encoding/json"

// Message is a single conversation turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolUse is a tool invocation requested by the model.
type ToolUse struct {
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// ContentBlock is one item of the model's content array. The wire format
// varies: native responses use a flat {"type":"tool_use",...} shape while
// some relays nest the call under a "tool_use" key. Both decode here.
type ContentBlock struct {
	Type    string         `json:"type,omitempty"`
	Text    string         `json:"text,omitempty"`
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name,omitempty"`
	Input   map[string]any `json:"input,omitempty"`
	ToolUse *ToolUse       `json:"tool_use,omitempty"`
}

// AsToolUse normalizes the block into a ToolUse regardless of which wire
// shape carried it. The second return is false for text and empty blocks.
func (b *ContentBlock) AsToolUse() (*ToolUse, bool) {
	if b.ToolUse != nil {
		if b.ToolUse.Name == "" || b.ToolUse.Input == nil {
			return nil, false
		}
		return b.ToolUse, true
	}
	if b.Type == "tool_use" {
		if b.Name == "" || b.Input == nil {
			return nil, false
		}
		return &ToolUse{ID: b.ID, Name: b.Name, Input: b.Input}, true
	}
	return nil, false
}

// IsText reports whether the block carries plain text.
func (b *ContentBlock) IsText() bool {
	return b.ToolUse == nil && b.Text != ""
}

// Usage reports token consumption for an invocation.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is a parsed model response. FallbackMode is empty for real
// model output and "rule_based" when the keyword classifier produced it.
type Response struct {
	Content      []ContentBlock `json:"content"`
	StopReason   string         `json:"stop_reason,omitempty"`
	Usage        Usage          `json:"usage"`
	Model        string         `json:"model,omitempty"`
	FallbackMode string         `json:"fallback_mode,omitempty"`
}

// ToolUses extracts every well-formed tool call from the response, in
// content order. Malformed blocks are dropped.
func (r *Response) ToolUses() []*ToolUse {
	var calls []*ToolUse
	for i := range r.Content {
		if call, ok := r.Content[i].AsToolUse(); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

// HasToolUses reports whether the response requested any tool call.
func (r *Response) HasToolUses() bool {
	return len(r.ToolUses()) > 0
}

// TextContent returns the first text block, or "" when none exists.
func (r *Response) TextContent() string {
	for i := range r.Content {
		if r.Content[i].IsText() {
			return r.Content[i].Text
		}
	}
	return ""
}

// FallbackUsed reports whether the response came from a fallback layer
// rather than a live model.
func (r *Response) FallbackUsed() bool {
	return r.FallbackMode != ""
}

// Tier names one rung of the model ladder.
type Tier struct {
	Name    string `json:"name"`
	ModelID string `json:"model_id"`
}

// Attempt records one invocation attempt for audit and debugging.
type Attempt struct {
	Tier    string `json:"tier"`
	ModelID string `json:"model_id"`
	Attempt int    `json:"attempt"`
	Outcome string `json:"outcome"`
}

// Request is the invoke payload sent to the model endpoint.
type Request struct {
	Messages         []Message        `json:"messages"`
	Tools            []map[string]any `json:"tools,omitempty"`
	ToolChoice       string           `json:"tool_choice,omitempty"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
	AnthropicVersion string           `json:"anthropic_version"`
}

func (r *Request) MarshalBody() ([]byte, error) {
	return json.Marshal(r)
}
