package model

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// UnavailableMessage is returned by InvokeSimple when every tier fails.
const UnavailableMessage = "AI models unavailable. Please try again later or contact support."

// Backend performs a single model invocation. *Client satisfies it; tests
// substitute fakes.
type Backend interface {
	Invoke(ctx context.Context, modelID string, req *Request) (*Response, error)
}

// InvokerConfig configures the tier ladder.
type InvokerConfig struct {
	PrimaryModel  string
	FallbackModel string
	MaxRetries    int
	RetryDelay    time.Duration
	MaxTokens     int
	Temperature   float64
}

// DefaultInvokerConfig mirrors the production defaults.
func DefaultInvokerConfig() *InvokerConfig {
	return &InvokerConfig{
		PrimaryModel:  "anthropic.claude-3-sonnet-20240229-v1:0",
		FallbackModel: "anthropic.claude-3-haiku-20240307-v1:0",
		MaxRetries:    3,
		RetryDelay:    1 * time.Second,
		MaxTokens:     4000,
		Temperature:   0.1,
	}
}

// Invocation is the outcome of a full ladder walk. Attempts lists every
// try in order for audit purposes.
type Invocation struct {
	Response *Response
	Attempts []Attempt
}

// Invoker walks the model ladder: primary with retries, then fallback
// with retries, then the rule-based classifier. It holds no mutable
// state, so one Invoker serves concurrent requests.
type Invoker struct {
	backend Backend
	tiers   []Tier
	cfg     *InvokerConfig

	// sleep is replaced in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewInvoker(backend Backend, cfg *InvokerConfig) *Invoker {
	if cfg == nil {
		cfg = DefaultInvokerConfig()
	}
	return &Invoker{
		backend: backend,
		tiers: []Tier{
			{Name: "primary", ModelID: cfg.PrimaryModel},
			{Name: "fallback", ModelID: cfg.FallbackModel},
		},
		cfg: cfg,
	}
}

// Tiers returns the ladder in escalation order.
func (inv *Invoker) Tiers() []Tier {
	out := make([]Tier, len(inv.tiers))
	copy(out, inv.tiers)
	return out
}

// InvokeWithTools runs a tool-calling request down the ladder. It never
// returns an error: when both model tiers are exhausted the rule-based
// classifier synthesizes the response.
func (inv *Invoker) InvokeWithTools(ctx context.Context, messages []Message, tools []map[string]any) *Invocation {
	req := &Request{
		Messages:    messages,
		Tools:       tools,
		ToolChoice:  "auto",
		MaxTokens:   inv.cfg.MaxTokens,
		Temperature: inv.cfg.Temperature,
	}

	var attempts []Attempt
	for _, tier := range inv.tiers {
		resp, tierAttempts := inv.invokeTier(ctx, tier, req)
		attempts = append(attempts, tierAttempts...)
		if resp != nil {
			return &Invocation{Response: resp, Attempts: attempts}
		}
		logger.Logger.Warn("model tier exhausted, escalating",
			zap.String("tier", tier.Name),
			zap.String("model_id", tier.ModelID),
		)
	}

	logger.Logger.Error("all model tiers failed, using rule-based fallback")
	return &Invocation{
		Response: RuleBasedResponse(messages),
		Attempts: append(attempts, Attempt{Tier: "rules", Outcome: "fallback"}),
	}
}

// InvokeSimple runs a plain text completion down the ladder, returning a
// fixed apology when every tier fails.
func (inv *Invoker) InvokeSimple(ctx context.Context, prompt string, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	req := &Request{
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: inv.cfg.Temperature,
	}

	for _, tier := range inv.tiers {
		resp, _ := inv.invokeTier(ctx, tier, req)
		if resp != nil {
			if text := resp.TextContent(); text != "" {
				return text
			}
		}
	}
	return UnavailableMessage
}

// invokeTier tries one model with retry and exponential backoff. Fatal
// errors such as access denial abort the tier without consuming the
// remaining retries. A nil response means the tier is exhausted.
func (inv *Invoker) invokeTier(ctx context.Context, tier Tier, req *Request) (*Response, []Attempt) {
	policy := &apperrors.Policy{
		MaxAttempts:  inv.cfg.MaxRetries,
		InitialDelay: inv.cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		RetryIf:      apperrors.IsRetryable,
		Sleep:        inv.sleep,
	}

	var attempts []Attempt
	attempt := 0
	resp, err := apperrors.DoWithResult(ctx, policy, func() (*Response, error) {
		attempt++
		logger.Logger.Info("invoking model",
			zap.String("tier", tier.Name),
			zap.String("model_id", tier.ModelID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", inv.cfg.MaxRetries),
		)
		resp, err := inv.backend.Invoke(ctx, tier.ModelID, req)
		record := Attempt{Tier: tier.Name, ModelID: tier.ModelID, Attempt: attempt}
		if err != nil {
			record.Outcome = "error: " + err.Error()
			attempts = append(attempts, record)
			return nil, err
		}
		record.Outcome = "success"
		attempts = append(attempts, record)
		return resp, nil
	})
	if err != nil {
		if apperrors.IsAccessDenied(err) {
			logger.Logger.Error("model access denied, check model permissions",
				zap.String("model_id", tier.ModelID),
				zap.Error(err),
			)
		} else {
			logger.Logger.Warn("model invocation failed",
				zap.String("model_id", tier.ModelID),
				zap.Error(err),
			)
		}
		return nil, attempts
	}
	return resp, attempts
}
