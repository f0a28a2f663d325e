package email

import (
	"bytes"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/jhillyerd/enmime"
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// ParseMIME normalizes a raw MIME message into an Inbound record.
func ParseMIME(raw []byte) (*Inbound, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		logger.Logger.Error("failed to parse MIME message", zap.Error(err))
		return nil, fmt.Errorf("failed to parse MIME message: %w", err)
	}

	inbound := &Inbound{
		Subject:   env.GetHeader("Subject"),
		Sender:    env.GetHeader("From"),
		Recipient: env.GetHeader("To"),
		Body:      bodyText(env),
		Metadata: map[string]string{
			"message_id": env.GetHeader("Message-ID"),
			"date":       env.GetHeader("Date"),
		},
	}

	if cc := env.GetHeader("CC"); cc != "" {
		inbound.Metadata["cc"] = cc
	}
	if len(env.Attachments) > 0 {
		inbound.Metadata["attachment"] = env.Attachments[0].FileName
	}

	logger.Logger.Debug("parsed inbound email",
		zap.String("message_id", inbound.Metadata["message_id"]),
		zap.String("from", inbound.Sender),
		zap.String("subject", inbound.Subject),
	)

	return inbound, nil
}

// bodyText prefers the plain-text part; HTML-only messages are converted
// to markdown so the model still sees the content.
func bodyText(env *enmime.Envelope) string {
	if env.Text != "" || env.HTML == "" {
		return env.Text
	}
	converted, err := md.NewConverter("", true, nil).ConvertString(env.HTML)
	if err != nil {
		logger.Logger.Warn("failed to convert HTML body", zap.Error(err))
		return ""
	}
	return converted
}
