// Package notify dispatches approved draft replies through SendGrid.
package notify

import (
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/config"
	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// sender abstracts the SendGrid send call for tests.
type sender interface {
	Send(message *mail.SGMailV3) (*sendgridResponse, error)
}

type sendgridResponse struct {
	StatusCode int
	Body       string
}

type sendgridClient struct {
	client *sendgrid.Client
}

func (c *sendgridClient) Send(message *mail.SGMailV3) (*sendgridResponse, error) {
	resp, err := c.client.Send(message)
	if err != nil {
		return nil, err
	}
	return &sendgridResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// Dispatcher sends approved drafts back to the original sender.
type Dispatcher struct {
	cfg    config.NotifyConfig
	client sender
}

func NewDispatcher(cfg config.NotifyConfig) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		client: &sendgridClient{client: sendgrid.NewSendClient(cfg.APIKey)},
	}
}

// Enabled reports whether outbound dispatch is configured.
func (d *Dispatcher) Enabled() bool {
	return d.cfg.APIKey != "" && d.cfg.FromAddress != ""
}

// SendDraft dispatches the draft as a reply to the inbound email's sender.
func (d *Dispatcher) SendDraft(dr draft.EmailDraft, inbound *email.Inbound) error {
	if !d.Enabled() {
		return apperrors.Permanent(apperrors.CodeConfigInvalid, "notify is not configured")
	}
	// The From header may carry a display name, take the bare address.
	addrs := email.ExtractAddresses(inbound.Sender)
	if len(addrs) == 0 {
		return apperrors.User(apperrors.CodeInvalidInput, "sender is not a valid email address")
	}

	subject := dr.Subject
	if subject == "" {
		subject = replySubject(inbound.Subject)
	}

	from := mail.NewEmail(d.cfg.FromName, d.cfg.FromAddress)
	to := mail.NewEmail("", addrs[0])
	message := mail.NewSingleEmail(from, subject, to, dr.Content, htmlContent(dr.Content))

	resp, err := d.client.Send(message)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeToolExecutionFailed, "failed to send draft", apperrors.CategoryTemporary)
	}
	if resp.StatusCode >= 300 {
		logger.Logger.Error("sendgrid rejected the message",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response_body", resp.Body),
		)
		return apperrors.Temporary(apperrors.CodeToolExecutionFailed, "sendgrid rejected the message")
	}

	logger.Logger.Info("draft dispatched",
		zap.String("to", inbound.Sender),
		zap.String("subject", subject),
	)
	return nil
}

func replySubject(subject string) string {
	if subject == "" {
		return "Re: your email"
	}
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

func htmlContent(content string) string {
	paragraphs := strings.Split(content, "\n\n")
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`)
	for _, p := range paragraphs {
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	sb.WriteString("</div>")
	return sb.String()
}
