package email_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxpilot-ai/inboxpilot/internal/email"
)

func TestContextDefaultsToAnonymous(t *testing.T) {
	inbound := &email.Inbound{Subject: "Hello", Sender: "a@example.com"}

	ctx := inbound.Context()
	assert.Equal(t, "anonymous", ctx.UserID)
	assert.Equal(t, "Hello", ctx.Subject)

	inbound.UserID = "u-7"
	assert.Equal(t, "u-7", inbound.Context().UserID)
}

func TestFormatForModel(t *testing.T) {
	inbound := &email.Inbound{
		Subject:   "Portal access",
		Sender:    "ceo@bigcompany.com",
		Recipient: "support@example.com",
		Body:      "Please restore my access.",
		Metadata:  map[string]string{"message_id": "<m1@example.com>"},
	}

	got := inbound.FormatForModel()
	assert.True(t, strings.HasPrefix(got, "Subject: Portal access\n"))
	assert.Contains(t, got, "From: ceo@bigcompany.com\n")
	assert.Contains(t, got, "To: support@example.com\n\n")
	assert.Contains(t, got, "Please restore my access.")
	assert.Contains(t, got, `Metadata: {"message_id":"<m1@example.com>"}`)
}

func TestFormatForModelPlaceholders(t *testing.T) {
	got := (&email.Inbound{}).FormatForModel()
	assert.Contains(t, got, "Subject: No Subject")
	assert.Contains(t, got, "From: Unknown Sender")
	assert.Contains(t, got, "To: Unknown Recipient")
	assert.Contains(t, got, "No content")
	assert.NotContains(t, got, "Metadata:")
}

func TestValidAddress(t *testing.T) {
	assert.True(t, email.ValidAddress("user@example.com"))
	assert.True(t, email.ValidAddress("first.last+tag@sub.example.co"))
	assert.False(t, email.ValidAddress("not-an-address"))
	assert.False(t, email.ValidAddress("Jane Doe <jane@example.com>"))
	assert.False(t, email.ValidAddress(""))
}

func TestExtractAddresses(t *testing.T) {
	got := email.ExtractAddresses(`Jane Doe <jane@example.com>, "Ops" <ops@example.org>`)
	assert.Equal(t, []string{"jane@example.com", "ops@example.org"}, got)

	assert.Empty(t, email.ExtractAddresses("no addresses here"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", email.Sanitize(`<script>alert("1")</script>`, 0))
	assert.Equal(t, "abc...", email.Sanitize("abcdef", 3))
	assert.Equal(t, "", email.Sanitize("", 10))
}

const rawMessage = "From: Jane Doe <jane@example.com>\r\n" +
	"To: support@example.com\r\n" +
	"CC: ops@example.org\r\n" +
	"Subject: Portal access\r\n" +
	"Message-ID: <m1@example.com>\r\n" +
	"Date: Thu, 27 Aug 2026 10:00:00 +0000\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please restore my access.\r\n"

const rawHTMLOnlyMessage = "From: Jane Doe <jane@example.com>\r\n" +
	"To: support@example.com\r\n" +
	"Subject: Portal access\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Please restore my <strong>portal</strong> access.</p>" +
	"<p>This is blocking our team.</p></body></html>\r\n"

func TestParseMIME(t *testing.T) {
	inbound, err := email.ParseMIME([]byte(rawMessage))
	require.NoError(t, err)

	assert.Equal(t, "Portal access", inbound.Subject)
	assert.Equal(t, "Jane Doe <jane@example.com>", inbound.Sender)
	assert.Equal(t, "support@example.com", inbound.Recipient)
	assert.Contains(t, inbound.Body, "Please restore my access.")
	assert.Equal(t, "<m1@example.com>", inbound.Metadata["message_id"])
	assert.Equal(t, "ops@example.org", inbound.Metadata["cc"])
}

func TestParseMIMEHTMLOnly(t *testing.T) {
	inbound, err := email.ParseMIME([]byte(rawHTMLOnlyMessage))
	require.NoError(t, err)

	assert.Contains(t, inbound.Body, "Please restore my **portal** access.")
	assert.Contains(t, inbound.Body, "This is blocking our team.")
	assert.NotContains(t, inbound.Body, "<p>")

	// The converted body reaches the model, not the "No content" placeholder.
	assert.Contains(t, inbound.FormatForModel(), "**portal**")
	assert.NotContains(t, inbound.FormatForModel(), "No content")
}
