package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/model"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools/executor"
	"github.com/inboxpilot-ai/inboxpilot/internal/triage"
	"github.com/inboxpilot-ai/inboxpilot/internal/voice"
)

var demoEmails = []email.Inbound{
	{
		Subject: "URGENT: Client portal access",
		Sender:  "ceo@bigcompany.com",
		Body: "URGENT: Our team cannot access the client portal.\n" +
			"We have a major presentation in 2 hours and need our project files immediately.\n" +
			"This is blocking a critical client deliverable.",
		UserID: "demo",
	},
	{
		Subject: "Quarterly AI service charges",
		Sender:  "cfo@enterprise.com",
		Body: "Hi, I'm reviewing our quarterly invoices and noticed significant charges\n" +
			"for generative AI services. Can you provide a detailed breakdown of what this includes\n" +
			"and how it aligns with our AI budget optimization goals?",
		UserID: "demo",
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive triage and voice editing demo",
	Long:  "Processes sample emails through the triage pipeline, then lets you revise the generated draft with typed voice commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		defer p.cleanup()

		return runDemo(cmd, p)
	},
}

func runDemo(cmd *cobra.Command, p *pipeline) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintln(out, "INBOXPILOT - EMAIL TRIAGE AND VOICE EDITING DEMO")
	fmt.Fprintln(out, strings.Repeat("=", 70))

	for i := range demoEmails {
		inbound := &demoEmails[i]
		fmt.Fprintf(out, "\n[EMAIL %d/%d] %s\n", i+1, len(demoEmails), inbound.Subject)
		fmt.Fprintln(out, inbound.Body)
		fmt.Fprintln(out, strings.Repeat("-", 70))

		current := processAndDraft(cmd, p.processor, inbound)
		displayDraft(out, current, "AI-GENERATED DRAFT")

		editCount := 0
	loop:
		for {
			fmt.Fprintln(out, "\n[OPTIONS]")
			fmt.Fprintln(out, "  1. Voice edit")
			fmt.Fprintln(out, "  2. Approve & next")
			fmt.Fprintln(out, "  3. Regenerate")
			fmt.Fprint(out, "\nChoose (1-3): ")

			if !in.Scan() {
				return nil
			}
			switch strings.TrimSpace(in.Text()) {
			case "1":
				fmt.Fprint(out, "Edit command: ")
				if !in.Scan() {
					return nil
				}
				instruction := strings.TrimSpace(in.Text())
				if instruction == "" {
					continue
				}
				result := voice.ProcessEdit(voice.Command{Transcription: instruction}, current)
				current = result.Edited
				editCount++
				fmt.Fprintf(out, "\n[OK] Edit applied (%s, confidence %.2f)\n", result.EditType, result.Confidence)
				displayDraft(out, current, fmt.Sprintf("VOICE-EDITED DRAFT (Edit #%d)", editCount))
			case "2":
				fmt.Fprintln(out, "\n[OK] Draft approved!")
				break loop
			case "3":
				if regenerated, ok := regenerateDraft(cmd.Context(), p.invoker, inbound, current); ok {
					current = regenerated
				} else {
					current = processAndDraft(cmd, p.processor, inbound)
				}
				displayDraft(out, current, "REGENERATED DRAFT")
			default:
				fmt.Fprintln(out, "[ERROR] Invalid choice")
			}
		}
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(out, "DEMO COMPLETE")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	return nil
}

// processAndDraft runs the pipeline and derives an editable draft. When
// the model produced a generate_draft payload that draft is used as-is;
// any other outcome gets a neutral acknowledgment shell.
func processAndDraft(cmd *cobra.Command, processor *triage.Processor, inbound *email.Inbound) draft.EmailDraft {
	outcome := processor.Process(cmd.Context(), inbound)

	if outcome.ToolResult != nil {
		if payload, ok := outcome.ToolResult.Payload.(executor.DraftPayload); ok {
			return payload.Draft
		}
	}
	return draft.EmailDraft{
		Subject: "Re: " + inbound.Subject,
		Content: "Hello,\n\nThank you for reaching out. We've received your email and will respond shortly.\n\nBest regards,\nAI Assistant",
		Tone:    draft.ToneNeutral,
		Urgency: draft.UrgencyMedium,
	}
}

// regenerateDraft asks the model for a fresh reply body via a plain text
// completion, keeping the current draft's subject and tone. The second
// return is false when every model tier is down, so the caller can fall
// back to the full pipeline.
func regenerateDraft(ctx context.Context, inv *model.Invoker, inbound *email.Inbound, current draft.EmailDraft) (draft.EmailDraft, bool) {
	prompt := "Write a brief professional reply to the following email. " +
		"Respond with the message body only.\n\n" + inbound.FormatForModel()

	text := inv.InvokeSimple(ctx, prompt, 1000)
	if text == model.UnavailableMessage {
		return current, false
	}

	current.Content = text
	return current.Touch(draft.EditedViaAI, time.Now().UTC()), true
}

func displayDraft(out io.Writer, d draft.EmailDraft, title string) {
	fmt.Fprintf(out, "\n%s\n[EMAIL] %s\n%s\n", strings.Repeat("=", 70), title, strings.Repeat("=", 70))
	fmt.Fprintf(out, "Subject: %s\n", d.Subject)
	fmt.Fprintf(out, "Tone: %s\n", strings.ToUpper(d.Tone))
	fmt.Fprintf(out, "Urgency: %s\n", strings.ToUpper(d.Urgency))
	fmt.Fprintln(out, "\n"+strings.Repeat("-", 70))
	fmt.Fprintln(out, d.Content)
	fmt.Fprintln(out, strings.Repeat("-", 70))
	if d.EditedVia != "" {
		fmt.Fprintf(out, "[EDIT] Edited via: %s\n", d.EditedVia)
	}
}
