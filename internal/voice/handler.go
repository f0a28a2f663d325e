package voice

import (
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
)

// Command is a transcribed edit instruction. Capture and transcription
// happen upstream; the handler only consumes the text and its confidence.
type Command struct {
	Transcription string   `json:"transcription"`
	Confidence    float64  `json:"confidence"`
	EditType      EditType `json:"edit_type,omitempty"`
}

// EditResult pairs the pre and post edit drafts so callers can diff or
// undo.
type EditResult struct {
	Original     draft.EmailDraft `json:"original_draft"`
	Edited       draft.EmailDraft `json:"edited_draft"`
	VoiceCommand string           `json:"voice_command"`
	EditType     EditType         `json:"edit_type"`
	Confidence   float64          `json:"confidence"`
}

// ProcessEdit applies one voice command to a draft. A missing edit type
// is classified from the transcription; a missing confidence defaults
// to 0.9.
func ProcessEdit(cmd Command, d draft.EmailDraft) EditResult {
	editType := cmd.EditType
	if editType == "" {
		editType = ClassifyEditType(cmd.Transcription)
	}
	confidence := cmd.Confidence
	if confidence == 0 {
		confidence = 0.9
	}

	logger.Logger.Info("processing voice edit",
		zap.String("edit_type", string(editType)),
		zap.String("command", truncate(cmd.Transcription, 50)),
		zap.Float64("confidence", confidence),
	)

	return EditResult{
		Original:     d,
		Edited:       ApplyEdit(cmd.Transcription, d, editType),
		VoiceCommand: cmd.Transcription,
		EditType:     editType,
		Confidence:   confidence,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
