package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/draft"
	"github.com/inboxpilot-ai/inboxpilot/internal/email"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/voice"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleProcessEmail accepts either a normalized JSON email record or a
// raw MIME message (Content-Type message/rfc822), runs the pipeline, and
// returns the outcome.
func (s *Server) handleProcessEmail(c *gin.Context) {
	inbound, err := s.readInbound(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	outcome := s.processor.Process(c.Request.Context(), inbound)

	c.Header("X-Request-ID", outcome.RequestID)
	c.Header("X-Processing-Time", strconv.FormatInt(outcome.ProcessingTimeMs, 10))
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) readInbound(c *gin.Context) (*email.Inbound, error) {
	contentType := c.ContentType()
	if contentType == "message/rfc822" {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		return email.ParseMIME(raw)
	}

	var inbound email.Inbound
	if err := c.ShouldBindJSON(&inbound); err != nil {
		return nil, err
	}
	return &inbound, nil
}

type editDraftRequest struct {
	Draft         draft.EmailDraft `json:"draft" binding:"required"`
	Transcription string           `json:"transcription" binding:"required"`
	EditType      string           `json:"edit_type"`
	Confidence    float64          `json:"confidence"`
}

// handleEditDraft applies one voice command to the submitted draft.
// Transcriptions below the configured confidence floor are rejected so a
// garbled command cannot silently rewrite the draft.
func (s *Server) handleEditDraft(c *gin.Context) {
	var req editDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	if req.Confidence > 0 && req.Confidence < s.voiceCfg.MinConfidence {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"error":  "transcription confidence below threshold",
		})
		return
	}

	result := voice.ProcessEdit(voice.Command{
		Transcription: req.Transcription,
		Confidence:    req.Confidence,
		EditType:      voice.EditType(strings.ToLower(req.EditType)),
	}, req.Draft)

	logger.Logger.Info("draft edited",
		zap.String("edit_type", string(result.EditType)),
		zap.Time("edited_at", time.Now().UTC()),
	)
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}

type sendDraftRequest struct {
	Draft draft.EmailDraft `json:"draft" binding:"required"`
	Email email.Inbound    `json:"email" binding:"required"`
}

// handleSendDraft dispatches an approved draft back to the sender of the
// original email.
func (s *Server) handleSendDraft(c *gin.Context) {
	if s.dispatcher == nil || !s.dispatcher.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "outbound dispatch is not configured"})
		return
	}

	var req sendDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	if err := s.dispatcher.SendDraft(req.Draft, &req.Email); err != nil {
		logger.Logger.Error("draft dispatch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
