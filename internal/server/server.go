// Package server exposes the triage pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inboxpilot-ai/inboxpilot/internal/config"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/notify"
	"github.com/inboxpilot-ai/inboxpilot/internal/triage"
)

// Server routes inbound email processing and draft edit requests.
type Server struct {
	cfg        config.ServerConfig
	voiceCfg   config.VoiceConfig
	processor  *triage.Processor
	dispatcher *notify.Dispatcher
	engine     *gin.Engine
}

func New(cfg config.ServerConfig, voiceCfg config.VoiceConfig, processor *triage.Processor, dispatcher *notify.Dispatcher) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:        cfg,
		voiceCfg:   voiceCfg,
		processor:  processor,
		dispatcher: dispatcher,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/health", s.handleHealth)
	v1 := r.Group("/v1")
	{
		v1.POST("/emails/process", s.handleProcessEmail)
		v1.POST("/drafts/edit", s.handleEditDraft)
		v1.POST("/drafts/send", s.handleSendDraft)
	}

	s.engine = r
	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	logger.Logger.Info("shutting down")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("shutdown error", zap.Error(err))
		return err
	}
	logger.Logger.Info("server stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		)
	}
}
