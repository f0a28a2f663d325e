// Package cli implements the inboxpilot command line interface.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/inboxpilot-ai/inboxpilot/internal/config"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/model"
	"github.com/inboxpilot-ai/inboxpilot/internal/store"
	"github.com/inboxpilot-ai/inboxpilot/internal/tools"
	"github.com/inboxpilot-ai/inboxpilot/internal/triage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "inboxpilot",
	Short: "AI email triage with tool calling",
	Long:  "inboxpilot sends inbound email through a tiered model pipeline, validates the model's tool calls, and supports voice-driven draft editing.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "inboxpilot.toml", "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(toolsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// pipeline bundles the wired processing components. cleanup closes the
// store when persistence is enabled.
type pipeline struct {
	processor *triage.Processor
	invoker   *model.Invoker
	cfg       *config.Config
	cleanup   func()
}

// buildPipeline loads config and wires the pipeline.
func buildPipeline() (*pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.Log.Level)

	client := model.NewClient(&model.ClientConfig{
		Endpoint: cfg.Models.Endpoint,
		APIToken: cfg.Models.APIToken,
		Timeout:  cfg.Models.RequestTimeout,
	})
	invoker := model.NewInvoker(client, &model.InvokerConfig{
		PrimaryModel:  cfg.Models.PrimaryModel,
		FallbackModel: cfg.Models.FallbackModel,
		MaxRetries:    cfg.Models.MaxRetries,
		RetryDelay:    time.Duration(cfg.Models.RetryDelaySeconds) * time.Second,
		MaxTokens:     cfg.Models.MaxTokens,
		Temperature:   cfg.Models.Temperature,
	})
	router := tools.DefaultRouter()

	var recorder triage.Recorder
	cleanup := func() {}
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		recorder = st
		cleanup = func() { st.Close() }
	}

	return &pipeline{
		processor: triage.NewProcessor(invoker, router, recorder),
		invoker:   invoker,
		cfg:       cfg,
		cleanup:   cleanup,
	}, nil
}
