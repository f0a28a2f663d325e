package cli

import (
	"github.com/spf13/cobra"

	"github.com/inboxpilot-ai/inboxpilot/internal/notify"
	"github.com/inboxpilot-ai/inboxpilot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP triage server",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		defer p.cleanup()

		srv := server.New(p.cfg.Server, p.cfg.Voice, p.processor, notify.NewDispatcher(p.cfg.Notify))
		return srv.Run()
	},
}
