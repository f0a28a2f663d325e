package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inboxpilot-ai/inboxpilot/internal/tools/schemas"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as sent to the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := schemas.Defaults().ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
