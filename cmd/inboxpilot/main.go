package main

import (
	"os"

	"github.com/inboxpilot-ai/inboxpilot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
