package main

import (
	"medical-qa-bot/internal/chat"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question answering session",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, cleanup, err := startApp(ctx, out, true)
	if err != nil {
		return err
	}
	defer cleanup()

	repl := chat.NewREPL(a.Pipeline, cfg.Bot, log)
	return repl.Run(ctx, cmd.InOrStdin(), out)
}
