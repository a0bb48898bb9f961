package main

import (
	"medical-qa-bot/internal/chat"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Answer the built-in demonstration questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, cleanup, err := startApp(ctx, out, true)
		if err != nil {
			return err
		}
		defer cleanup()

		return chat.NewDemo(a.Pipeline, cfg.Bot.Name, cfg.Bot.DemoQuestions).Run(ctx, out)
	},
}
