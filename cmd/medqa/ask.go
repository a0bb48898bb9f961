package main

import (
	"fmt"
	"strings"

	"medical-qa-bot/internal/pipeline"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and exit",
	Example: `  medqa ask 糖尿病有什么症状
  medqa ask --explain 感冒要多久才能好
  medqa ask --json 为什么有的人会失眠`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("explain", false, "print the recognised entities, intents and outcome")
	askCmd.Flags().Bool("json", false, "print the full result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	explain, _ := cmd.Flags().GetBool("explain")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	a, cleanup, err := startApp(cmd.Context(), out, false)
	if err != nil {
		return err
	}
	defer cleanup()

	result := a.Pipeline.Resolve(cmd.Context(), strings.Join(args, " "))

	if asJSON {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if explain {
		printExplanation(cmd, result)
	}
	_, err = fmt.Fprintln(out, result.Text)
	return err
}

func printExplanation(cmd *cobra.Command, r pipeline.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "outcome:  %s\n", r.Outcome)
	for _, category := range r.Classification.Entities.Categories() {
		fmt.Fprintf(out, "entity:   %s -> %s\n", category, strings.Join(r.Classification.Entities.Words(category), ", "))
	}
	for _, intent := range r.Classification.Intents {
		fmt.Fprintf(out, "intent:   %s\n", intent)
	}
	if r.Disease != "" {
		fmt.Fprintf(out, "disease:  %s\n", r.Disease)
	}
}
