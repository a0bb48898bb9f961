// cmd/tools/kb-import/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	knowledgeIn  string
	manifestPath string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kb-import",
	Short: "Validate, import and export medical knowledge records",
	Long: `kb-import works on JSON-lines knowledge files. It validates them against
the record schema, loads them into PostgreSQL, Elasticsearch or Redis, and
exports whatever a configured backend currently holds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFromFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		if knowledgeIn == "" {
			knowledgeIn = cfg.Data.KnowledgeFile
		}
		log = logger.NewStructured(logger.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		}).With(map[string]interface{}{"tool": "kb-import"})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&knowledgeIn, "file", "", "JSON-lines knowledge file (default from data.knowledge_file)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "data/import-manifest.json", "import manifest to append to; empty disables")

	rootCmd.AddCommand(validateCmd, importCmd, exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
