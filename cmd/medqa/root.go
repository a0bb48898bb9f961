package main

import (
	"fmt"

	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string

	cfg    *config.Config
	zapLog *zap.Logger
	log    logger.Logger
)

// rootCmd starts an interactive session when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "medqa",
	Short: "Medical knowledge question answering bot",
	Long: `medqa answers Chinese questions about diseases from a local medical
knowledge base. It recognises disease names and question intents with
dictionary and cue-word matching, then renders a templated answer.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
	RunE:              runChat,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLog != nil {
			_ = zapLog.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("backend", "", "knowledge backend: file, postgres, elasticsearch, redis")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the category dictionaries")
	rootCmd.PersistentFlags().String("knowledge-file", "", "JSON-lines knowledge file for the file backend")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("knowledge.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("data.dict_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("data.knowledge_file", rootCmd.PersistentFlags().Lookup("knowledge-file"))

	rootCmd.AddCommand(chatCmd, demoCmd, askCmd)
}

func initRuntime(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog = logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	log = logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"app":     cfg.App.Name,
		"command": cmd.Name(),
	})
	return nil
}
