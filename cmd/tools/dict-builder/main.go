// cmd/tools/dict-builder/main.go
package main

import (
	"fmt"
	"os"

	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/dictionary"
	"medical-qa-bot/internal/knowledge"
	"medical-qa-bot/internal/models"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	inFile  string
	dictDir string
	replace bool
	dryRun  bool
)

// rootCmd regenerates the disease and symptom dictionaries from a knowledge file.
var rootCmd = &cobra.Command{
	Use:   "dict-builder",
	Short: "Build disease and symptom dictionaries from knowledge records",
	Long: `dict-builder reads a JSON-lines knowledge file and writes every record
name to the disease dictionary and every listed symptom to the symptom
dictionary. Existing entries are kept unless --replace is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.Flags().StringVarP(&inFile, "file", "f", "", "knowledge file (default from data.knowledge_file)")
	rootCmd.Flags().StringVarP(&dictDir, "out", "o", "", "dictionary directory (default from data.dict_dir)")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "overwrite instead of merging with existing entries")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print counts without writing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	data := cfg.Data
	if inFile != "" {
		data.KnowledgeFile = inFile
	}
	if dictDir != "" {
		data.DictDir = dictDir
	}

	f, err := os.Open(data.KnowledgeFile)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := knowledge.ReadJSONLines(f, "file:"+data.KnowledgeFile)
	if err != nil {
		return err
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d invalid lines\n", len(result.Skipped))
	}

	derived := dictionary.FromRecords(result.Records)
	for _, category := range []models.Category{models.CategoryDisease, models.CategorySymptom} {
		path := data.DictionaryPath(string(category))

		var existing []string
		if !replace {
			existing, err = dictionary.LoadFile(path)
			if err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		words := dictionary.Merge(existing, derived[category])

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries (%d new) -> %s\n",
			category, len(words), len(words)-len(existing), path)
		if dryRun {
			continue
		}
		if err := dictionary.WriteFile(path, words); err != nil {
			return err
		}
	}
	return nil
}
