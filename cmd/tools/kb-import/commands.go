package main

import (
	"fmt"
	"io"
	"os"

	"medical-qa-bot/internal/app"
	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/database"
	"medical-qa-bot/internal/knowledge"
	"medical-qa-bot/pkg/manifest"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every line of the knowledge file against the record schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		result, err := readKnowledgeFile(knowledgeIn)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d valid records, %d skipped lines\n", knowledgeIn, len(result.Records), len(result.Skipped))
		for _, skipped := range result.Skipped {
			fmt.Fprintf(out, "  %v\n", skipped)
		}

		if strict && len(result.Skipped) > 0 {
			return fmt.Errorf("%d lines failed validation", len(result.Skipped))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:       "import {postgres|elasticsearch|redis}",
	Short:     "Load the knowledge file into a backend",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{config.BackendPostgres, config.BackendElasticsearch, config.BackendRedis},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := args[0]
		ctx := cmd.Context()

		result, err := readKnowledgeFile(knowledgeIn)
		if err != nil {
			return err
		}
		for _, skipped := range result.Skipped {
			log.Warn("Skipping invalid record", map[string]interface{}{"error": skipped.Error()})
		}

		var target string
		switch backend {
		case config.BackendPostgres:
			target = cfg.Knowledge.Table
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()
			db := sqlx.NewDb(pg.DB, "postgres")
			if err := knowledge.EnsurePostgresTable(ctx, db, target); err != nil {
				return err
			}
			err = knowledge.SeedPostgres(ctx, db, target, result.Records)
			if err != nil {
				return err
			}

		case config.BackendElasticsearch:
			target = cfg.Knowledge.Index
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := knowledge.IndexElasticsearch(ctx, es.Client, target, result.Records); err != nil {
				return err
			}

		case config.BackendRedis:
			target = cfg.Knowledge.RedisKey
			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()
			if err := knowledge.SeedRedis(ctx, rdb.Client, target, result.Records); err != nil {
				return err
			}
		}

		log.Info("Knowledge imported", map[string]interface{}{
			"backend": backend,
			"target":  target,
			"records": len(result.Records),
			"skipped": len(result.Skipped),
		})
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (%s)\n", len(result.Records), backend, target)

		if manifestPath == "" {
			return nil
		}
		return manifest.Record(manifestPath, manifest.Import{
			ID:         uuid.NewString(),
			Backend:    backend,
			Target:     target,
			SourceFile: knowledgeIn,
			Records:    len(result.Records),
			Skipped:    len(result.Skipped),
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the records held by the configured backend as JSON lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		source, closeFn, err := app.OpenSource(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		log.Info("Knowledge exported", map[string]interface{}{
			"source":  source.Name(),
			"records": len(result.Records),
		})
		return knowledge.WriteJSONLines(w, result.Records)
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "fail when any line is skipped")
	exportCmd.Flags().String("out", "-", "output file, - for stdout")
}

func readKnowledgeFile(path string) (*knowledge.LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge file: %w", err)
	}
	defer f.Close()
	return knowledge.ReadJSONLines(f, "file:"+path)
}
