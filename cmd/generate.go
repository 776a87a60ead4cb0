package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	jet "github.com/go-jet/jet/v2/generator/sqlite"
)

var outputDirectory string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate code",
}

// schemaCmd regenerates the jet models and tables from the embedded migrations
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "generate database code",
	Long:  `migrate a scratch database and generate jet models and tables from it`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		dir, err := os.MkdirTemp("", "fankai-schema")
		if err != nil {
			log.Fatalw("failed to create scratch directory", zap.Error(err))
		}
		defer os.RemoveAll(dir)

		dbPath := filepath.Join(dir, "schema.sqlite")
		store, err := sqlite.New(ctx, dbPath)
		if err != nil {
			log.Fatalw("failed to create scratch database", zap.Error(err))
		}

		if err := store.RunMigrations(ctx); err != nil {
			log.Fatalw("failed to migrate scratch database", zap.Error(err))
		}

		if err := jet.GenerateDSN(dbPath, outputDirectory); err != nil {
			log.Fatalw("failed to generate database code", zap.Error(err))
		}

		log.Infow("successfully generated database code", zap.String("out", outputDirectory))
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&outputDirectory, "out", "o", "./pkg/storage/sqlite/schema/gen", "directory to output generated code to")
	generateCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(generateCmd)
}
