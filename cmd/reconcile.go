package cmd

import (
	"context"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd binds the tv library once and prints the report
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "reconcile the tv library against the catalog once",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		report, err := m.ReconcileLibrary(ctx)
		if err != nil {
			log.Fatalw("failed to reconcile library", zap.Error(err))
		}

		printJSON(cmd.OutOrStdout(), log, report)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
