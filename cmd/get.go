package cmd

import (
	"context"
	"strconv"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "get a catalog resource",
}

// getSeriesCmd prints one catalog series
var getSeriesCmd = &cobra.Command{
	Use:   "series <id>",
	Short: "get a catalog series by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		id, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalw("invalid series id", zap.String("id", args[0]), zap.Error(err))
		}

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		series, err := m.GetSeries(ctx, id)
		if err != nil {
			log.Fatalw("failed to get series", zap.Int("id", id), zap.Error(err))
		}

		printJSON(cmd.OutOrStdout(), log, series)
	},
}

func init() {
	getCmd.AddCommand(getSeriesCmd)
	rootCmd.AddCommand(getCmd)
}
