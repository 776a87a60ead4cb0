package cmd

import (
	"context"
	"strconv"

	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resolveYear    int
	resolveBoundID int
	resolveSeason  int
	resolveEpisode int
	resolveMeta    bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "resolve local names against the catalog",
}

// resolveSeriesCmd resolves a series folder name
var resolveSeriesCmd = &cobra.Command{
	Use:   "series <folder>",
	Short: "resolve a series folder",
	Long:  `resolve a series folder. A trailing "(YYYY)" in the folder is used as the year.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		name, year := library.SplitYear(args[0])
		local := resolve.LocalSeries{
			Name:    name,
			Folder:  name,
			Year:    flagInt(cmd, "year", resolveYear, year),
			BoundID: flagInt(cmd, "bound-id", resolveBoundID, nil),
		}

		if resolveMeta {
			meta, err := m.SeriesMetadata(ctx, local)
			if err != nil {
				log.Fatalw("failed to resolve series", zap.String("folder", args[0]), zap.Error(err))
			}
			printJSON(cmd.OutOrStdout(), log, meta)
			return
		}

		res, err := m.ResolveSeries(ctx, local)
		if err != nil {
			log.Fatalw("failed to resolve series", zap.String("folder", args[0]), zap.Error(err))
		}

		printJSON(cmd.OutOrStdout(), log, res)
	},
}

// resolveSeasonCmd resolves a season number of a catalog series
var resolveSeasonCmd = &cobra.Command{
	Use:   "season <series id> <number>",
	Short: "resolve a season",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalw("invalid series id", zap.String("id", args[0]), zap.Error(err))
		}

		number, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalw("invalid season number", zap.String("number", args[1]), zap.Error(err))
		}

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		local := resolve.LocalSeason{
			Number:  &number,
			BoundID: flagInt(cmd, "bound-id", resolveBoundID, nil),
		}

		if resolveMeta {
			meta, err := m.SeasonMetadata(ctx, seriesID, local)
			if err != nil {
				log.Fatalw("failed to resolve season", zap.Int("number", number), zap.Error(err))
			}
			printJSON(cmd.OutOrStdout(), log, meta)
			return
		}

		season, err := m.ResolveSeason(ctx, seriesID, local)
		if err != nil {
			log.Fatalw("failed to resolve season", zap.Int("number", number), zap.Error(err))
		}

		printJSON(cmd.OutOrStdout(), log, season)
	},
}

// resolveEpisodeCmd resolves an episode file of a catalog series
var resolveEpisodeCmd = &cobra.Command{
	Use:   "episode <series id> <path>",
	Short: "resolve an episode file",
	Long:  `resolve an episode file. Season and episode numbers are parsed from the path unless given as flags.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalw("invalid series id", zap.String("id", args[0]), zap.Error(err))
		}

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		parsed := library.ParseEpisode(args[1])
		local := resolve.LocalEpisode{
			Path:    args[1],
			Season:  flagInt(cmd, "season", resolveSeason, parsed.Season),
			Episode: flagInt(cmd, "episode", resolveEpisode, parsed.Episode),
		}

		if resolveMeta {
			meta, err := m.EpisodeMetadata(ctx, seriesID, local)
			if err != nil {
				log.Fatalw("failed to resolve episode", zap.String("path", args[1]), zap.Error(err))
			}
			printJSON(cmd.OutOrStdout(), log, meta)
			return
		}

		match, err := m.ResolveEpisode(ctx, seriesID, local)
		if err != nil {
			log.Fatalw("failed to resolve episode", zap.String("path", args[1]), zap.Error(err))
		}

		printJSON(cmd.OutOrStdout(), log, match)
	},
}

// flagInt returns the flag value when it was set on the command line, otherwise fallback
func flagInt(cmd *cobra.Command, name string, value int, fallback *int) *int {
	if cmd.Flags().Changed(name) {
		return &value
	}
	return fallback
}

func init() {
	resolveSeriesCmd.Flags().IntVarP(&resolveYear, "year", "y", 0, "release year, overrides the folder year")
	resolveSeriesCmd.Flags().IntVar(&resolveBoundID, "bound-id", 0, "catalog id previously bound to the folder")
	resolveSeriesCmd.Flags().BoolVar(&resolveMeta, "metadata", false, "print the projected library metadata instead")

	resolveSeasonCmd.Flags().IntVar(&resolveBoundID, "bound-id", 0, "catalog season id previously bound to the folder")
	resolveSeasonCmd.Flags().BoolVar(&resolveMeta, "metadata", false, "print the projected library metadata instead")

	resolveEpisodeCmd.Flags().IntVarP(&resolveSeason, "season", "s", 0, "season number")
	resolveEpisodeCmd.Flags().IntVarP(&resolveEpisode, "episode", "e", 0, "episode number")
	resolveEpisodeCmd.Flags().BoolVar(&resolveMeta, "metadata", false, "print the projected library metadata instead")

	resolveCmd.AddCommand(resolveSeriesCmd)
	resolveCmd.AddCommand(resolveSeasonCmd)
	resolveCmd.AddCommand(resolveEpisodeCmd)
	rootCmd.AddCommand(resolveCmd)
}
