package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchYear int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "search the catalog",
}

// searchSeriesCmd lists every catalog series scoring above the threshold for a name
var searchSeriesCmd = &cobra.Command{
	Use:   "series <name>",
	Short: "search catalog series by name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		name := strings.Join(args, " ")
		candidates, err := m.SearchSeries(ctx, name, flagInt(cmd, "year", searchYear, nil))
		if err != nil {
			log.Fatalw("failed to search series", zap.String("name", name), zap.Error(err))
		}

		rows := make([][]string, 0, len(candidates))
		for _, c := range candidates {
			year := ""
			if y, ok := c.Series.ReleaseYear(); ok {
				year = strconv.Itoa(y)
			}
			rows = append(rows, []string{
				strconv.Itoa(c.Series.ID),
				c.Series.Title,
				year,
				strconv.Itoa(c.Distance),
				strconv.Itoa(c.Score),
			})
		}

		renderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Year", "Distance", "Score"}, rows)
	},
}

func init() {
	searchSeriesCmd.Flags().IntVarP(&searchYear, "year", "y", 0, "release year")
	searchCmd.AddCommand(searchSeriesCmd)
	rootCmd.AddCommand(searchCmd)
}
