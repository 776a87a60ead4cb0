package cmd

import (
	"context"
	"strconv"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bindingKind string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list library items",
}

// listTVCmd lists the series found in the tv library
var listTVCmd = &cobra.Command{
	Use:   "tv",
	Short: "list series found in the tv library",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		series, err := m.ListTVInLibrary(ctx)
		if err != nil {
			log.Fatalw("failed to list tv library", zap.Error(err))
		}

		rows := make([][]string, 0, len(series))
		for _, s := range series {
			var size int64
			for _, e := range s.Episodes {
				size += e.Size
			}

			year := ""
			if s.Year != nil {
				year = strconv.Itoa(*s.Year)
			}

			rows = append(rows, []string{s.Name, year, strconv.Itoa(len(s.Episodes)), humanize.Bytes(uint64(size))})
		}

		renderTable(cmd.OutOrStdout(), []string{"Series", "Year", "Episodes", "Size"}, rows)
	},
}

// listBindingsCmd lists the stored library to catalog bindings
var listBindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "list stored catalog bindings",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		kind := storage.BindingKind(bindingKind)
		if kind != "" && !kind.Valid() {
			log.Fatalw("unknown binding kind", zap.String("kind", bindingKind))
		}

		cfg := mustConfig(log)
		m := mustManager(ctx, log, cfg)

		bindings, err := m.ListBindings(ctx, kind)
		if err != nil {
			log.Fatalw("failed to list bindings", zap.Error(err))
		}

		rows := make([][]string, 0, len(bindings))
		for _, b := range bindings {
			tier := ""
			if b.Tier != nil {
				tier = *b.Tier
			}

			rows = append(rows, []string{
				string(b.Kind()),
				b.Path,
				b.CatalogID,
				string(b.State()),
				tier,
				humanize.Time(b.UpdatedAt),
			})
		}

		renderTable(cmd.OutOrStdout(), []string{"Kind", "Path", "Catalog ID", "State", "Tier", "Updated"}, rows)
	},
}

func init() {
	listBindingsCmd.Flags().StringVarP(&bindingKind, "kind", "k", "", "only list bindings of this kind (series, season, episode)")

	listCmd.AddCommand(listTVCmd)
	listCmd.AddCommand(listBindingsCmd)
	rootCmd.AddCommand(listCmd)
}
