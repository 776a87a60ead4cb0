package manager

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/model"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/table"
	"github.com/go-jet/jet/v2/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultReconcileInterval = 10 * time.Minute

// ReconcileReport counts the outcome of one library reconcile
type ReconcileReport struct {
	Series            int `json:"series"`
	SeriesBound       int `json:"seriesBound"`
	SeriesDrifted     int `json:"seriesDrifted"`
	SeriesUnmatched   int `json:"seriesUnmatched"`
	SeriesFailed      int `json:"seriesFailed"`
	EpisodesBound     int `json:"episodesBound"`
	EpisodesUnmatched int `json:"episodesUnmatched"`
}

// Run reconciles the library now and then on every tick of manager.jobs.libraryReconcile until ctx is done
func (m MediaManager) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	interval := m.config.Jobs.LibraryReconcile
	if interval <= 0 {
		interval = defaultReconcileInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := m.ReconcileLibrary(ctx); err != nil && ctx.Err() == nil {
			log.Errorw("failed to reconcile library", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Infow("stopping library reconcile")
			return nil
		case <-ticker.C:
		}
	}
}

// ReconcileLibrary binds every series folder and episode file of the library to the catalog.
// A series the catalog does not list is counted, not failed. A series whose catalog lookups fail is
// skipped until the next reconcile.
func (m MediaManager) ReconcileLibrary(ctx context.Context) (ReconcileReport, error) {
	log := logger.FromCtx(ctx)

	var report ReconcileReport
	if m.library == nil {
		return report, ErrNoLibrary
	}

	series, err := m.library.FindSeries(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to scan library: %w", err)
	}

	for _, s := range series {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Series++
		err := m.reconcileSeries(ctx, s, &report)
		switch {
		case err == nil:
		case errors.Is(err, resolve.ErrNoMatch):
			log.Infow("no catalog series matches folder", zap.String("folder", s.Folder))
			report.SeriesUnmatched++
		default:
			log.Errorw("failed to reconcile series", zap.String("folder", s.Folder), zap.Error(err))
			report.SeriesFailed++
		}
	}

	log.Infow("library reconciled",
		zap.Int("series", report.Series),
		zap.Int("bound", report.SeriesBound),
		zap.Int("drifted", report.SeriesDrifted),
		zap.Int("unmatched", report.SeriesUnmatched),
		zap.Int("failed", report.SeriesFailed),
		zap.Int("episodes_bound", report.EpisodesBound),
		zap.Int("episodes_unmatched", report.EpisodesUnmatched))

	return report, nil
}

func (m MediaManager) reconcileSeries(ctx context.Context, s library.Series, report *ReconcileReport) error {
	log := logger.FromCtx(ctx, zap.String("series_path", s.Path))
	ctx = logger.WithCtx(ctx, log)

	binding, boundID, err := m.boundID(ctx, storage.BindingKindSeries, s.Path)
	if err != nil {
		return err
	}

	// the year tag is already split off the folder name
	res, err := m.identity.Resolve(ctx, resolve.LocalSeries{
		Name:    s.Name,
		Folder:  s.Name,
		Year:    s.Year,
		BoundID: boundID,
	})
	if res.Drifted {
		report.SeriesDrifted++
		if binding != nil {
			if err := m.storage.MarkBindingDrifted(ctx, int64(binding.ID)); err != nil {
				log.Errorw("failed to mark binding drifted", zap.Error(err))
			}
		}
		if res.PreviousID != nil {
			m.driftChildren(ctx, s.Path, *res.PreviousID)
		}
	}
	if err != nil {
		return err
	}

	seriesID := strconv.Itoa(res.Series.ID)
	if binding == nil || res.Drifted || binding.CatalogID != seriesID || binding.State() != storage.BindingStateBound {
		_, err = m.storage.UpsertBinding(ctx, model.Binding{
			Kind:      string(storage.BindingKindSeries),
			Path:      s.Path,
			CatalogID: seriesID,
		})
		if err != nil {
			return err
		}
		log.Debugw("series bound", zap.Int("series_id", res.Series.ID))
	}
	report.SeriesBound++

	bound, unmatched, err := m.reconcileEpisodes(ctx, res.Series.ID, s)
	report.EpisodesBound += bound
	report.EpisodesUnmatched += unmatched
	return err
}

// driftChildren marks the season and episode bindings below dir that still point at previousID.
// Episodes matching the new series are bound again by reconcileEpisodes.
func (m MediaManager) driftChildren(ctx context.Context, dir string, previousID int) {
	log := logger.FromCtx(ctx)

	children, err := m.storage.ListBindings(ctx, table.Binding.ParentCatalogID.EQ(sqlite.String(strconv.Itoa(previousID))))
	if err != nil {
		log.Errorw("failed to list child bindings", zap.Int("previous_id", previousID), zap.Error(err))
		return
	}

	prefix := dir + "/"
	for _, b := range children {
		if !strings.HasPrefix(b.Path, prefix) || b.State() == storage.BindingStateDrifted {
			continue
		}

		if err := m.storage.MarkBindingDrifted(ctx, int64(b.ID)); err != nil {
			log.Errorw("failed to mark binding drifted", zap.String("child", b.Path), zap.Error(err))
			continue
		}
		log.Debugw("child binding drifted", zap.String("kind", string(b.Kind())), zap.String("child", b.Path))
	}
}

// reconcileEpisodes resolves the episode files of a bound series concurrently. Season bindings are
// written once every episode is resolved, from the season folders the episodes were found in.
func (m MediaManager) reconcileEpisodes(ctx context.Context, seriesID int, s library.Series) (int, int, error) {
	limit := m.config.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	parent := strconv.Itoa(seriesID)

	var bound, unmatched atomic.Int64
	var mu sync.Mutex
	seasons := map[string]int{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, ep := range s.Episodes {
		g.Go(func() error {
			match, err := m.episodes.Resolve(gctx, seriesID, resolve.LocalEpisode{
				Path:    ep.Path,
				Season:  ep.Season,
				Episode: ep.Episode,
			})
			if errors.Is(err, resolve.ErrNoMatch) {
				unmatched.Add(1)
				return nil
			}
			if err != nil {
				return err
			}

			tier := match.Tier.String()
			_, err = m.storage.UpsertBinding(gctx, model.Binding{
				Kind:            string(storage.BindingKindEpisode),
				Path:            ep.Path,
				CatalogID:       strconv.Itoa(match.Episode.ID),
				ParentCatalogID: &parent,
				Tier:            &tier,
			})
			if err != nil {
				return err
			}

			if dir := path.Dir(ep.Path); dir != s.Path {
				mu.Lock()
				seasons[dir] = match.Season.ID
				mu.Unlock()
			}

			bound.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(bound.Load()), int(unmatched.Load()), err
	}

	for dir, seasonID := range seasons {
		_, err := m.storage.UpsertBinding(ctx, model.Binding{
			Kind:            string(storage.BindingKindSeason),
			Path:            dir,
			CatalogID:       strconv.Itoa(seasonID),
			ParentCatalogID: &parent,
		})
		if err != nil {
			return int(bound.Load()), int(unmatched.Load()), err
		}
	}

	return int(bound.Load()), int(unmatched.Load()), nil
}
