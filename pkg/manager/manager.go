package manager

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Nackophilz/fankai-jellyfin/config"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/table"
	"github.com/go-jet/jet/v2/sqlite"
	"go.uber.org/zap"
)

const defaultConcurrency = 4

// ErrNoLibrary is returned by library operations when no TV library is configured
var ErrNoLibrary = errors.New("no tv library configured")

type MediaManager struct {
	catalog  catalog.Catalog
	library  library.Library
	storage  storage.Storage
	config   config.Manager
	series   *resolve.SeriesResolver
	identity *resolve.IdentityValidator
	seasons  *resolve.SeasonResolver
	episodes *resolve.EpisodeResolver
}

// New wires the resolvers around c. A zero matching configuration falls back to resolve.DefaultConfig.
func New(c catalog.Catalog, lib library.Library, store storage.Storage, matching config.Matching, managerConfig config.Manager) MediaManager {
	cfg := resolve.DefaultConfig()
	if matching != (config.Matching{}) {
		cfg = resolve.Config{
			PenaltyFactor:   matching.PenaltyFactor,
			AcceptThreshold: matching.AcceptThreshold,
			YearBonus:       matching.YearBonus,
		}
	}

	series := resolve.NewSeriesResolver(c, cfg)
	return MediaManager{
		catalog:  c,
		library:  lib,
		storage:  store,
		config:   managerConfig,
		series:   series,
		identity: resolve.NewIdentityValidator(c, series),
		seasons:  resolve.NewSeasonResolver(c),
		episodes: resolve.NewEpisodeResolver(c),
	}
}

// SearchSeries ranks the catalog series against a name
func (m MediaManager) SearchSeries(ctx context.Context, name string, year *int) ([]resolve.Candidate, error) {
	log := logger.FromCtx(ctx)

	candidates, err := m.series.Search(ctx, name, year)
	if err != nil {
		log.Debugw("series search failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return candidates, nil
}

// ResolveSeries validates the bound ID of local, if any, and otherwise searches the catalog
func (m MediaManager) ResolveSeries(ctx context.Context, local resolve.LocalSeries) (resolve.SeriesResolution, error) {
	return m.identity.Resolve(ctx, local)
}

func (m MediaManager) ResolveSeason(ctx context.Context, seriesID int, local resolve.LocalSeason) (*catalog.Season, error) {
	return m.seasons.Resolve(ctx, seriesID, local)
}

func (m MediaManager) ResolveEpisode(ctx context.Context, seriesID int, local resolve.LocalEpisode) (*resolve.EpisodeMatch, error) {
	return m.episodes.Resolve(ctx, seriesID, local)
}

// GetSeries fetches a catalog series by ID. A series the catalog does not know is reported as resolve.ErrNoMatch.
func (m MediaManager) GetSeries(ctx context.Context, id int) (*catalog.Series, error) {
	series, err := m.catalog.GetSeriesByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if series == nil {
		return nil, fmt.Errorf("series %d: %w", id, resolve.ErrNoMatch)
	}

	return series, nil
}

// ListTVInLibrary lists the series folders of the TV library
func (m MediaManager) ListTVInLibrary(ctx context.Context) ([]library.Series, error) {
	if m.library == nil {
		return nil, ErrNoLibrary
	}

	return m.library.FindSeries(ctx)
}

// ListBindings lists stored bindings, optionally only those of one kind
func (m MediaManager) ListBindings(ctx context.Context, kind storage.BindingKind) ([]*storage.Binding, error) {
	if kind == "" {
		return m.storage.ListBindings(ctx)
	}

	return m.storage.ListBindings(ctx, table.Binding.Kind.EQ(sqlite.String(string(kind))))
}

// boundID returns the catalog ID stored for a library path, if any
func (m MediaManager) boundID(ctx context.Context, kind storage.BindingKind, path string) (*storage.Binding, *int, error) {
	binding, err := m.storage.GetBinding(ctx, kind, path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.Atoi(binding.CatalogID)
	if err != nil {
		logger.FromCtx(ctx).Warnw("ignoring binding with invalid catalog id", zap.String("path", path), zap.String("catalog_id", binding.CatalogID))
		return binding, nil, nil
	}

	return binding, &id, nil
}
