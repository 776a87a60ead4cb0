package catalog

import (
	"context"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/pkg/cache"
)

// Cached wraps a Catalog and keeps successful answers for a fixed time so a library pass works
// against one snapshot of the catalog. Errors are never cached.
type Cached struct {
	catalog  Catalog
	listing  *cache.Cache[struct{}, []Series]
	series   *cache.Cache[int, *Series]
	seasons  *cache.Cache[int, []Season]
	episodes *cache.Cache[int, []Episode]
	actors   *cache.Cache[int, []Actor]
}

func NewCached(c Catalog, ttl time.Duration) *Cached {
	return &Cached{
		catalog:  c,
		listing:  cache.NewWithTTL[struct{}, []Series](ttl),
		series:   cache.NewWithTTL[int, *Series](ttl),
		seasons:  cache.NewWithTTL[int, []Season](ttl),
		episodes: cache.NewWithTTL[int, []Episode](ttl),
		actors:   cache.NewWithTTL[int, []Actor](ttl),
	}
}

func (c *Cached) GetSeriesByID(ctx context.Context, id int) (*Series, error) {
	return through(ctx, c.series, id, c.catalog.GetSeriesByID)
}

func (c *Cached) ListSeries(ctx context.Context) ([]Series, error) {
	return through(ctx, c.listing, struct{}{}, func(ctx context.Context, _ struct{}) ([]Series, error) {
		return c.catalog.ListSeries(ctx)
	})
}

func (c *Cached) ListSeasons(ctx context.Context, seriesID int) ([]Season, error) {
	return through(ctx, c.seasons, seriesID, c.catalog.ListSeasons)
}

func (c *Cached) ListEpisodes(ctx context.Context, seasonID int) ([]Episode, error) {
	return through(ctx, c.episodes, seasonID, c.catalog.ListEpisodes)
}

func (c *Cached) ListActors(ctx context.Context, seriesID int) ([]Actor, error) {
	return through(ctx, c.actors, seriesID, c.catalog.ListActors)
}

// Invalidate drops everything cached so the next calls reach the catalog
func (c *Cached) Invalidate() {
	c.listing.Clear()
	c.series.Clear()
	c.seasons.Clear()
	c.episodes.Clear()
	c.actors.Clear()
}

func through[K comparable, V any](ctx context.Context, store *cache.Cache[K, V], key K, fetch func(context.Context, K) (V, error)) (V, error) {
	if v, ok := store.Get(key); ok {
		return v, nil
	}

	v, err := fetch(ctx, key)
	if err != nil {
		return v, err
	}

	store.Set(key, v)
	return v, nil
}
