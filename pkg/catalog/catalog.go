// Package catalog reads series, seasons, episodes and actors from the Fankai metadata catalog.
package catalog

import (
	"context"
)

//go:generate mockgen -package mocks -destination mocks/mock_catalog.go github.com/Nackophilz/fankai-jellyfin/pkg/catalog Catalog

// Catalog is the read only query surface of the metadata catalog. Lookups of records that do not
// exist return a nil record or an empty slice with a nil error.
type Catalog interface {
	GetSeriesByID(ctx context.Context, id int) (*Series, error)
	ListSeries(ctx context.Context) ([]Series, error)
	ListSeasons(ctx context.Context, seriesID int) ([]Season, error)
	ListEpisodes(ctx context.Context, seasonID int) ([]Episode, error)
	ListActors(ctx context.Context, seriesID int) ([]Actor, error)
}
