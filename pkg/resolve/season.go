package resolve

import (
	"context"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"go.uber.org/zap"
)

// SeasonResolver finds the catalog season a local season folder refers to
type SeasonResolver struct {
	catalog catalog.Catalog
}

func NewSeasonResolver(c catalog.Catalog) *SeasonResolver {
	return &SeasonResolver{catalog: c}
}

// Resolve prefers the season bound to local.BoundID and falls back to the declared season number.
func (r *SeasonResolver) Resolve(ctx context.Context, seriesID int, local LocalSeason) (*catalog.Season, error) {
	seasons, err := r.catalog.ListSeasons(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	if local.BoundID != nil {
		for _, s := range seasons {
			if s.ID == *local.BoundID {
				return &s, nil
			}
		}
	}

	if local.Number != nil {
		for _, s := range seasons {
			if n, ok := s.Number(); ok && n == *local.Number {
				return &s, nil
			}
		}
	}

	logger.FromCtx(ctx).Debugw("no catalog season matches", zap.Int("series_id", seriesID), zap.Int("seasons", len(seasons)))
	return nil, ErrNoMatch
}
