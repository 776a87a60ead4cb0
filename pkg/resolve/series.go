package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/match"
	"github.com/Nackophilz/fankai-jellyfin/pkg/normalize"
	"go.uber.org/zap"
)

// Candidate is a catalog series scored against a query
type Candidate struct {
	Series   catalog.Series `json:"series"`
	Distance int            `json:"distance"`
	Score    int            `json:"score"`
}

// SeriesResolver finds the catalog series a local series folder refers to
type SeriesResolver struct {
	catalog catalog.Catalog
	config  Config
	scorer  match.Scorer
}

func NewSeriesResolver(c catalog.Catalog, cfg Config) *SeriesResolver {
	return &SeriesResolver{
		catalog: c,
		config:  cfg,
		scorer:  match.Scorer{PenaltyFactor: cfg.PenaltyFactor},
	}
}

// Resolve returns the series bound to local.BoundID when the catalog still has it, otherwise the best
// scoring candidate for local.Name. ErrNoMatch is returned when nothing is accepted.
func (r *SeriesResolver) Resolve(ctx context.Context, local LocalSeries) (*catalog.Series, error) {
	log := logger.FromCtx(ctx)

	if local.BoundID != nil {
		series, err := r.catalog.GetSeriesByID(ctx, *local.BoundID)
		if err != nil {
			return nil, err
		}

		if series != nil {
			return series, nil
		}

		log.Debugw("bound series not in catalog, searching", zap.Int("series_id", *local.BoundID))
	}

	candidates, err := r.Search(ctx, local.Name, local.Year)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		log.Debugw("no series candidate accepted", zap.String("name", local.Name))
		return nil, ErrNoMatch
	}

	best := candidates[0].Series
	log.Debugw("series resolved",
		zap.String("name", local.Name),
		zap.Int("series_id", best.ID),
		zap.Int("score", candidates[0].Score))

	return &best, nil
}

// Search scores every catalog series against name and returns the accepted candidates, best first.
// Candidates with equal scores keep their catalog order.
func (r *SeriesResolver) Search(ctx context.Context, name string, year *int) ([]Candidate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNoMatch
	}

	query := normalize.Title(name)
	if query == "" {
		return nil, ErrNoMatch
	}

	listing, err := r.catalog.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0)
	for _, series := range listing {
		keys := make([]string, 0, 3)
		for _, title := range series.Titles() {
			keys = append(keys, normalize.Title(title))
		}

		distance, ok := match.Best(query, keys...)
		if !ok {
			continue
		}

		score := r.scorer.Score(distance)
		if score <= r.config.AcceptThreshold {
			continue
		}

		if year != nil {
			if y, ok := series.ReleaseYear(); ok && y == *year {
				score += r.config.YearBonus
			}
		}

		candidates = append(candidates, Candidate{
			Series:   series,
			Distance: distance,
			Score:    score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	logger.FromCtx(ctx).Debugw("scored series",
		zap.String("query", query),
		zap.Int("catalog_size", len(listing)),
		zap.Int("accepted", len(candidates)))

	return candidates, nil
}
