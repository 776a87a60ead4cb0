package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// SnapshotSeries is a series together with its seasons and actors
type SnapshotSeries struct {
	Series
	Seasons []SnapshotSeason `json:"seasons,omitempty"`
	Actors  []Actor          `json:"actors,omitempty"`
}

// SnapshotSeason is a season together with its episodes
type SnapshotSeason struct {
	Season
	Episodes []Episode `json:"episodes,omitempty"`
}

// Snapshot is an in memory Catalog built from records supplied by the caller
type Snapshot struct {
	series []SnapshotSeries
}

func NewSnapshot(series ...SnapshotSeries) *Snapshot {
	return &Snapshot{series: series}
}

// LoadSnapshot decodes a json array of series with nested seasons, episodes and actors
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var series []SnapshotSeries
	if err := json.NewDecoder(r).Decode(&series); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}

	return NewSnapshot(series...), nil
}

func (s *Snapshot) GetSeriesByID(ctx context.Context, id int) (*Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, series := range s.series {
		if series.ID == id {
			found := series.Series
			return &found, nil
		}
	}

	return nil, nil
}

func (s *Snapshot) ListSeries(ctx context.Context) ([]Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listing := make([]Series, len(s.series))
	for i, series := range s.series {
		listing[i] = series.Series
	}

	return listing, nil
}

func (s *Snapshot) ListSeasons(ctx context.Context, seriesID int) ([]Season, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, series := range s.series {
		if series.ID != seriesID {
			continue
		}

		seasons := make([]Season, len(series.Seasons))
		for i, season := range series.Seasons {
			seasons[i] = season.Season
		}
		return seasons, nil
	}

	return nil, nil
}

func (s *Snapshot) ListEpisodes(ctx context.Context, seasonID int) ([]Episode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, series := range s.series {
		for _, season := range series.Seasons {
			if season.ID == seasonID {
				return append([]Episode(nil), season.Episodes...), nil
			}
		}
	}

	return nil, nil
}

func (s *Snapshot) ListActors(ctx context.Context, seriesID int) ([]Actor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, series := range s.series {
		if series.ID == seriesID {
			return append([]Actor(nil), series.Actors...), nil
		}
	}

	return nil, nil
}
