package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `[
  {
    "id": 1,
    "title": "One Piece Kai",
    "year": 2017,
    "seasons": [
      {"id": 10, "serie_id": 1, "season_number": 1, "episodes": [{"id": 100, "season_id": 10, "episode_number": 1}]},
      {"id": 11, "serie_id": 1, "season_number": 2}
    ],
    "actors": [{"id": 5, "name": "Mayumi Tanaka"}]
  },
  {"id": 2, "title": "Naruto Kai"}
]`

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s, err := LoadSnapshot(strings.NewReader(snapshotJSON))
	require.NoError(t, err)

	series, err := s.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "One Piece Kai", series[0].Title)
	assert.Equal(t, "Naruto Kai", series[1].Title)

	got, err := s.GetSeriesByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Naruto Kai", got.Title)

	missing, err := s.GetSeriesByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, missing)

	seasons, err := s.ListSeasons(ctx, 1)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "1", seasons[0].SeriesID.String())

	episodes, err := s.ListEpisodes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, 100, episodes[0].ID)

	empty, err := s.ListEpisodes(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, empty)

	actors, err := s.ListActors(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, actors, 1)
}

func TestSnapshot_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSnapshot().ListSeries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSnapshot_Invalid(t *testing.T) {
	_, err := LoadSnapshot(strings.NewReader(`{"id": 1}`))
	assert.Error(t, err)
}
