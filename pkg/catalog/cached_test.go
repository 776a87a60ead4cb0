package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCached(t *testing.T) {
	ctx := context.Background()

	t.Run("listing fetched once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockCatalog(ctrl)
		inner.EXPECT().ListSeries(gomock.Any()).Return([]catalog.Series{{ID: 1, Title: "Naruto"}}, nil).Times(1)

		c := catalog.NewCached(inner, time.Hour)
		for range 3 {
			got, err := c.ListSeries(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockCatalog(ctrl)
		gomock.InOrder(
			inner.EXPECT().ListSeasons(gomock.Any(), 1).Return(nil, catalog.ErrUnavailable),
			inner.EXPECT().ListSeasons(gomock.Any(), 1).Return([]catalog.Season{{ID: 10}}, nil),
		)

		c := catalog.NewCached(inner, time.Hour)
		_, err := c.ListSeasons(ctx, 1)
		assert.True(t, errors.Is(err, catalog.ErrUnavailable))

		got, err := c.ListSeasons(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []catalog.Season{{ID: 10}}, got)

		got, err = c.ListSeasons(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing records are cached per key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockCatalog(ctrl)
		inner.EXPECT().GetSeriesByID(gomock.Any(), 5).Return(nil, nil).Times(1)
		inner.EXPECT().GetSeriesByID(gomock.Any(), 6).Return(&catalog.Series{ID: 6}, nil).Times(1)

		c := catalog.NewCached(inner, time.Hour)
		for range 2 {
			missing, err := c.GetSeriesByID(ctx, 5)
			assert.NoError(t, err)
			assert.Nil(t, missing)

			found, err := c.GetSeriesByID(ctx, 6)
			assert.NoError(t, err)
			assert.Equal(t, 6, found.ID)
		}
	})

	t.Run("invalidate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockCatalog(ctrl)
		inner.EXPECT().ListEpisodes(gomock.Any(), 10).Return([]catalog.Episode{{ID: 100}}, nil).Times(2)
		inner.EXPECT().ListActors(gomock.Any(), 1).Return(nil, nil).Times(1)

		c := catalog.NewCached(inner, time.Hour)
		_, err := c.ListEpisodes(ctx, 10)
		require.NoError(t, err)
		_, err = c.ListActors(ctx, 1)
		require.NoError(t, err)
		_, err = c.ListActors(ctx, 1)
		require.NoError(t, err)

		c.Invalidate()
		_, err = c.ListEpisodes(ctx, 10)
		require.NoError(t, err)
	})
}
