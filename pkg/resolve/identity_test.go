package resolve

import (
	"context"
	"testing"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newValidator(c catalog.Catalog) *IdentityValidator {
	return NewIdentityValidator(c, NewSeriesResolver(c, DefaultConfig()))
}

func TestIdentityValidator_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("drift re-resolves with the folder name", func(t *testing.T) {
		cat := snapshotOf(series(1, "One Piece", 1999), series(2, "One Piece Remastered", 2023))

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{
			Name:    "One Piece",
			Folder:  "OnePiece Remastered",
			BoundID: ptr(1),
		})
		require.NoError(t, err)
		assert.True(t, got.Drifted)
		assert.Equal(t, ptr(1), got.PreviousID)
		require.NotNil(t, got.Series)
		assert.Equal(t, 2, got.Series.ID)
	})

	t.Run("consistent binding is kept without searching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := mocks.NewMockCatalog(ctrl)
		cat.EXPECT().GetSeriesByID(gomock.Any(), 1).Return(&catalog.Series{ID: 1, Title: "One Piece"}, nil)

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{
			Name:    "One Piece",
			Folder:  "one  piece",
			BoundID: ptr(1),
		})
		require.NoError(t, err)
		assert.False(t, got.Drifted)
		assert.Nil(t, got.PreviousID)
		assert.Equal(t, 1, got.Series.ID)
	})

	t.Run("declared name alone can drift", func(t *testing.T) {
		cat := snapshotOf(series(1, "Naruto", 2002), series(5, "Bleach", 2004))

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{
			Name:    "Bleach",
			BoundID: ptr(1),
		})
		require.NoError(t, err)
		assert.True(t, got.Drifted)
		assert.Equal(t, 5, got.Series.ID)
	})

	t.Run("bound id missing from catalog", func(t *testing.T) {
		cat := snapshotOf(series(5, "Bleach", 2004))

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{
			Name:    "Bleach",
			Folder:  "Bleach",
			BoundID: ptr(99),
		})
		require.NoError(t, err)
		assert.True(t, got.Drifted)
		assert.Equal(t, 5, got.Series.ID)
	})

	t.Run("drift without a new match", func(t *testing.T) {
		cat := snapshotOf(series(1, "Naruto", 2002))

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{
			Name:    "Naruto",
			Folder:  "Fullmetal Alchemist",
			BoundID: ptr(1),
		})
		assert.ErrorIs(t, err, ErrNoMatch)
		assert.True(t, got.Drifted)
		assert.Equal(t, ptr(1), got.PreviousID)
		assert.Nil(t, got.Series)
	})

	t.Run("unbound series is searched", func(t *testing.T) {
		cat := snapshotOf(series(1, "Naruto", 2002), series(2, "Naruto Shippuden", 2007))

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{Name: "Naruto", Folder: "Naruto", Year: ptr(2002)})
		require.NoError(t, err)
		assert.False(t, got.Drifted)
		assert.Equal(t, 1, got.Series.ID)
	})

	t.Run("catalog error while validating", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := mocks.NewMockCatalog(ctrl)
		cat.EXPECT().GetSeriesByID(gomock.Any(), 1).Return(nil, catalog.ErrUnavailable)

		got, err := newValidator(cat).Resolve(ctx, LocalSeries{Name: "Naruto", BoundID: ptr(1)})
		assert.ErrorIs(t, err, catalog.ErrUnavailable)
		assert.False(t, got.Drifted)
	})
}

func TestConsistent(t *testing.T) {
	onePiece := catalog.Series{ID: 1, Title: "One Piece Kaï"}

	tests := []struct {
		name  string
		local LocalSeries
		want  bool
	}{
		{name: "dotted folder keeps no word breaks", local: LocalSeries{Name: "One Piece Kai", Folder: "One.Piece.Kai"}, want: false},
		{name: "accents and case ignored", local: LocalSeries{Name: "ONE PIECE KAÏ", Folder: "one piece kai"}, want: true},
		{name: "folder differs", local: LocalSeries{Name: "One Piece Kai", Folder: "One Piece Remastered"}, want: false},
		{name: "name differs", local: LocalSeries{Name: "Naruto", Folder: "One Piece Kai"}, want: false},
		{name: "empty folder skipped", local: LocalSeries{Name: "One Piece Kai"}, want: true},
		{name: "nothing to compare", local: LocalSeries{}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Consistent(onePiece, tt.local))
		})
	}
}

func TestConsistent_TitleFallback(t *testing.T) {
	local := LocalSeries{Name: "One Piece Kai", Folder: "One Piece Kai"}

	assert.True(t, Consistent(catalog.Series{ID: 1, TitleForPlex: "One Piece Kai"}, local))
	assert.True(t, Consistent(catalog.Series{ID: 1, Title: "  ", OriginalTitle: "One Piece Kaï"}, local))
	assert.False(t, Consistent(catalog.Series{ID: 1, TitleForPlex: "Naruto Kai"}, local))
	assert.False(t, Consistent(catalog.Series{ID: 1}, local))
}
