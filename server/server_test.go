package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Nackophilz/fankai-jellyfin/config"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	catalogMocks "github.com/Nackophilz/fankai-jellyfin/pkg/catalog/mocks"
	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/manager"
	"github.com/Nackophilz/fankai-jellyfin/pkg/pagination"
	fankaiSqlite "github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func testServer(t *testing.T, c catalog.Catalog) http.Handler {
	t.Helper()
	ctx := context.Background()

	store, err := fankaiSqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations(ctx))

	lib := library.New(fstest.MapFS{
		"One Piece Kai (1999)/Season 1/One Piece Kai - 01.mkv": &fstest.MapFile{},
		"One Piece Kai (1999)/Season 1/One Piece Kai - 02.mkv": &fstest.MapFile{},
		"Naruto Kai/Naruto Kai - 01.mkv":                       &fstest.MapFile{},
	})

	m := manager.New(c, lib, store, config.Matching{}, config.Manager{})
	return New(zap.NewNop().Sugar(), m).Handler()
}

func testCatalog() *catalog.Snapshot {
	return catalog.NewSnapshot(
		catalog.SnapshotSeries{
			Series: catalog.Series{ID: 1, Title: "One Piece Kai", Year: nullable.NewNullableWithValue(1999)},
			Seasons: []catalog.SnapshotSeason{{
				Season: catalog.Season{ID: 11, SeasonNumber: nullable.NewNullableWithValue(1)},
				Episodes: []catalog.Episode{
					{ID: 111, EpisodeNumber: nullable.NewNullableWithValue(1), OriginalFilename: "One Piece Kai - 01.mkv"},
					{ID: 112, EpisodeNumber: nullable.NewNullableWithValue(2)},
				},
			}},
		},
		catalog.SnapshotSeries{
			Series: catalog.Series{ID: 2, Title: "Naruto Kai"},
			Seasons: []catalog.SnapshotSeason{{
				Season: catalog.Season{ID: 21, SeasonNumber: nullable.NewNullableWithValue(1)},
				Episodes: []catalog.Episode{
					{ID: 211, EpisodeNumber: nullable.NewNullableWithValue(1), OriginalFilename: "Naruto Kai - 01.mkv"},
				},
			}},
		},
	)
}

type response[T any] struct {
	Error    string           `json:"error"`
	Response T                `json:"response"`
	Meta     *pagination.Meta `json:"meta"`
}

type idOnly struct {
	ID int `json:"id"`
}

func do[T any](t *testing.T, h http.Handler, method, target, body string) (int, response[T]) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "application/json", rr.Header().Get("content-type"))

	var resp response[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return rr.Code, resp
}

func TestServer_Healthz(t *testing.T) {
	h := testServer(t, testCatalog())

	code, resp := do[string](t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Response)
}

func TestServer_SearchSeries(t *testing.T) {
	h := testServer(t, testCatalog())

	type candidate struct {
		Series idOnly `json:"series"`
		Score  int    `json:"score"`
	}

	t.Run("ranked", func(t *testing.T) {
		code, resp := do[[]candidate](t, h, http.MethodGet, "/api/v1/series/search?name=One%20Piece%20Kai&year=1999", "")
		require.Equal(t, http.StatusOK, code)
		require.NotEmpty(t, resp.Response)
		assert.Equal(t, 1, resp.Response[0].Series.ID)
		assert.Equal(t, 120, resp.Response[0].Score)
	})

	t.Run("missing name", func(t *testing.T) {
		code, resp := do[any](t, h, http.MethodGet, "/api/v1/series/search", "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp.Error, "name is required")
	})

	t.Run("invalid year", func(t *testing.T) {
		code, _ := do[any](t, h, http.MethodGet, "/api/v1/series/search?name=naruto&year=abc", "")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestServer_ResolveSeries(t *testing.T) {
	h := testServer(t, testCatalog())

	type resolution struct {
		Series     *idOnly `json:"series"`
		Drifted    bool    `json:"drifted"`
		PreviousID *int    `json:"previousId"`
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantID   int
		drifted  bool
	}{
		{name: "by folder with year tag", body: `{"folder":"One Piece Kai (1999)"}`, wantCode: http.StatusOK, wantID: 1},
		{name: "by name", body: `{"name":"Naruto Kai"}`, wantCode: http.StatusOK, wantID: 2},
		{name: "consistent binding", body: `{"name":"Naruto Kai","boundId":2}`, wantCode: http.StatusOK, wantID: 2},
		{name: "drifted binding", body: `{"name":"Naruto Kai","folder":"Naruto Kai","boundId":1}`, wantCode: http.StatusOK, wantID: 2, drifted: true},
		{name: "no match", body: `{"name":"Completely Unknown Show"}`, wantCode: http.StatusNotFound},
		{name: "missing name and folder", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "invalid json", body: `{"name":`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do[resolution](t, h, http.MethodPost, "/api/v1/series/resolve", tt.body)
			require.Equal(t, tt.wantCode, code, resp.Error)
			if tt.wantCode != http.StatusOK {
				assert.NotEmpty(t, resp.Error)
				return
			}

			require.NotNil(t, resp.Response.Series)
			assert.Equal(t, tt.wantID, resp.Response.Series.ID)
			assert.Equal(t, tt.drifted, resp.Response.Drifted)
		})
	}
}

func TestServer_GetSeries(t *testing.T) {
	h := testServer(t, testCatalog())

	code, resp := do[idOnly](t, h, http.MethodGet, "/api/v1/series/2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, resp.Response.ID)

	code, _ = do[any](t, h, http.MethodGet, "/api/v1/series/404", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_ResolveSeason(t *testing.T) {
	h := testServer(t, testCatalog())

	code, resp := do[idOnly](t, h, http.MethodPost, "/api/v1/seasons/resolve", `{"seriesId":1,"number":1}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 11, resp.Response.ID)

	code, _ = do[any](t, h, http.MethodPost, "/api/v1/seasons/resolve", `{"seriesId":1,"number":7}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do[any](t, h, http.MethodPost, "/api/v1/seasons/resolve", `{"number":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_ResolveEpisode(t *testing.T) {
	h := testServer(t, testCatalog())

	type match struct {
		Episode       idOnly `json:"episode"`
		Tier          int    `json:"tier"`
		SeasonNumber  *int   `json:"seasonNumber"`
		EpisodeNumber *int   `json:"episodeNumber"`
	}

	t.Run("numbers read from path", func(t *testing.T) {
		code, resp := do[match](t, h, http.MethodPost, "/api/v1/episodes/resolve",
			`{"seriesId":1,"path":"One Piece Kai (1999)/Season 1/One Piece Kai - 02.mkv"}`)
		require.Equal(t, http.StatusOK, code, resp.Error)
		assert.Equal(t, 112, resp.Response.Episode.ID)
		assert.Equal(t, 2, resp.Response.Tier)
	})

	t.Run("file name wins", func(t *testing.T) {
		code, resp := do[match](t, h, http.MethodPost, "/api/v1/episodes/resolve",
			`{"seriesId":1,"path":"D:\\anime\\One Piece Kai - 01.mkv","season":1,"episode":2}`)
		require.Equal(t, http.StatusOK, code, resp.Error)
		assert.Equal(t, 111, resp.Response.Episode.ID)
		assert.Equal(t, 1, resp.Response.Tier)
	})

	t.Run("missing path", func(t *testing.T) {
		code, _ := do[any](t, h, http.MethodPost, "/api/v1/episodes/resolve", `{"seriesId":1}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestServer_ReconcileAndListBindings(t *testing.T) {
	h := testServer(t, testCatalog())

	code, report := do[manager.ReconcileReport](t, h, http.MethodPost, "/api/v1/library/reconcile", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, manager.ReconcileReport{Series: 2, SeriesBound: 2, EpisodesBound: 3}, report.Response)

	code, resp := do[[]map[string]any](t, h, http.MethodGet, "/api/v1/bindings?kind=episode&pageSize=2", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Response, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, pagination.Meta{Page: 1, PageSize: 2, TotalItems: 3, TotalPages: 2}, *resp.Meta)

	code, resp = do[[]map[string]any](t, h, http.MethodGet, "/api/v1/bindings", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Response, 6)

	code, _ = do[any](t, h, http.MethodGet, "/api/v1/bindings?kind=movie", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do[any](t, h, http.MethodGet, "/api/v1/bindings?page=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_ListTVShows(t *testing.T) {
	h := testServer(t, testCatalog())

	code, resp := do[[]library.Series](t, h, http.MethodGet, "/api/v1/tv", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Response, 2)
	assert.Equal(t, "Naruto Kai", resp.Response[0].Name)
}

func TestServer_CatalogUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := catalogMocks.NewMockCatalog(ctrl)
	cat.EXPECT().ListSeries(gomock.Any()).Return(nil, fmt.Errorf("%w: status 503", catalog.ErrUnavailable))

	h := testServer(t, cat)

	code, resp := do[any](t, h, http.MethodGet, "/api/v1/series/search?name=naruto", "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, resp.Error, "catalog unavailable")
}
