package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/pagination"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage"
	"github.com/gorilla/mux"
)

type ResolveSeriesRequest struct {
	Name    string `json:"name" validate:"required_without=Folder"`
	Folder  string `json:"folder"`
	Year    *int   `json:"year,omitempty" validate:"omitempty,gte=1800,lte=2200"`
	BoundID *int   `json:"boundId,omitempty" validate:"omitempty,gt=0"`
}

type ResolveSeasonRequest struct {
	SeriesID int  `json:"seriesId" validate:"required,gt=0"`
	Number   *int `json:"number,omitempty" validate:"omitempty,gte=0"`
	BoundID  *int `json:"boundId,omitempty" validate:"omitempty,gt=0"`
}

type ResolveEpisodeRequest struct {
	SeriesID int    `json:"seriesId" validate:"required,gt=0"`
	Path     string `json:"path" validate:"required"`
	Season   *int   `json:"season,omitempty" validate:"omitempty,gte=0"`
	Episode  *int   `json:"episode,omitempty" validate:"omitempty,gte=0"`
}

// SearchSeries ranks catalog series against the name query parameter
func (s Server) SearchSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if strings.TrimSpace(name) == "" {
			handleError(w, r, "invalid search", fmt.Errorf("%w: name is required", errBadRequest))
			return
		}

		year, err := optionalInt(r, "year")
		if err != nil {
			handleError(w, r, "invalid search", err)
			return
		}

		candidates, err := s.manager.SearchSeries(r.Context(), name, year)
		if err != nil {
			handleError(w, r, "failed to search series", err)
			return
		}

		respond(w, r, GenericResponse{Response: candidates})
	}
}

// ResolveSeries resolves a library series, validating its bound ID when one is given.
// A year tag at the end of the folder name is used when no year is given.
func (s Server) ResolveSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResolveSeriesRequest
		if err := s.decode(r, &req); err != nil {
			handleError(w, r, "invalid resolve series request", err)
			return
		}

		folder, year := req.Folder, req.Year
		if folder != "" {
			var folderYear *int
			folder, folderYear = library.SplitYear(folder)
			if year == nil {
				year = folderYear
			}
		}

		name := req.Name
		if strings.TrimSpace(name) == "" {
			name = folder
		}

		res, err := s.manager.ResolveSeries(r.Context(), resolve.LocalSeries{
			Name:    name,
			Folder:  folder,
			Year:    year,
			BoundID: req.BoundID,
		})
		if err != nil {
			handleError(w, r, "failed to resolve series", err)
			return
		}

		respond(w, r, GenericResponse{Response: res})
	}
}

func (s Server) GetSeries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			handleError(w, r, "invalid series id", fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}

		series, err := s.manager.GetSeries(r.Context(), id)
		if err != nil {
			handleError(w, r, "failed to get series", err)
			return
		}

		respond(w, r, GenericResponse{Response: series})
	}
}

func (s Server) ResolveSeason() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResolveSeasonRequest
		if err := s.decode(r, &req); err != nil {
			handleError(w, r, "invalid resolve season request", err)
			return
		}

		season, err := s.manager.ResolveSeason(r.Context(), req.SeriesID, resolve.LocalSeason{
			Number:  req.Number,
			BoundID: req.BoundID,
		})
		if err != nil {
			handleError(w, r, "failed to resolve season", err)
			return
		}

		respond(w, r, GenericResponse{Response: season})
	}
}

// ResolveEpisode resolves an episode file. Missing season and episode numbers are read from the path.
func (s Server) ResolveEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResolveEpisodeRequest
		if err := s.decode(r, &req); err != nil {
			handleError(w, r, "invalid resolve episode request", err)
			return
		}

		parsed := library.ParseEpisode(strings.ReplaceAll(req.Path, `\`, "/"))
		local := resolve.LocalEpisode{
			Path:    req.Path,
			Season:  req.Season,
			Episode: req.Episode,
		}
		if local.Season == nil {
			local.Season = parsed.Season
		}
		if local.Episode == nil {
			local.Episode = parsed.Episode
		}

		match, err := s.manager.ResolveEpisode(r.Context(), req.SeriesID, local)
		if err != nil {
			handleError(w, r, "failed to resolve episode", err)
			return
		}

		respond(w, r, GenericResponse{Response: match})
	}
}

// ListTVShows lists the series folders of the library
func (s Server) ListTVShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := s.manager.ListTVInLibrary(r.Context())
		if err != nil {
			handleError(w, r, "failed to list shows", err)
			return
		}

		respond(w, r, GenericResponse{Response: series})
	}
}

// ListBindings lists stored bindings, filtered by the kind query parameter and paginated
func (s Server) ListBindings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			handleError(w, r, "invalid pagination", err)
			return
		}

		kind := storage.BindingKind(r.URL.Query().Get("kind"))
		if kind != "" && !kind.Valid() {
			handleError(w, r, "invalid binding kind", fmt.Errorf("%w: unknown kind %q", errBadRequest, kind))
			return
		}

		bindings, err := s.manager.ListBindings(r.Context(), kind)
		if err != nil {
			handleError(w, r, "failed to list bindings", err)
			return
		}

		page, meta := pagination.Apply(params, bindings)
		respond(w, r, GenericResponse{Response: page, Meta: &meta})
	}
}

// ReconcileLibrary runs a library reconcile and returns its report
func (s Server) ReconcileLibrary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.manager.ReconcileLibrary(r.Context())
		if err != nil {
			handleError(w, r, "failed to reconcile library", err)
			return
		}

		respond(w, r, GenericResponse{Response: report})
	}
}
