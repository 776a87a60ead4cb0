package manager

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"go.uber.org/zap"
)

const (
	ProviderFankai = "Fankai"
	ProviderImdb   = "Imdb"
	ProviderTmdb   = "Tmdb"
	ProviderTvdb   = "Tvdb"
)

type SeriesStatus string

const (
	SeriesStatusContinuing SeriesStatus = "Continuing"
	SeriesStatusEnded      SeriesStatus = "Ended"
)

// Person is a credited actor
type Person struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	Type string `json:"type"`
}

// SeriesMetadata is a catalog series projected onto a library series
type SeriesMetadata struct {
	Name            string            `json:"name"`
	OriginalTitle   string            `json:"originalTitle,omitempty"`
	SortName        string            `json:"sortName,omitempty"`
	Overview        string            `json:"overview,omitempty"`
	PremiereDate    *time.Time        `json:"premiereDate,omitempty"`
	ProductionYear  *int              `json:"productionYear,omitempty"`
	OfficialRating  string            `json:"officialRating,omitempty"`
	Studios         []string          `json:"studios,omitempty"`
	Tagline         string            `json:"tagline,omitempty"`
	Status          SeriesStatus      `json:"status,omitempty"`
	CommunityRating *float64          `json:"communityRating,omitempty"`
	Genres          []string          `json:"genres,omitempty"`
	ProviderIDs     map[string]string `json:"providerIds"`
	People          []Person          `json:"people,omitempty"`
	Images          map[string]string `json:"images,omitempty"`
}

type SeasonMetadata struct {
	Name           string            `json:"name"`
	Overview       string            `json:"overview,omitempty"`
	IndexNumber    *int              `json:"indexNumber,omitempty"`
	PremiereDate   *time.Time        `json:"premiereDate,omitempty"`
	ProductionYear *int              `json:"productionYear,omitempty"`
	SortName       string            `json:"sortName,omitempty"`
	ProviderIDs    map[string]string `json:"providerIds"`
	Images         map[string]string `json:"images,omitempty"`
}

type EpisodeMetadata struct {
	Name              string            `json:"name"`
	Overview          string            `json:"overview,omitempty"`
	PremiereDate      *time.Time        `json:"premiereDate,omitempty"`
	IndexNumber       *int              `json:"indexNumber,omitempty"`
	ParentIndexNumber *int              `json:"parentIndexNumber,omitempty"`
	OfficialRating    string            `json:"officialRating,omitempty"`
	Studios           []string          `json:"studios,omitempty"`
	ProviderIDs       map[string]string `json:"providerIds"`
	Images            map[string]string `json:"images,omitempty"`
}

// SeriesMetadata resolves local and projects the matched series with its cast
func (m MediaManager) SeriesMetadata(ctx context.Context, local resolve.LocalSeries) (*SeriesMetadata, error) {
	res, err := m.identity.Resolve(ctx, local)
	if err != nil {
		return nil, err
	}

	actors, err := m.catalog.ListActors(ctx, res.Series.ID)
	if err != nil {
		return nil, err
	}

	meta := ProjectSeries(ctx, *res.Series, actors)
	return &meta, nil
}

func (m MediaManager) SeasonMetadata(ctx context.Context, seriesID int, local resolve.LocalSeason) (*SeasonMetadata, error) {
	season, err := m.seasons.Resolve(ctx, seriesID, local)
	if err != nil {
		return nil, err
	}

	meta := ProjectSeason(ctx, *season)
	return &meta, nil
}

func (m MediaManager) EpisodeMetadata(ctx context.Context, seriesID int, local resolve.LocalEpisode) (*EpisodeMetadata, error) {
	match, err := m.episodes.Resolve(ctx, seriesID, local)
	if err != nil {
		return nil, err
	}

	meta := ProjectEpisode(ctx, *match)
	return &meta, nil
}

// ProjectSeries maps a catalog series onto library metadata. Actors without a name are dropped.
func ProjectSeries(ctx context.Context, s catalog.Series, actors []catalog.Actor) SeriesMetadata {
	meta := SeriesMetadata{
		Name:           s.Title,
		OriginalTitle:  s.OriginalTitle,
		SortName:       s.SortTitle,
		Overview:       s.Plot,
		PremiereDate:   parseDate(ctx, s.Premiered),
		OfficialRating: s.Mpaa,
		Studios:        studios(s.Studio),
		Tagline:        s.Tagline,
		Status:         parseStatus(s.Status),
		Genres:         s.GenreList(),
		ProviderIDs:    providerIDs(s.ID, s.ImdbID, s.TmdbID, s.TvdbID),
		Images: images(map[string]string{
			"poster": s.PosterImage,
			"fanart": s.FanartImage,
			"banner": s.BannerImage,
			"logo":   s.LogoImage,
		}),
	}

	if year, ok := s.ReleaseYear(); ok {
		meta.ProductionYear = &year
	}

	if rating, err := s.RatingValue.Get(); err == nil {
		meta.CommunityRating = &rating
	}

	for _, a := range actors {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		meta.People = append(meta.People, Person{Name: a.Name, Role: a.Role, Type: "Actor"})
	}

	return meta
}

// ProjectSeason maps a catalog season onto library metadata. The production year falls back to the premiere year.
func ProjectSeason(ctx context.Context, s catalog.Season) SeasonMetadata {
	meta := SeasonMetadata{
		Name:         s.Title,
		Overview:     s.Plot,
		PremiereDate: parseDate(ctx, s.Premiered),
		SortName:     s.SortTitle,
		ProviderIDs:  providerIDs(s.ID, s.ImdbID, s.TmdbID, s.TvdbID),
		Images: images(map[string]string{
			"poster": s.PosterImage,
			"fanart": s.FanartImage,
		}),
	}

	if n, ok := s.Number(); ok {
		meta.IndexNumber = &n
	}

	if year, ok := s.ReleaseYear(); ok {
		meta.ProductionYear = &year
	} else if meta.PremiereDate != nil {
		year := meta.PremiereDate.Year()
		meta.ProductionYear = &year
	}

	return meta
}

// ProjectEpisode maps a matched episode onto library metadata using the numbering chosen by the resolver
func ProjectEpisode(ctx context.Context, match resolve.EpisodeMatch) EpisodeMetadata {
	ep := match.Episode
	return EpisodeMetadata{
		Name:              ep.Title,
		Overview:          ep.Plot,
		PremiereDate:      parseDate(ctx, ep.Aired),
		IndexNumber:       match.EpisodeNumber,
		ParentIndexNumber: match.SeasonNumber,
		OfficialRating:    ep.Mpaa,
		Studios:           studios(ep.Studio),
		ProviderIDs:       map[string]string{ProviderFankai: strconv.Itoa(ep.ID)},
		Images:            images(map[string]string{"thumb": ep.ThumbImage}),
	}
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.DateTime}

// parseDate accepts the date formats the catalog uses and drops anything else
func parseDate(ctx context.Context, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	logger.FromCtx(ctx).Warnw("unable to parse date", zap.String("date", s))
	return nil
}

func parseStatus(s string) SeriesStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuing":
		return SeriesStatusContinuing
	case "ended":
		return SeriesStatusEnded
	default:
		return ""
	}
}

func providerIDs(id int, imdb, tmdb, tvdb catalog.FlexString) map[string]string {
	ids := map[string]string{ProviderFankai: strconv.Itoa(id)}
	for name, v := range map[string]catalog.FlexString{ProviderImdb: imdb, ProviderTmdb: tmdb, ProviderTvdb: tvdb} {
		if v.Valid() {
			ids[name] = v.String()
		}
	}
	return ids
}

func studios(s string) []string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return []string{s}
}

func images(urls map[string]string) map[string]string {
	out := make(map[string]string, len(urls))
	for kind, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out[kind] = u
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
