package catalog

import (
	"strings"

	"github.com/oapi-codegen/nullable"
)

// Series is a catalog series record
type Series struct {
	ID            int                        `json:"id"`
	Title         string                     `json:"title"`
	SortTitle     string                     `json:"sort_title,omitempty"`
	OriginalTitle string                     `json:"original_title,omitempty"`
	ShowTitle     string                     `json:"show_title,omitempty"`
	TitleForPlex  string                     `json:"title_for_plex,omitempty"`
	Year          nullable.Nullable[int]     `json:"year,omitempty"`
	Plot          string                     `json:"plot,omitempty"`
	RatingValue   nullable.Nullable[float64] `json:"rating_value,omitempty"`
	RatingVotes   nullable.Nullable[int]     `json:"rating_votes,omitempty"`
	RatingName    string                     `json:"rating_name,omitempty"`
	Mpaa          string                     `json:"mpaa,omitempty"`
	Premiered     string                     `json:"premiered,omitempty"`
	Studio        string                     `json:"studio,omitempty"`
	Country       string                     `json:"country,omitempty"`
	Genres        string                     `json:"genres,omitempty"`
	BannerImage   string                     `json:"banner_image,omitempty"`
	FanartImage   string                     `json:"fanart_image,omitempty"`
	LogoImage     string                     `json:"logo_image,omitempty"`
	PosterImage   string                     `json:"poster_image,omitempty"`
	ThemeMusic    string                     `json:"theme_music,omitempty"`
	Status        string                     `json:"status,omitempty"`
	Tagline       string                     `json:"tagline,omitempty"`
	ImdbID        FlexString                 `json:"imdb_id"`
	TmdbID        FlexString                 `json:"tmdb_id"`
	TvdbID        FlexString                 `json:"tvdb_id"`
}

// Titles returns the title, display title and original title in that order
func (s Series) Titles() []string {
	return []string{s.Title, s.TitleForPlex, s.OriginalTitle}
}

// ReleaseYear returns the year of the series if the catalog knows it
func (s Series) ReleaseYear() (int, bool) {
	return value(s.Year)
}

// GenreList splits the comma separated genres
func (s Series) GenreList() []string {
	var genres []string
	for _, g := range strings.Split(s.Genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// Season is a catalog season record
type Season struct {
	ID           int                    `json:"id"`
	SeriesID     FlexString             `json:"serie_id"`
	SeasonNumber nullable.Nullable[int] `json:"season_number,omitempty"`
	Title        string                 `json:"title,omitempty"`
	SortTitle    string                 `json:"sort_title,omitempty"`
	Plot         string                 `json:"plot,omitempty"`
	Premiered    string                 `json:"premiered,omitempty"`
	PosterImage  string                 `json:"poster_image,omitempty"`
	FanartImage  string                 `json:"fanart_image,omitempty"`
	Year         nullable.Nullable[int] `json:"year,omitempty"`
	ImdbID       FlexString             `json:"imdb_id"`
	TmdbID       FlexString             `json:"tmdb_id"`
	TvdbID       FlexString             `json:"tvdb_id"`
}

func (s Season) Number() (int, bool) {
	return value(s.SeasonNumber)
}

func (s Season) ReleaseYear() (int, bool) {
	return value(s.Year)
}

// Episode is a catalog episode record. DisplayEpisode and DisplaySeason are the numbers shown to
// users and may differ from the explicit numbering.
type Episode struct {
	ID               int                    `json:"id"`
	SeasonID         FlexString             `json:"season_id"`
	EpisodeNumber    nullable.Nullable[int] `json:"episode_number,omitempty"`
	Title            string                 `json:"title,omitempty"`
	Plot             string                 `json:"plot,omitempty"`
	Aired            string                 `json:"aired,omitempty"`
	Mpaa             string                 `json:"mpaa,omitempty"`
	Studio           string                 `json:"studio,omitempty"`
	Duration         nullable.Nullable[int] `json:"duration,omitempty"`
	NfoFilename      string                 `json:"nfo_filename,omitempty"`
	NfoPath          string                 `json:"nfo_path,omitempty"`
	OriginalFilename string                 `json:"original_filename,omitempty"`
	FormattedName    string                 `json:"formatted_name,omitempty"`
	ThumbImage       string                 `json:"thumb_image,omitempty"`
	DisplayEpisode   FlexString             `json:"display_episode"`
	DisplaySeason    FlexString             `json:"display_season"`
}

func (e Episode) Number() (int, bool) {
	return value(e.EpisodeNumber)
}

// Actor is a voice actor credited on a series
type Actor struct {
	ID               int                    `json:"id"`
	Name             string                 `json:"name"`
	Role             string                 `json:"role,omitempty"`
	ThumbURL         string                 `json:"thumb_url,omitempty"`
	ProfileURL       string                 `json:"profile_url,omitempty"`
	TmdbID           FlexString             `json:"tmdb_id"`
	TotalAppearances nullable.Nullable[int] `json:"total_appearances,omitempty"`
}

type seriesPage struct {
	Series []Series `json:"series"`
}

type seasonsResponse struct {
	SerieTitle   string   `json:"serie_title"`
	SeasonsCount int      `json:"seasons_count"`
	Seasons      []Season `json:"seasons"`
}

type episodesResponse struct {
	SerieTitle    string                 `json:"serie_title"`
	SeasonNumber  nullable.Nullable[int] `json:"season_number"`
	EpisodesCount int                    `json:"episodes_count"`
	Episodes      []Episode              `json:"episodes"`
}

type actorsResponse struct {
	ActorsCount int     `json:"actors_count"`
	Actors      []Actor `json:"actors"`
}

func value(n nullable.Nullable[int]) (int, bool) {
	v, err := n.Get()
	if err != nil {
		return 0, false
	}
	return v, true
}
