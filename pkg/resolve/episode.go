package resolve

import (
	"context"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/normalize"
	"go.uber.org/zap"
)

// Tier is the pass that matched an episode
type Tier int

const (
	// TierFilename matched the release file name exactly
	TierFilename Tier = 1
	// TierNumbering matched the declared season and episode numbers
	TierNumbering Tier = 2
)

func (t Tier) String() string {
	switch t {
	case TierFilename:
		return "filename"
	case TierNumbering:
		return "numbering"
	default:
		return "unknown"
	}
}

// EpisodeMatch is a catalog episode with its season and the numbering to report for it.
type EpisodeMatch struct {
	Episode       catalog.Episode `json:"episode"`
	Season        catalog.Season  `json:"season"`
	Tier          Tier            `json:"tier"`
	SeasonNumber  *int            `json:"seasonNumber,omitempty"`
	EpisodeNumber *int            `json:"episodeNumber,omitempty"`
}

// EpisodeResolver finds the catalog episode an episode file refers to
type EpisodeResolver struct {
	catalog catalog.Catalog
}

func NewEpisodeResolver(c catalog.Catalog) *EpisodeResolver {
	return &EpisodeResolver{catalog: c}
}

// Resolve first looks for an episode whose original or nfo file name normalizes to the local file name
// in every season of the series. Only when none does, and local declares both numbers, the episode is
// looked up by season number and episode number.
func (r *EpisodeResolver) Resolve(ctx context.Context, seriesID int, local LocalEpisode) (*EpisodeMatch, error) {
	log := logger.FromCtx(ctx).With(zap.Int("series_id", seriesID), zap.String("path", local.Path))

	seasons, err := r.catalog.ListSeasons(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	if len(seasons) == 0 {
		log.Debugw("series has no seasons")
		return nil, ErrNoMatch
	}

	episodes := make(map[int][]catalog.Episode, len(seasons))
	list := func(season catalog.Season) ([]catalog.Episode, error) {
		if eps, ok := episodes[season.ID]; ok {
			return eps, nil
		}

		eps, err := r.catalog.ListEpisodes(ctx, season.ID)
		if err != nil {
			return nil, err
		}

		episodes[season.ID] = eps
		return eps, nil
	}

	found, err := matchFilename(local.Path, seasons, list)
	if err != nil {
		return nil, err
	}

	if found != nil {
		log.Debugw("episode matched by file name", zap.Int("episode_id", found.Episode.ID))
		return found, nil
	}

	if local.Season != nil && local.Episode != nil {
		found, err = matchNumbering(*local.Season, *local.Episode, seasons, list)
		if err != nil {
			return nil, err
		}

		if found != nil {
			log.Debugw("episode matched by numbering", zap.Int("episode_id", found.Episode.ID))
			return found, nil
		}
	}

	log.Infow("no catalog episode matches file")
	return nil, ErrNoMatch
}

func matchFilename(path string, seasons []catalog.Season, list func(catalog.Season) ([]catalog.Episode, error)) (*EpisodeMatch, error) {
	key := normalize.Filename(normalize.Stem(path))
	if key == "" {
		return nil, nil
	}

	var first *EpisodeMatch
	for _, season := range seasons {
		eps, err := list(season)
		if err != nil {
			return nil, err
		}

		for _, ep := range eps {
			if !sameFile(key, ep) {
				continue
			}

			m := newEpisodeMatch(season, ep, TierFilename)
			if _, ok := ep.Number(); ok {
				return m, nil
			}

			if first == nil {
				first = m
			}
		}
	}

	return first, nil
}

func sameFile(key string, ep catalog.Episode) bool {
	for _, name := range []string{ep.OriginalFilename, ep.NfoFilename} {
		if k := normalize.Filename(normalize.Stem(name)); k != "" && k == key {
			return true
		}
	}
	return false
}

func matchNumbering(seasonNumber, episodeNumber int, seasons []catalog.Season, list func(catalog.Season) ([]catalog.Episode, error)) (*EpisodeMatch, error) {
	for _, season := range seasons {
		if n, ok := season.Number(); !ok || n != seasonNumber {
			continue
		}

		eps, err := list(season)
		if err != nil {
			return nil, err
		}

		for _, ep := range eps {
			if n, ok := ep.Number(); ok && n == episodeNumber {
				return newEpisodeMatch(season, ep, TierNumbering), nil
			}
		}

		for _, ep := range eps {
			if n, ok := ep.DisplayEpisode.Int(); ok && n == episodeNumber {
				return newEpisodeMatch(season, ep, TierNumbering), nil
			}
		}

		return nil, nil
	}

	return nil, nil
}

// newEpisodeMatch applies the numbering policy: explicit numbers win over display numbers, and the
// season number comes from the parent season before the episode's own display season.
func newEpisodeMatch(season catalog.Season, ep catalog.Episode, tier Tier) *EpisodeMatch {
	m := &EpisodeMatch{
		Episode: ep,
		Season:  season,
		Tier:    tier,
	}

	if n, ok := ep.Number(); ok {
		m.EpisodeNumber = &n
	} else if n, ok := ep.DisplayEpisode.Int(); ok {
		m.EpisodeNumber = &n
	}

	if n, ok := season.Number(); ok {
		m.SeasonNumber = &n
	} else if n, ok := ep.DisplaySeason.Int(); ok {
		m.SeasonNumber = &n
	}

	return m
}
