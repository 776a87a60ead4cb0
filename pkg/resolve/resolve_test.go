package resolve

import (
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/oapi-codegen/nullable"
)

func ptr[T any](v T) *T {
	return &v
}

func series(id int, title string, year int) catalog.Series {
	s := catalog.Series{ID: id, Title: title}
	if year > 0 {
		s.Year = nullable.NewNullableWithValue(year)
	}
	return s
}

func season(id, number int) catalog.Season {
	s := catalog.Season{ID: id}
	if number > 0 {
		s.SeasonNumber = nullable.NewNullableWithValue(number)
	}
	return s
}

func episode(id, number int, original string) catalog.Episode {
	e := catalog.Episode{ID: id, OriginalFilename: original}
	if number > 0 {
		e.EpisodeNumber = nullable.NewNullableWithValue(number)
	}
	return e
}

func snapshotOf(series ...catalog.Series) *catalog.Snapshot {
	entries := make([]catalog.SnapshotSeries, len(series))
	for i, s := range series {
		entries[i] = catalog.SnapshotSeries{Series: s}
	}
	return catalog.NewSnapshot(entries...)
}
