// Package resolve binds local library items to catalog records.
//
// Series are matched by fuzzy title similarity, episodes by exact release file name first and by
// declared season and episode numbers second. Previously bound series are checked for identity
// drift before being trusted. Resolvers keep no mutable state and can be shared between goroutines;
// persisting the resulting bindings is up to the caller.
package resolve

import (
	"errors"
)

// ErrNoMatch is returned when no catalog record matches the local item. It is an expected outcome
// for files the catalog does not list.
var ErrNoMatch = errors.New("no matching catalog record")

// Config holds the series matching tuning constants.
type Config struct {
	// PenaltyFactor is subtracted from the score for every edit between two titles
	PenaltyFactor int
	// AcceptThreshold is the score a candidate must exceed to be considered
	AcceptThreshold int
	// YearBonus is added to candidates whose year equals the declared year
	YearBonus int
}

// DefaultConfig returns the calibration used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PenaltyFactor:   5,
		AcceptThreshold: 50,
		YearBonus:       20,
	}
}

// LocalSeries holds what the library knows about a series folder.
type LocalSeries struct {
	Name    string
	Folder  string
	Year    *int
	BoundID *int
}

// LocalSeason holds what the library knows about a season folder.
type LocalSeason struct {
	Number  *int
	BoundID *int
}

// LocalEpisode holds what the library knows about an episode file.
type LocalEpisode struct {
	Path    string
	Season  *int
	Episode *int
}
