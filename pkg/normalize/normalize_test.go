package normalize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \t\n ", want: ""},
		{name: "accents", raw: "Été à Noël", want: "ete a noel"},
		{name: "punctuation", raw: "Naruto: Shippûden!", want: "naruto shippuden"},
		{name: "collapses whitespace", raw: "  One   Piece\t\tFilm  ", want: "one piece film"},
		{name: "keeps digits", raw: "Dragon Ball Z Kai (2009)", want: "dragon ball z kai 2009"},
		{name: "apostrophes and hyphens", raw: "L'Attaque des Titans - Final", want: "lattaque des titans final"},
		{name: "non latin letters kept", raw: "Наруто", want: "наруто"},
		{name: "symbols only", raw: "!!!---???", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.raw))
		})
	}
}

func TestTitle_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		once := Title(raw)
		twice := Title(once)
		if once != twice {
			t.Fatalf("Title not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	})
}

func TestTitle_OutputAlphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		got := Title(rapid.String().Draw(t, "raw"))
		if got != strings.TrimSpace(got) {
			t.Fatalf("untrimmed output %q", got)
		}
		if strings.Contains(got, "  ") {
			t.Fatalf("uncollapsed output %q", got)
		}
	})
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "release tags", raw: "My.Show.S01E02.[1080p].BDRip", want: "my show s01e02"},
		{name: "same as plain", raw: "my show s01e02", want: "my show s01e02"},
		{name: "group and parenthesis", raw: "[Fankai] One Piece Kai - 001 (VOSTFR)", want: "one piece kai 001"},
		{name: "tokens are whole words only", raw: "Multiverse.Vfx.Aac", want: "multiverse vfx"},
		{name: "case insensitive tokens", raw: "Naruto.Kai.01.MULTI.x265.HEVC", want: "naruto kai 01"},
		{name: "underscore joined tokens survive", raw: "Naruto_Kai_01_MULTI_x265", want: "naruto kai 01 multi x265"},
		{name: "apostrophes", raw: "L'Attaque_des_Titans--Kai", want: "l attaque des titans kai"},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.raw))
		})
	}
}

func TestFilename_Snapshot(t *testing.T) {
	corpus := []string{
		"One.Piece.Kai.E001.WEBRip.1080p.x264",
		"Dragon Ball Kai - 12 [HDR] (BluRay Remux).mkv",
		"Naruto Kai 05 TrueFrench DTS",
		"Fairy_Tail_Kai_-_03_-_Complete_Uncut",
	}

	lines := make([]string, len(corpus))
	for i, raw := range corpus {
		lines[i] = fmt.Sprintf("%s => %s", raw, Filename(raw))
	}

	snaps.MatchSnapshot(t, strings.Join(lines, "\n"))
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/tv/One Piece Kai/Season 1/One Piece Kai - 01.mkv", want: "One Piece Kai - 01"},
		{path: `C:\media\Naruto Kai\Naruto.Kai.E02.mp4`, want: "Naruto.Kai.E02"},
		{path: "no-extension", want: "no-extension"},
		{path: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.path))
		})
	}
}
