package normalize

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ReleaseTokensVersion is bumped whenever ReleaseTokens changes.
const ReleaseTokensVersion = 1

// ReleaseTokens are release, quality, codec and language tags that Filename
// strips as whole words. Order and content must stay stable across versions.
var ReleaseTokens = []string{
	"1080p", "720p", "480p",
	"multi",
	"x264", "x265", "h264", "h265", "hevc",
	"bdrip", "dvdrip", "webrip", "webdl",
	"vostfr", "vf", "truefrench",
	"aac", "dts", "ac3", "opus", "flac",
	"complete", "uncut",
	"bluray", "hddvd", "remux", "hdr", "sdr",
}

var (
	bracketRegex      = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	releaseTokenRegex = regexp.MustCompile(`(?i)\b(` + quoteAll(ReleaseTokens) + `)\b`)
	separatorRegex    = regexp.MustCompile(`[\s.\-_']+`)
)

// Title reduces a catalog or local title to its comparison key: accents are
// dropped, letters are lowercased and everything but letters, digits and single
// spaces is removed.
func Title(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, strings.ToLower(raw))
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return collapse(b.String())
}

// Filename reduces a release file name to its comparison key. The extension
// must already be removed, see Stem.
func Filename(raw string) string {
	s := strings.ToLower(raw)
	s = bracketRegex.ReplaceAllString(s, " ")
	s = releaseTokenRegex.ReplaceAllString(s, " ")
	s = separatorRegex.ReplaceAllString(s, " ")
	return collapse(s)
}

// Stem returns the base name of p without its extension. Both slash and
// backslash separated paths are accepted since catalog paths come from Windows hosts.
func Stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}

	return strings.TrimSuffix(base, path.Ext(base))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func quoteAll(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}
