package library

import (
	"context"
	"io/fs"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
)

var (
	yearSuffixRegex = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)
	seasonDirRegex  = regexp.MustCompile(`(?i)^(?:season|saison)[\s._-]*(\d{1,3})$`)
	specialsRegex   = regexp.MustCompile(`(?i)^(?:specials?|sp[ée]ciaux|films?)$`)
	seasonEpRegex   = regexp.MustCompile(`(?i)\bs(\d{1,3})[\s._-]*e(\d{1,4})\b`)
	crossEpRegex    = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`)
	episodeRegex    = regexp.MustCompile(`(?i)(?:^|[\s._-])(?:episode|ep|e)[\s._-]*(\d{1,4})\b`)
	trailingNumber  = regexp.MustCompile(`[\s._-](\d{1,4})(?:[\s._-]|$)`)
	videoExtensions = []string{".mp4", ".avi", ".mkv", ".m4v", ".iso", ".ts", ".m2ts", ".webm"}
)

// Series is a top level series folder of the TV library
type Series struct {
	// Name is the folder name without its year tag
	Name string `json:"name"`
	// Folder is the folder name as found on disk
	Folder   string        `json:"folder"`
	Year     *int          `json:"year,omitempty"`
	Path     string        `json:"path"`
	Episodes []EpisodeFile `json:"episodes"`
}

// EpisodeFile is a video file found below a series folder
type EpisodeFile struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Season  *int   `json:"season,omitempty"`
	Episode *int   `json:"episode,omitempty"`
	Size    int64  `json:"size"`
}

type Library interface {
	FindSeries(ctx context.Context) ([]Series, error)
}

// TVLibrary reads series folders from a file system laid out as
// <series>/<season>/<episode> or <series>/<episode>
type TVLibrary struct {
	tv fs.FS
}

func New(tv fs.FS) *TVLibrary {
	return &TVLibrary{tv: tv}
}

// FindSeries lists every series folder at the root of the library with the video files it contains
func (l *TVLibrary) FindSeries(ctx context.Context) ([]Series, error) {
	log := logger.FromCtx(ctx)

	entries, err := fs.ReadDir(l.tv, ".")
	if err != nil {
		return nil, err
	}

	series := make([]Series, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name, year := SplitYear(entry.Name())
		s := Series{
			Name:   name,
			Folder: entry.Name(),
			Year:   year,
			Path:   entry.Name(),
		}

		s.Episodes, err = l.findEpisodes(ctx, entry.Name())
		if err != nil {
			return nil, err
		}

		log.Debugw("found series", "folder", s.Folder, "episodes", len(s.Episodes))
		series = append(series, s)
	}

	return series, nil
}

func (l *TVLibrary) findEpisodes(ctx context.Context, root string) ([]EpisodeFile, error) {
	log := logger.FromCtx(ctx)

	episodes := []EpisodeFile{}
	err := fs.WalkDir(l.tv, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// just skip this dir for now if there's an issue
			log.Debugw("skipping unreadable path", "path", p, "error", err)
			return fs.SkipDir
		}

		nesting := strings.Count(p, "/") - strings.Count(root, "/")
		if d.IsDir() {
			if nesting > 1 || (p != root && strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}

		if !isVideoFile(p) {
			return nil
		}

		ep := ParseEpisode(p)
		if info, err := d.Info(); err == nil {
			ep.Size = info.Size()
		}

		episodes = append(episodes, ep)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return episodes, nil
}

// ParseEpisode extracts season and episode numbers from a path relative to the library root.
// Numbers in the file name win over the season folder.
func ParseEpisode(p string) EpisodeFile {
	name := path.Base(p)
	stem := strings.TrimSuffix(name, path.Ext(name))

	ep := EpisodeFile{
		Name:   name,
		Path:   p,
		Season: seasonFromDir(path.Base(path.Dir(p))),
	}

	if m := seasonEpRegex.FindStringSubmatch(stem); m != nil {
		ep.Season = atoi(m[1])
		ep.Episode = atoi(m[2])
		return ep
	}

	if m := crossEpRegex.FindStringSubmatch(stem); m != nil {
		ep.Season = atoi(m[1])
		ep.Episode = atoi(m[2])
		return ep
	}

	if m := episodeRegex.FindStringSubmatch(stem); m != nil {
		ep.Episode = atoi(m[1])
		return ep
	}

	if ep.Season != nil {
		if m := trailingNumber.FindAllStringSubmatch(stem, -1); len(m) > 0 {
			ep.Episode = atoi(m[len(m)-1][1])
		}
	}

	return ep
}

// SplitYear separates a trailing "(YYYY)" tag from a folder name
func SplitYear(folder string) (string, *int) {
	folder = strings.TrimSpace(folder)
	m := yearSuffixRegex.FindStringSubmatch(folder)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return folder, nil
	}

	return strings.TrimSpace(m[1]), atoi(m[2])
}

func seasonFromDir(dir string) *int {
	if m := seasonDirRegex.FindStringSubmatch(dir); m != nil {
		return atoi(m[1])
	}

	if specialsRegex.MatchString(dir) {
		zero := 0
		return &zero
	}

	return nil
}

func isVideoFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}

	return false
}

func atoi(s string) *int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &i
}
