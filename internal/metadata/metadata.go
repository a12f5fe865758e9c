// Package metadata implements best-effort extraction of a track's
// display name, artist, album and similar optional fields. A missing
// or unreadable tag is not an error — it silently degrades to the
// filename fallback in fallback.go.
package metadata

import (
	"os"
	"strconv"

	"github.com/dhowden/tag"
)

// Info is the optional, opaque metadata extracted for one track.
type Info struct {
	Title      string
	Artist     string
	Album      string
	Publisher  string
	PublicTime string
}

// Extract reads embedded tags from path. On any failure (missing tags,
// unsupported container, corrupt frame) it falls back to filename
// heuristics rather than returning an error.
func Extract(path string) Info {
	info := readTags(path)

	if info.Title == "" || info.Artist == "" {
		fallbackTitle, fallbackArtist := FilenameFallback(path)
		if info.Title == "" {
			info.Title = fallbackTitle
		}
		if info.Artist == "" {
			info.Artist = fallbackArtist
		}
	}

	return info
}

func readTags(path string) Info {
	f, err := os.Open(path)
	if err != nil {
		return Info{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Info{}
	}

	year := ""
	if m.Year() != 0 {
		year = strconv.Itoa(m.Year())
	}

	return Info{
		Title:      m.Title(),
		Artist:     m.Artist(),
		Album:      m.Album(),
		Publisher:  "",
		PublicTime: year,
	}
}
