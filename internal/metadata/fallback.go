package metadata

import (
	"path/filepath"
	"strings"
)

// FilenameFallback derives a (title, artist) pair from a file's name
// when tags are missing.
//
// The extension-less filename is split on the last " - " separator.
// With a separator present, the left side is the artist and the right
// side is the title — the common "Artist - Title" convention. Without
// one, the whole stem is the title and the artist is "unknown".
func FilenameFallback(path string) (title, artist string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if idx := strings.LastIndex(stem, " - "); idx >= 0 {
		artist = strings.TrimSpace(stem[:idx])
		title = strings.TrimSpace(stem[idx+3:])
		if artist != "" && title != "" {
			return title, artist
		}
	}

	return strings.TrimSpace(stem), "unknown"
}
