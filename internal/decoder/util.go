package decoder

import (
	"crypto/sha1"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UniqueHash returns the SHA-1 of a file's raw bytes — the content key
// used by the ingest pipeline for at-most-once dedup.
func UniqueHash(path string) ([20]byte, error) {
	var out [20]byte

	f, err := os.Open(path)
	if err != nil {
		return out, err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return out, err
	}

	copy(out[:], h.Sum(nil))
	return out, nil
}

// FoundFile is one match yielded by FindFiles.
type FoundFile struct {
	Path string
	Ext  string
}

// FindFiles recursively walks root and yields every file whose
// extension (case-insensitive, without the leading dot) is in
// extensions.
func FindFiles(root string, extensions []string) ([]FoundFile, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	var found []FoundFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if allowed[ext] {
			found = append(found, FoundFile{Path: path, Ext: ext})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
