package metadata

import "testing"

func TestFilenameFallbackArtistTitleSeparator(t *testing.T) {
	title, artist := FilenameFallback("/music/Daft Punk - One More Time.mp3")
	if artist != "Daft Punk" || title != "One More Time" {
		t.Fatalf("got artist=%q title=%q", artist, title)
	}
}

func TestFilenameFallbackNoSeparator(t *testing.T) {
	title, artist := FilenameFallback("/music/track07.flac")
	if artist != "unknown" || title != "track07" {
		t.Fatalf("got artist=%q title=%q", artist, title)
	}
}

func TestFilenameFallbackEmptySideFallsThrough(t *testing.T) {
	title, artist := FilenameFallback("/music/ - .wav")
	if artist != "unknown" {
		t.Fatalf("expected unknown artist when both sides are blank, got %q", artist)
	}
	if title == "" {
		t.Fatal("expected a non-empty title fallback")
	}
}
