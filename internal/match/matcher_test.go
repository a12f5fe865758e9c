package match

import (
	"testing"

	"audioid/internal/model"
	"audioid/internal/store/memory"
)

func TestFindReturnsEmptyLookupForEmptyFingerprint(t *testing.T) {
	s := memory.New()

	lookup, err := Find(s, model.Fingerprint{})
	if err != nil {
		t.Fatal(err)
	}
	if len(lookup.Matches) != 0 || lookup.QueryHashes != 0 {
		t.Fatalf("expected an empty lookup, got %+v", lookup)
	}
}

func TestFindCountsUniqueHashesPerTrack(t *testing.T) {
	s := memory.New()
	id, err := s.InsertTrack(model.Track{Name: "t", TotalHashes: 2})
	if err != nil {
		t.Fatal(err)
	}
	entries := []model.HashEntry{
		{Hash: [10]byte{1}, Offset: 0},
		{Hash: [10]byte{2}, Offset: 10},
	}
	if err := s.InsertHashes(id, entries); err != nil {
		t.Fatal(err)
	}

	query := model.Fingerprint{
		{1}: 0,
		{2}: 10,
		{3}: 99, // not present in store
	}

	lookup, err := Find(s, query)
	if err != nil {
		t.Fatal(err)
	}
	if lookup.QueryHashes != 3 {
		t.Fatalf("expected QueryHashes=3, got %d", lookup.QueryHashes)
	}
	if lookup.TrackCounts[id] != 2 {
		t.Fatalf("expected 2 matched hashes for track, got %d", lookup.TrackCounts[id])
	}
}
