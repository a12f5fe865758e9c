package match

import (
	"testing"

	"audioid/internal/fingerprint"
	"audioid/internal/model"
	"audioid/internal/store/memory"
)

func seedTrack(t *testing.T, s *memory.Store, name string, hashes map[[10]byte]uint32) uint32 {
	t.Helper()

	id, err := s.InsertTrack(model.Track{Name: name, TotalHashes: len(hashes)})
	if err != nil {
		t.Fatal(err)
	}

	entries := make([]model.HashEntry, 0, len(hashes))
	for h, off := range hashes {
		entries = append(entries, model.HashEntry{Hash: h, Offset: off})
	}
	if err := s.InsertHashes(id, entries); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTrackFingerprinted(id); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestAlignSelfRecognitionScoresOffsetZero(t *testing.T) {
	s := memory.New()
	fp := map[[10]byte]uint32{
		{1}: 0,
		{2}: 10,
		{3}: 20,
		{4}: 30,
	}
	id := seedTrack(t, s, "song", fp)

	lookup, err := Find(s, model.Fingerprint(fp))
	if err != nil {
		t.Fatal(err)
	}

	results, err := Align(s, lookup, fingerprint.DefaultMusicConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Track.ID != id {
		t.Fatalf("expected track %d, got %d", id, results[0].Track.ID)
	}
	if results[0].Offset != 0 {
		t.Fatalf("expected zero offset for a self-query, got %d", results[0].Offset)
	}
	if results[0].InputConfidence != 1.0 {
		t.Fatalf("expected input_confidence 1.0 for full self-match, got %v", results[0].InputConfidence)
	}
}

func TestAlignRecognizesAtNonZeroOffset(t *testing.T) {
	s := memory.New()
	stored := map[[10]byte]uint32{
		{1}: 100,
		{2}: 110,
		{3}: 120,
		{4}: 130,
		{5}: 140,
	}
	id := seedTrack(t, s, "song", stored)

	// query clip starts 50 frames into the track
	query := map[[10]byte]uint32{
		{1}: 50,
		{2}: 60,
		{3}: 70,
		{4}: 80,
		{5}: 90,
	}

	lookup, err := Find(s, model.Fingerprint(query))
	if err != nil {
		t.Fatal(err)
	}
	results, err := Align(s, lookup, fingerprint.DefaultMusicConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Track.ID != id {
		t.Fatalf("expected a single match for track %d, got %+v", id, results)
	}
	if results[0].Offset != 50 {
		t.Fatalf("expected aligned offset 50, got %d", results[0].Offset)
	}
}

func TestAlignReturnsEmptyForNoMatches(t *testing.T) {
	s := memory.New()
	seedTrack(t, s, "song", map[[10]byte]uint32{{1}: 0})

	lookup, err := Find(s, model.Fingerprint{{99}: 0})
	if err != nil {
		t.Fatal(err)
	}
	results, err := Align(s, lookup, fingerprint.DefaultMusicConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for an unmatched query, got %+v", results)
	}
}

func TestAlignLimitsToTopN(t *testing.T) {
	s := memory.New()
	for i := 0; i < 10; i++ {
		seedTrack(t, s, "song", map[[10]byte]uint32{{byte(i), 1}: 0})
	}

	shared := [10]byte{255}
	for i := 0; i < 10; i++ {
		id, _ := s.InsertTrack(model.Track{Name: "shared", TotalHashes: 1})
		_ = s.InsertHashes(id, []model.HashEntry{{Hash: shared, Offset: uint32(i)}})
		_ = s.SetTrackFingerprinted(id)
	}

	lookup, err := Find(s, model.Fingerprint{shared: 0})
	if err != nil {
		t.Fatal(err)
	}
	results, err := Align(s, lookup, fingerprint.DefaultMusicConfig(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected topN=3 results, got %d", len(results))
	}
}

func TestAlignZeroTotalHashesGivesZeroFingerprintedConfidence(t *testing.T) {
	s := memory.New()
	id, err := s.InsertTrack(model.Track{Name: "empty", TotalHashes: 0})
	if err != nil {
		t.Fatal(err)
	}
	hash := [10]byte{7}
	if err := s.InsertHashes(id, []model.HashEntry{{Hash: hash, Offset: 0}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTrackFingerprinted(id); err != nil {
		t.Fatal(err)
	}

	lookup, err := Find(s, model.Fingerprint{hash: 0})
	if err != nil {
		t.Fatal(err)
	}
	results, err := Align(s, lookup, fingerprint.DefaultMusicConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].FingerprintedConfidence != 0 {
		t.Fatalf("expected 0 fingerprinted_confidence when total_hashes is 0, got %v", results[0].FingerprintedConfidence)
	}
}
