// Package match turns a query clip's fingerprint into ranked track
// results: matcher.go performs the stateless hash lookup, aligner.go
// does the temporal-alignment scoring and ranking.
package match

import (
	"audioid/internal/model"
	"audioid/internal/span"
	"audioid/internal/store"
)

// Lookup holds one query's raw match stream: every (track, Δoffset)
// observation the store produced for a query hash, plus how many
// distinct query hashes matched each track at least once.
type Lookup struct {
	Matches     []model.MatchRecord
	TrackCounts map[uint32]int
	QueryHashes int
}

// Find looks up queryFingerprint's hashes in s and returns the raw
// match stream. It performs no ranking — see Align for that.
func Find(s store.Store, queryFingerprint model.Fingerprint) (Lookup, error) {
	sp := span.Start("match.Find")
	defer sp.End()

	if len(queryFingerprint) == 0 {
		return Lookup{TrackCounts: map[uint32]int{}}, nil
	}

	matches, counts, err := s.ReturnMatches(queryFingerprint)
	if err != nil {
		return Lookup{}, err
	}

	return Lookup{
		Matches:     matches,
		TrackCounts: counts,
		QueryHashes: len(queryFingerprint),
	}, nil
}
