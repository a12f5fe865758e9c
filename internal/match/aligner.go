package match

import (
	"math"
	"sort"

	"audioid/internal/fingerprint"
	"audioid/internal/model"
	"audioid/internal/store"
)

// DefaultTopN is how many ranked results Align returns absent an
// explicit override.
const DefaultTopN = 5

// Result is one ranked track returned by Align.
type Result struct {
	Track model.Track

	Offset        int64 // Δoffset in frames
	OffsetSeconds float64

	InputHashes             int
	FingerprintedHashes     int
	HashesMatched           int
	InputConfidence         float64
	FingerprintedConfidence float64
}

type deltaCount struct {
	delta int64
	count int
}

// Align tallies match multiplicities per (track, Δoffset), picks each
// track's best-aligned Δoffset, ranks tracks by that alignment count
// descending, and resolves metadata for the top topN (or
// DefaultTopN if topN <= 0). cfg supplies the frame-to-seconds
// conversion (window size, overlap, sample rate) used for
// OffsetSeconds.
func Align(s store.Store, lookup Lookup, cfg fingerprint.Config, topN int) ([]Result, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	if len(lookup.Matches) == 0 {
		return nil, nil
	}

	tally := make(map[uint32]map[int64]int)
	for _, m := range lookup.Matches {
		byDelta, ok := tally[m.TrackID]
		if !ok {
			byDelta = make(map[int64]int)
			tally[m.TrackID] = byDelta
		}
		byDelta[m.Delta]++
	}

	best := make(map[uint32]deltaCount, len(tally))
	for trackID, byDelta := range tally {
		best[trackID] = bestDelta(byDelta)
	}

	trackIDs := make([]uint32, 0, len(best))
	for id := range best {
		trackIDs = append(trackIDs, id)
	}
	sort.SliceStable(trackIDs, func(i, j int) bool {
		return best[trackIDs[i]].count > best[trackIDs[j]].count
	})

	if len(trackIDs) > topN {
		trackIDs = trackIDs[:topN]
	}

	tracks, err := s.GetTracksByIDs(trackIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint32]model.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	secondsPerFrame := float64(cfg.HopSize()) / float64(cfg.SampleRate)

	results := make([]Result, 0, len(trackIDs))
	for _, id := range trackIDs {
		track, ok := byID[id]
		if !ok {
			continue
		}
		dc := best[id]
		matched := lookup.TrackCounts[id]

		results = append(results, Result{
			Track:                   track,
			Offset:                  dc.delta,
			OffsetSeconds:           round(float64(dc.delta)*secondsPerFrame, 5),
			InputHashes:             lookup.QueryHashes,
			FingerprintedHashes:     track.TotalHashes,
			HashesMatched:           matched,
			InputConfidence:         round(ratio(matched, lookup.QueryHashes), 2),
			FingerprintedConfidence: round(ratio(matched, track.TotalHashes), 2),
		})
	}

	return results, nil
}

// bestDelta picks the Δoffset with the highest count, breaking ties by
// the smallest Δoffset.
func bestDelta(byDelta map[int64]int) deltaCount {
	var best deltaCount
	first := true
	for delta, count := range byDelta {
		if first || count > best.count || (count == best.count && delta < best.delta) {
			best = deltaCount{delta: delta, count: count}
			first = false
		}
	}
	return best
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
