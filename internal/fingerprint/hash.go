package fingerprint

import (
	"crypto/sha1"
	"fmt"
	"sort"
)

// Hash generates the (hash, anchor-offset) set for one clip's peak
// constellation: peaks are sorted by (frame, bin), each anchor is
// paired with up to cfg.FanValue following peaks within the
// frame-delta gate, and each pair's descriptor is truncated SHA-1.
// The result is deduplicated, since the same (hash, offset) pair can
// arise from more than one peak pair in a dense constellation.
func Hash(peaks []Peak, cfg Config) map[[10]byte]uint32 {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Frame != sorted[j].Frame {
			return sorted[i].Frame < sorted[j].Frame
		}
		return sorted[i].Bin < sorted[j].Bin
	})

	out := make(map[[10]byte]uint32)
	for i, anchor := range sorted {
		limit := i + cfg.FanValue
		if limit >= len(sorted) {
			limit = len(sorted) - 1
		}
		for j := i + 1; j <= limit; j++ {
			target := sorted[j]
			delta := target.Frame - anchor.Frame
			if delta < cfg.MinDeltaFrame || delta > cfg.MaxDeltaFrame {
				continue
			}

			out[addressHash(anchor.Bin, target.Bin, delta)] = uint32(anchor.Frame)
		}
	}

	return out
}

// addressHash computes the 10-byte truncated SHA-1 of the pipe-delimited
// "anchorBin|targetBin|delta" descriptor.
func addressHash(anchorBin, targetBin, delta int) [10]byte {
	descriptor := fmt.Sprintf("%d|%d|%d", anchorBin, targetBin, delta)
	sum := sha1.Sum([]byte(descriptor))

	var truncated [10]byte
	copy(truncated[:], sum[:10])
	return truncated
}
