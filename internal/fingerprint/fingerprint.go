// Package fingerprint implements the extractor half of the pipeline:
// spectrogram, peak picker, and hasher, wired together in Fingerprint.
package fingerprint

import "audioid/internal/span"

// Fingerprint turns one PCM channel into its (hash, anchor-offset) set.
// Offsets are time-frame indices, not seconds — converting to seconds
// is the aligner's job, since it depends on cfg.
func Fingerprint(samples []float64, cfg Config) map[[10]byte]uint32 {
	sp := span.Start("fingerprint.Fingerprint")
	defer sp.End()

	spectrogram := Spectrogram(samples, cfg)
	peaks := PickPeaks(spectrogram, cfg)
	return Hash(peaks, cfg)
}
