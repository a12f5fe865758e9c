package fingerprint

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const logFloor = 1e-10

// Spectrogram turns a single PCM channel into a 2-D grid of
// log-magnitude (dB) values, S[t][f]: one row per time frame, frames
// advancing by cfg.HopSize() samples, each the non-negative half of a
// Hann-windowed real FFT. Frames whose window runs off the end of the
// sample are discarded.
func Spectrogram(samples []float64, cfg Config) [][]float64 {
	window := hannWindow(cfg.WindowSize)
	hop := cfg.HopSize()

	var frames [][]float64
	for start := 0; start+cfg.WindowSize <= len(samples); start += hop {
		windowed := make([]float64, cfg.WindowSize)
		for i := 0; i < cfg.WindowSize; i++ {
			windowed[i] = samples[start+i] * window[i]
		}

		spectrum := fft.FFTReal(windowed)
		bins := cfg.WindowSize/2 + 1

		frame := make([]float64, bins)
		for f := 0; f < bins; f++ {
			mag := cmplx.Abs(spectrum[f])
			db := 10 * math.Log10(math.Max(mag, logFloor))
			if math.IsInf(db, -1) {
				db = 0
			}
			frame[f] = db
		}
		frames = append(frames, frame)
	}

	return frames
}

// hannWindow returns a symmetric Hann analysis window of size n, zero at
// both ends. It is not normalized: its values sum to (n-1)/2.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
