package fingerprint

// Config controls the spectrogram, peak-picking and hashing stages.
// Callers may override the defaults below, e.g. for long-form audio
// (see DefaultAudiobookConfig for an alternate preset).
type Config struct {
	SampleRate int // Fs, samples/sec. Default 44100.

	WindowSize int     // FFT window size in samples, power of 2.
	Overlap    float64 // fraction of WindowSize that successive frames overlap.

	PeakNeighborhood int     // Chebyshev radius for local-maximum peak picking.
	AmpMin           float64 // amplitude floor in dB; peaks below this are discarded.

	FanValue      int // max number of target peaks paired with each anchor.
	MinDeltaFrame int // minimum anchor-target frame delta kept by the hasher.
	MaxDeltaFrame int // maximum anchor-target frame delta kept by the hasher.
}

// HopSize returns the number of samples advanced between frames.
func (c Config) HopSize() int {
	return int(float64(c.WindowSize) * (1 - c.Overlap))
}

// DefaultMusicConfig returns the tuned parameters for typical
// music-length recordings.
func DefaultMusicConfig() Config {
	return Config{
		SampleRate:       44100,
		WindowSize:       4096,
		Overlap:          0.5,
		PeakNeighborhood: 20,
		AmpMin:           10,
		FanValue:         15,
		MinDeltaFrame:    0,
		MaxDeltaFrame:    200,
	}
}

// DefaultAudiobookConfig widens the hop and narrows the fan-out for
// long-form speech, trading time resolution for a fingerprint density
// practical to store over multi-hour files.
func DefaultAudiobookConfig() Config {
	cfg := DefaultMusicConfig()
	cfg.WindowSize = 8192
	cfg.Overlap = 0
	cfg.FanValue = 6
	cfg.MaxDeltaFrame = 100
	return cfg
}
