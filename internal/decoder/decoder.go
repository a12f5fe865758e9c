// Package decoder turns a container file into PCM channels plus the
// content hash used for ingest dedup. It is a thin adapter over
// faiface/beep's format-specific streamers; none of the core
// fingerprint/match/align logic imports it directly.
package decoder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Result is one decoded file: its PCM channels (mono or stereo, each a
// full-precision sample stream), the sample rate they were decoded at,
// and the file's content hash.
type Result struct {
	Channels   [][]float64
	SampleRate int
	FileSHA1   [20]byte
}

// Decode reads path, decodes it to PCM using the format implied by its
// extension, and returns one slice per channel. If limitSeconds is
// positive, each channel is truncated to that many seconds.
func Decode(path string, limitSeconds float64) (*Result, error) {
	fileHash, err := UniqueHash(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := decodeByExtension(path, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if c, ok := streamer.(interface{ Close() error }); ok {
		defer c.Close()
	}

	maxSamples := -1
	if limitSeconds > 0 {
		maxSamples = format.SampleRate.N(secondsToDuration(limitSeconds))
	}

	channels := streamToChannels(streamer, format.NumChannels, maxSamples)

	return &Result{
		Channels:   channels,
		SampleRate: int(format.SampleRate),
		FileSHA1:   fileHash,
	}, nil
}

func decodeByExtension(path string, f io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio extension: %s", filepath.Ext(path))
	}
}

// streamToChannels pulls every sample out of streamer and de-interleaves
// it into one []float64 per channel, stopping early at maxSamples per
// channel if maxSamples >= 0.
func streamToChannels(streamer beep.Streamer, numChannels int, maxSamples int) [][]float64 {
	if numChannels < 1 {
		numChannels = 1
	}
	channels := make([][]float64, numChannels)

	const chunkSize = 4096
	buf := make([][2]float64, chunkSize)

	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			if maxSamples >= 0 && len(channels[0]) >= maxSamples {
				return channels
			}
			channels[0] = append(channels[0], buf[i][0])
			if numChannels > 1 {
				channels[1] = append(channels[1], buf[i][1])
			}
		}
		if !ok {
			break
		}
	}

	return channels
}
