// Package listen captures microphone input via PortAudio and exposes
// it as a rolling buffer of float64 samples for live recognition.
package listen

import (
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

const maxBufferSeconds = 10

// Recorder records mono audio from the default input device into a
// bounded, goroutine-safe rolling buffer.
type Recorder struct {
	stream     *portaudio.Stream
	sampleRate int

	mu     sync.Mutex
	buffer []float64
}

// NewRecorder initializes PortAudio and prepares a recorder at
// sampleRate. Call Close when done to release PortAudio resources.
func NewRecorder(sampleRate int) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "initializing portaudio")
	}
	return &Recorder{sampleRate: sampleRate}, nil
}

// Start opens the default input device and begins recording.
func (r *Recorder) Start() error {
	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return errors.Wrap(err, "finding default input device")
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(r.sampleRate),
		FramesPerBuffer: 1024,
	}

	stream, err := portaudio.OpenStream(params, r.onAudio)
	if err != nil {
		return errors.Wrap(err, "opening audio stream")
	}
	r.stream = stream

	return errors.Wrap(stream.Start(), "starting audio stream")
}

func (r *Recorder) onAudio(in []float32) {
	if len(in) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range in {
		r.buffer = append(r.buffer, float64(s))
	}

	maxSamples := r.sampleRate * maxBufferSeconds
	if len(r.buffer) > maxSamples {
		drop := len(r.buffer) - maxSamples
		r.buffer = append(r.buffer[:0], r.buffer[drop:]...)
	}
}

// Snapshot returns a copy of the last n seconds recorded so far
// (fewer if the buffer hasn't filled that far yet).
func (r *Recorder) Snapshot(seconds float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := int(seconds * float64(r.sampleRate))
	if want > len(r.buffer) || want <= 0 {
		want = len(r.buffer)
	}

	out := make([]float64, want)
	copy(out, r.buffer[len(r.buffer)-want:])
	return out
}

// Stop stops the stream and closes it.
func (r *Recorder) Stop() error {
	if r.stream == nil {
		return nil
	}
	if err := r.stream.Stop(); err != nil {
		return errors.Wrap(err, "stopping audio stream")
	}
	return errors.Wrap(r.stream.Close(), "closing audio stream")
}

// Close stops the stream if needed and terminates PortAudio.
func (r *Recorder) Close() error {
	_ = r.Stop()
	return errors.Wrap(portaudio.Terminate(), "terminating portaudio")
}
