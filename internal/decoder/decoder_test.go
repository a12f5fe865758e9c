package decoder

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTestWAV(t *testing.T, path string, sampleRate int, samples []int16) {
	t.Helper()

	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	const bitsPerSample = 16
	const numChannels = 1
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func toneSamples(sampleRate int, freq float64, seconds float64) []int16 {
	n := int(float64(sampleRate) * seconds)
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(0.5 * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

func TestUniqueHashStableForSameBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.wav")
	writeTestWAV(t, path, 8000, toneSamples(8000, 440, 0.1))

	h1, err := UniqueHash(path)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := UniqueHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("expected UniqueHash to be stable across calls on the same file")
	}
}

func TestUniqueHashDiffersForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.wav")
	pathB := filepath.Join(dir, "b.wav")
	writeTestWAV(t, pathA, 8000, toneSamples(8000, 440, 0.1))
	writeTestWAV(t, pathB, 8000, toneSamples(8000, 880, 0.1))

	hA, err := UniqueHash(pathA)
	if err != nil {
		t.Fatal(err)
	}
	hB, err := UniqueHash(pathB)
	if err != nil {
		t.Fatal(err)
	}
	if hA == hB {
		t.Fatal("expected different file contents to hash differently")
	}
}

func TestFindFilesFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"song.wav", "song.mp3", "notes.txt", "SONG2.WAV"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "deep.flac"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindFiles(dir, []string{"wav", ".flac"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 3 {
		t.Fatalf("expected 3 matches (wav, WAV, flac), got %d: %+v", len(found), found)
	}
}

func TestFindFilesEmptyDirReturnsNoFiles(t *testing.T) {
	dir := t.TempDir()
	found, err := FindFiles(dir, []string{"wav"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no matches in an empty directory, got %+v", found)
	}
}

func TestDecodeWAVRoundTripsSampleRateAndChannelLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	const sampleRate = 8000
	samples := toneSamples(sampleRate, 440, 0.25)
	writeTestWAV(t, path, sampleRate, samples)

	result, err := Decode(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.SampleRate != sampleRate {
		t.Fatalf("expected sample rate %d, got %d", sampleRate, result.SampleRate)
	}
	if len(result.Channels) != 1 {
		t.Fatalf("expected 1 channel for mono input, got %d", len(result.Channels))
	}
	if len(result.Channels[0]) != len(samples) {
		t.Fatalf("expected %d decoded samples, got %d", len(samples), len(result.Channels[0]))
	}
}

func TestDecodeRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path, 0); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestDecodeWithLimitSecondsTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.wav")
	const sampleRate = 8000
	samples := toneSamples(sampleRate, 440, 1.0)
	writeTestWAV(t, path, sampleRate, samples)

	result, err := Decode(path, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Channels[0]) != sampleRate/2 {
		t.Fatalf("expected truncation to %d samples, got %d", sampleRate/2, len(result.Channels[0]))
	}
}
