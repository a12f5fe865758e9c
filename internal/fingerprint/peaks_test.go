package fingerprint

import "testing"

func TestPickPeaksFindsSingleMaximum(t *testing.T) {
	s := [][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 20, 0, 0},
		{0, 0, 0, 0, 0},
	}
	cfg := Config{PeakNeighborhood: 1, AmpMin: 10}

	peaks := PickPeaks(s, cfg)
	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d: %+v", len(peaks), peaks)
	}
	if peaks[0] != (Peak{Frame: 1, Bin: 2}) {
		t.Fatalf("unexpected peak location: %+v", peaks[0])
	}
}

func TestPickPeaksRespectsAmpMin(t *testing.T) {
	s := [][]float64{
		{0, 0, 0},
		{0, 5, 0},
		{0, 0, 0},
	}
	cfg := Config{PeakNeighborhood: 1, AmpMin: 10}

	peaks := PickPeaks(s, cfg)
	if len(peaks) != 0 {
		t.Fatalf("expected no peaks below AmpMin, got %+v", peaks)
	}
}

func TestPickPeaksTieClusterYieldsOnePeak(t *testing.T) {
	s := [][]float64{
		{20, 20, 20},
		{20, 20, 20},
		{20, 20, 20},
	}
	cfg := Config{PeakNeighborhood: 1, AmpMin: 10}

	peaks := PickPeaks(s, cfg)
	if len(peaks) != 1 {
		t.Fatalf("expected exactly 1 peak in a uniform tie cluster, got %d: %+v", len(peaks), peaks)
	}
	if peaks[0] != (Peak{Frame: 0, Bin: 0}) {
		t.Fatalf("expected row-major first occurrence to win, got %+v", peaks[0])
	}
}

func TestPickPeaksTwoSeparatedMaxima(t *testing.T) {
	s := [][]float64{
		{20, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 20},
	}
	cfg := Config{PeakNeighborhood: 1, AmpMin: 10}

	peaks := PickPeaks(s, cfg)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 separated peaks, got %d: %+v", len(peaks), peaks)
	}
}

func TestSlidingMax1DMatchesBruteForce(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	r := 2

	got := slidingMax1D(x, r)
	for i := range x {
		want := x[i]
		for j := max(0, i-r); j <= min(len(x)-1, i+r); j++ {
			if x[j] > want {
				want = x[j]
			}
		}
		if got[i] != want {
			t.Fatalf("index %d: got %v want %v", i, got[i], want)
		}
	}
}
