package fingerprint

// Peak is a single constellation point: a time frame and frequency bin
// whose log-magnitude is a strict local maximum over its neighborhood.
type Peak struct {
	Frame int // time-frame index
	Bin   int // frequency-bin index
}

// PickPeaks finds every cell in S that is a strict local maximum over a
// 2-D neighborhood of Chebyshev radius cfg.PeakNeighborhood and whose
// magnitude is at or above cfg.AmpMin dB. Ties (equal magnitude within
// the same neighborhood) are broken in favor of the first occurrence in
// row-major (frame, then bin) order, so each tie cluster yields at most
// one peak.
func PickPeaks(s [][]float64, cfg Config) []Peak {
	if len(s) == 0 {
		return nil
	}
	r := cfg.PeakNeighborhood

	// localMax[t][f] = max(s[t'][f'] for |t'-t|<=r, |f'-f|<=r), computed
	// as two separable 1-D sliding-window maxima (rows, then columns).
	rowMax := slidingMaxRows(s, r)
	neighMax := slidingMaxCols(rowMax, r)

	suppressed := make([][]bool, len(s))
	for t := range suppressed {
		suppressed[t] = make([]bool, len(s[t]))
	}

	var peaks []Peak
	for t := range s {
		for f := range s[t] {
			if suppressed[t][f] {
				continue
			}
			if s[t][f] < cfg.AmpMin {
				continue
			}
			if s[t][f] != neighMax[t][f] {
				continue // a strictly greater neighbor exists
			}

			peaks = append(peaks, Peak{Frame: t, Bin: f})
			suppressTieCluster(s, suppressed, t, f, r)
		}
	}

	return peaks
}

// suppressTieCluster marks every cell of (t, f)'s tie cluster — all
// cells of the same magnitude reachable through chains of equal cells
// each within radius r of the next — so a later row-major scan skips
// them, enforcing "at most one peak per tie cluster".
func suppressTieCluster(s [][]float64, suppressed [][]bool, t, f, r int) {
	v := s[t][f]
	suppressed[t][f] = true
	stack := [][2]int{{t, f}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for tt := max(0, cur[0]-r); tt <= min(len(s)-1, cur[0]+r); tt++ {
			row := s[tt]
			for ff := max(0, cur[1]-r); ff <= min(len(row)-1, cur[1]+r); ff++ {
				if !suppressed[tt][ff] && row[ff] == v {
					suppressed[tt][ff] = true
					stack = append(stack, [2]int{tt, ff})
				}
			}
		}
	}
}

// slidingMaxRows computes, for each cell, the max over a window of
// radius r along the time (row) axis only.
func slidingMaxRows(s [][]float64, r int) [][]float64 {
	ncols := 0
	if len(s) > 0 {
		ncols = len(s[0])
	}
	out := make([][]float64, len(s))
	for t := range s {
		out[t] = make([]float64, ncols)
	}
	for f := 0; f < ncols; f++ {
		col := make([]float64, len(s))
		for t := range s {
			if f < len(s[t]) {
				col[t] = s[t][f]
			}
		}
		windowMax := slidingMax1D(col, r)
		for t := range s {
			out[t][f] = windowMax[t]
		}
	}
	return out
}

// slidingMaxCols computes, for each cell, the max over a window of
// radius r along the frequency (column) axis, on top of a grid already
// maximized along rows — together giving the full 2-D neighborhood max.
func slidingMaxCols(s [][]float64, r int) [][]float64 {
	out := make([][]float64, len(s))
	for t := range s {
		out[t] = slidingMax1D(s[t], r)
	}
	return out
}

// slidingMax1D returns, for every index i, max(x[j]) for j in
// [i-r, i+r] clamped to bounds, using a monotonic deque so the whole
// pass is O(len(x)).
func slidingMax1D(x []float64, r int) []float64 {
	n := len(x)
	out := make([]float64, n)
	deque := make([]int, 0, n)

	push := func(i int) {
		for len(deque) > 0 && x[deque[len(deque)-1]] <= x[i] {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
	}

	// pre-fill the window for i=0 up to index r-1; index i+r is pushed
	// at the start of each iteration
	for j := 0; j < r && j < n; j++ {
		push(j)
	}

	for i := 0; i < n; i++ {
		next := i + r
		if next < n {
			push(next)
		}
		for len(deque) > 0 && deque[0] < i-r {
			deque = deque[1:]
		}
		out[i] = x[deque[0]]
	}

	return out
}
