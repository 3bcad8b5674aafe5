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

import "github.com/tuners/xdfcore/binview"

// bisectIterations bounds the numeric inversion's precision: 60 halvings of
// a float64-sized interval is far past the representable precision of any
// dtype this package supports.
const bisectIterations = 60

// Invert numerically inverts f over the raw domain [lo, hi] to find the x
// producing f(x) == target, by bisection (spec.md §4.4 step 5 / §4.5's
// inverse kernel: "obtained numerically by generic function inversion
// across the operative range"). f is assumed monotonic over [lo, hi].
//
// Before inverting, f's own range [f(lo), f(hi)] is checked against target:
// a target outside that logical range raises a *binview.BoundsError"
// instead of silently clamping to the nearest endpoint (spec.md §4.7's
// bounds-on-write rule, reused here since the logical bounds are derived
// the same way: pushing the dtype's raw range through the forward
// function).
func Invert(f func(x float64) (float64, error), lo, hi, target float64) (float64, error) {
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, err
	}
	logicalLo, logicalHi := flo, fhi
	increasing := fhi >= flo
	if !increasing {
		logicalLo, logicalHi = fhi, flo
	}
	if target < logicalLo || target > logicalHi {
		return 0, &binview.BoundsError{
			Lo: logicalLo, Hi: logicalHi,
			Values: []float64{target}, Mask: []bool{true},
		}
	}
	for i := 0; i < bisectIterations; i++ {
		mid := lo + (hi-lo)/2
		fm, err := f(mid)
		if err != nil {
			return 0, err
		}
		if (increasing && fm < target) || (!increasing && fm > target) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + (hi-lo)/2, nil
}
