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

package binview

import "fmt"

// BoundsError reports a write whose logical value fell outside the
// representable range of the view's storage dtype. Mask carries one bool per
// written cell, true where that cell's value violated [Lo, Hi], so callers
// can correct exactly the offending positions instead of re-deriving them.
type BoundsError struct {
	Lo, Hi float64
	Values []float64
	Mask   []bool
}

func (e *BoundsError) Error() string {
	n := 0
	for _, v := range e.Mask {
		if v {
			n++
		}
	}
	return fmt.Sprintf("binview: %d value(s) outside representable range [%v, %v]", n, e.Lo, e.Hi)
}

// ShapeError reports a data/shape mismatch between a view and a caller-
// supplied buffer.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string { return "binview: " + e.Msg }

// RangeError reports a view whose address range falls outside its backing
// ROM buffer.
type RangeError struct {
	Offset, Length, RomSize int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("binview: range [%d, %d) outside ROM of size %d", e.Offset, e.Offset+e.Length, e.RomSize)
}
