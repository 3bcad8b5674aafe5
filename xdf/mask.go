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

// maskFor computes a ZAxis Math's claimed-cell mask, flattened row-major,
// from its tag (spec.md §4.5).
func maskFor(m *Math, rows, cols int) []bool {
	mask := make([]bool, rows*cols)
	switch m.Tag {
	case TagGlobal:
		for i := range mask {
			mask[i] = true
		}
	case TagRow:
		for c := 0; c < cols; c++ {
			mask[m.Row*cols+c] = true
		}
	case TagColumn:
		for r := 0; r < rows; r++ {
			mask[r*cols+m.Col] = true
		}
	case TagCell:
		mask[m.Row*cols+m.Col] = true
	}
	return mask
}

// unionMasks unions the masks of every Math in every group, or nil if none
// claim any cell. Used to compute, for a Math in priority group g, the set
// of cells already spoken for by a strictly higher-priority group (passed
// as groups[g+1:]) — the "E" term in spec.md §4.5's forward kernel. The
// highest-priority group (Cell) is always called with an empty groups
// slice, so E comes back nil and every claimed cell of a Cell Math wins
// unconditionally, matching the kernel's explicit "ignore E" instruction
// for that group without a separate code path.
func unionMasks(groups [][]*Math, rows, cols int) []bool {
	var out []bool
	for _, group := range groups {
		for _, m := range group {
			if out == nil {
				out = make([]bool, rows*cols)
			}
			for i, claimed := range maskFor(m, rows, cols) {
				if claimed {
					out[i] = true
				}
			}
		}
	}
	return out
}

// highestPriorityEquation returns the Math with the highest-priority tag
// among those whose mask covers (row, col), or nil if none do (spec.md
// §8's "Table priority" property).
func highestPriorityEquation(maths []*Math, row, col, rows, cols int) *Math {
	var best *Math
	bestPriority := -1
	idx := row*cols + col
	for _, m := range maths {
		if !maskFor(m, rows, cols)[idx] {
			continue
		}
		if p := int(m.Tag); p > bestPriority {
			bestPriority, best = p, m
		}
	}
	return best
}
