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

// Table is a 2-D grid whose Z values are produced by the mask-priority
// conversion kernel over the ZAxis's tagged Maths (spec.md §4.5), with X
// and Y axes of any AxisKind.
type Table struct {
	Info                Meta
	XAxis, YAxis, ZAxis *Axis

	hasCached bool
	cachedGen int
	cachedZ   [][]float64

	cycleErr error // set by (*Document).validate when an axis cycle is tolerated
}

func (t *Table) Meta() *Meta     { return &t.Info }
func (t *Table) Kind() ParamKind { return KindTable }

// X returns the converted X-axis values.
func (t *Table) X(e *Engine) ([]float64, error) { return t.XAxis.ConvertedValues(e) }

// Y returns the converted Y-axis values.
func (t *Table) Y(e *Engine) ([]float64, error) { return t.YAxis.ConvertedValues(e) }

// Z returns the converted table values, shaped [row][col], caching the
// result until the next ROM write.
func (t *Table) Z(e *Engine) ([][]float64, error) {
	if t.cycleErr != nil {
		return nil, t.cycleErr
	}
	if t.hasCached && t.cachedGen == e.Gen() {
		return t.cachedZ, nil
	}
	view, err := t.ZAxis.Data.View(e.Doc().ROM(), e.Doc().BaseOffset())
	if err != nil {
		return nil, err
	}
	rows, cols := view.NumRows(), view.NumCols()
	raw := view.Read()
	acc, err := t.convertForward(e, raw, rows, cols)
	if err != nil {
		return nil, err
	}
	clamp(acc, t.ZAxis.Min, t.ZAxis.Max)
	z := unflatten(acc, rows, cols)
	t.cachedZ, t.hasCached, t.cachedGen = z, true, e.Gen()
	return z, nil
}

// groupByTag buckets the ZAxis's Maths into the four priority groups, in
// ascending priority order (spec.md §4.5: Global < Row < Column < Cell).
func groupByTag(maths []*Math) [][]*Math {
	groups := make([][]*Math, 4)
	for _, m := range maths {
		groups[m.Tag] = append(groups[m.Tag], m)
	}
	return groups
}

// convertForward runs the mask-priority overlay kernel: starting from the
// raw flattened array, each priority group's equations are evaluated in
// turn over the whole accumulator, and written back only at the cells the
// equation's own mask claims that no strictly-higher-priority group also
// claims. Because groups are walked low to high and a group's "higher"
// mask is the union of every group after it, the highest group (Cell)
// is always evaluated against an empty higher-priority mask, so it always
// wins its claimed cells without a separate case.
func (t *Table) convertForward(e *Engine, raw []float64, rows, cols int) ([]float64, error) {
	acc := append([]float64(nil), raw...)
	groups := groupByTag(t.ZAxis.ZMaths)
	for gi, group := range groups {
		if len(group) == 0 {
			continue
		}
		higher := unionMasks(groups[gi+1:], rows, cols)
		for _, m := range group {
			own := maskFor(m, rows, cols)
			out, err := e.Evaluate(m, acc, EvalContext{Raw: raw, Accumulator: acc, Rows: rows, Cols: cols})
			if err != nil {
				return nil, err
			}
			for p := range acc {
				if own[p] && (higher == nil || !higher[p]) {
					acc[p] = out.Data[p]
				}
			}
		}
	}
	return acc, nil
}

// SetCell inverts target through whichever Math owns (row, col) at the
// highest priority (spec.md §8's "Table priority" property), bounds-checks
// the result against the backing dtype, and writes it back.
func (t *Table) SetCell(e *Engine, row, col int, target float64) error {
	view, err := t.ZAxis.Data.View(e.Doc().ROM(), e.Doc().BaseOffset())
	if err != nil {
		return err
	}
	rows, cols := view.NumRows(), view.NumCols()
	raw := view.Read()
	owner := highestPriorityEquation(t.ZAxis.ZMaths, row, col, rows, cols)
	if owner == nil {
		return &SchemaError{Msg: "no equation covers this table cell"}
	}
	idx := row*cols + col
	lo, hi := view.DType.Bounds()
	rawTarget, err := Invert(func(x float64) (float64, error) {
		trial := append([]float64(nil), raw...)
		trial[idx] = x
		out, err := e.Evaluate(owner, trial, EvalContext{Raw: raw, Accumulator: trial, Rows: rows, Cols: cols})
		if err != nil {
			return 0, err
		}
		return out.Data[idx], nil
	}, lo, hi, target)
	if err != nil {
		return err
	}
	if err := view.WriteAtRaw(row, col, rawTarget); err != nil {
		return err
	}
	e.Invalidate()
	return nil
}

func clamp(acc []float64, min, max *float64) {
	for i, v := range acc {
		if min != nil && v < *min {
			acc[i] = *min
		}
		if max != nil && v > *max {
			acc[i] = *max
		}
	}
}

func unflatten(acc []float64, rows, cols int) [][]float64 {
	z := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		z[r] = append([]float64(nil), acc[r*cols:(r+1)*cols]...)
	}
	return z
}
