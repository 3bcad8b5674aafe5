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

// Scalar is a single converted value read from one ROM location (spec.md
// §3/§8 seed scenario 1).
type Scalar struct {
	Info Meta
	Data *EmbeddedData
	Math *Math

	cachedGen int
	cached    float64
	hasCached bool
}

func (s *Scalar) Meta() *Meta     { return &s.Info }
func (s *Scalar) Kind() ParamKind { return KindScalar }

// Raw reads the raw memory-mapped value, before conversion.
func (s *Scalar) Raw(e *Engine) (float64, error) {
	view, err := s.Data.View(e.Doc().ROM(), e.Doc().BaseOffset())
	if err != nil {
		return 0, err
	}
	return view.ReadAt(0, 0), nil
}

// Value returns the converted value, caching it until the next ROM write.
func (s *Scalar) Value(e *Engine) (float64, error) {
	if s.hasCached && s.cachedGen == e.Gen() {
		return s.cached, nil
	}
	raw, err := s.Raw(e)
	if err != nil {
		return 0, err
	}
	v, err := e.Evaluate(s.Math, []float64{raw}, EvalContext{Raw: []float64{raw}})
	if err != nil {
		return 0, err
	}
	s.cached, s.hasCached, s.cachedGen = v.Float(), true, e.Gen()
	return s.cached, nil
}

// SetValue inverts the Math at v to a raw value, bounds-checks it against
// the storage dtype's representable range, and writes it back. A
// BoundsError leaves the ROM untouched (spec.md §7's "Bounds errors on
// writes do not mutate any bytes").
func (s *Scalar) SetValue(e *Engine, v float64) error {
	view, err := s.Data.View(e.Doc().ROM(), e.Doc().BaseOffset())
	if err != nil {
		return err
	}
	lo, hi := view.DType.Bounds()
	raw, err := Invert(func(x float64) (float64, error) {
		out, err := e.Evaluate(s.Math, []float64{x}, EvalContext{Raw: []float64{x}})
		if err != nil {
			return 0, err
		}
		return out.Float(), nil
	}, lo, hi, v)
	if err != nil {
		return err
	}
	if err := view.WriteAtRaw(0, 0, raw); err != nil {
		return err
	}
	e.Invalidate()
	return nil
}
