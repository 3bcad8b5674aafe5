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

import (
	"github.com/pkg/errors"

	"github.com/tuners/xdfcore/expr"
)

// MathTag classifies a ZAxis Math by the mask it claims (spec.md §4.5);
// plain (non-table) Maths are always TagGlobal.
type MathTag int

const (
	TagGlobal MathTag = iota
	TagRow
	TagColumn
	TagCell
)

// Math is a conversion expression: source text, declared variables, and a
// lazily-parsed+lifted IR, cached on first use (spec.md §3).
type Math struct {
	Source string
	Tag    MathTag
	Row    int // 0-indexed; valid for TagRow, TagCell
	Col    int // 0-indexed; valid for TagColumn, TagCell
	Vars   []Var

	ir       expr.IRNode
	liveErr  error // set by (*Document).validate when tolerated
	cycleErr error // set by (*Document).validate when tolerated
}

// Parse lazily parses and lifts the Math's source against reg, caching the
// result. Subsequent calls are free.
func (m *Math) Parse(reg map[string]expr.Callable) (expr.IRNode, error) {
	if m.ir != nil {
		return m.ir, nil
	}
	node, err := expr.Parse(m.Source, m.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing math %q", m.Source)
	}
	ir, err := expr.Lift(node, reg)
	if err != nil {
		return nil, errors.Wrapf(err, "lifting math %q", m.Source)
	}
	m.ir = ir
	return ir, nil
}

// CheckLiveCell enforces spec.md §4.6: a Math with more than one live
// (precalc=false) CELL(...) call has no well-defined fixed point.
func (m *Math) CheckLiveCell(reg map[string]expr.Callable) error {
	ir, err := m.Parse(reg)
	if err != nil {
		return err
	}
	if n := expr.CountLiveCell(ir); n > 1 {
		return &CellEquationError{MathSource: m.Source, Count: n}
	}
	return nil
}

// LinkedNames returns the LinkedParamID of every VarLinked entry, used by
// the Math graph builder.
func (m *Math) LinkedNames() []string {
	var out []string
	for _, v := range m.Vars {
		if v.Kind == VarLinked {
			out = append(out, v.LinkedParamID)
		}
	}
	return out
}
