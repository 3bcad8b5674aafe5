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
	"strconv"

	"github.com/tuners/xdfcore/expr"
)

// AxisKind tags the Axis sum type (spec.md §3).
type AxisKind int

const (
	AxisEmbedded AxisKind = iota
	AxisLabel
	AxisFunctionLinked
	AxisTableLinked
	AxisZ
)

// Axis is one dimension of a Table or Function. Only the fields relevant
// to Kind are populated; this mirrors design notes §9's tagged-sum-type
// guidance rather than splitting into five separate embedded-interface
// types, since every variant is plain data with no behavior of its own.
type Axis struct {
	ID         string // "x", "y", or "z"
	Kind       AxisKind
	IndexCount int

	// AxisEmbedded: reads from ROM through Data, converted by Math.
	Data *EmbeddedData
	Math *Math

	// AxisLabel: explicit literal labels.
	Labels []string

	// AxisFunctionLinked: id of another Function parameter.
	LinkedFunctionID string

	// AxisTableLinked: id of another Table parameter; value is the first
	// column of the referenced table's Z (Open Question decision #3).
	LinkedTableID string

	// AxisZ: the distinguished embedded axis of a Table, aggregating many
	// mask-tagged Maths instead of a single one.
	ZMaths   []*Math
	Min, Max *float64
}

// ConvertedValues resolves this axis's values regardless of its Kind,
// dispatched by pattern match over the Axis sum type (design notes §9).
func (a *Axis) ConvertedValues(e *Engine) ([]float64, error) {
	switch a.Kind {
	case AxisEmbedded:
		view, err := a.Data.View(e.Doc().ROM(), e.Doc().BaseOffset())
		if err != nil {
			return nil, err
		}
		raw := view.Read()
		v, err := e.Evaluate(a.Math, raw, EvalContext{Raw: raw})
		if err != nil {
			return nil, err
		}
		return append([]float64(nil), v.Data...), nil
	case AxisLabel:
		out := make([]float64, len(a.Labels))
		for i, s := range a.Labels {
			f, err := strconv.ParseFloat(s, 64)
			if err == nil {
				out[i] = f
			}
		}
		return out, nil
	case AxisFunctionLinked:
		p, ok := e.Doc().Lookup(a.LinkedFunctionID)
		if !ok {
			return nil, &expr.UndefinedName{Name: a.LinkedFunctionID}
		}
		fn, ok := p.(*Function)
		if !ok {
			return nil, &SchemaError{Msg: "FunctionLinkedAxis " + a.LinkedFunctionID + " does not reference a Function"}
		}
		return fn.Interpolated(e)
	case AxisTableLinked:
		p, ok := e.Doc().Lookup(a.LinkedTableID)
		if !ok {
			return nil, &expr.UndefinedName{Name: a.LinkedTableID}
		}
		t, ok := p.(*Table)
		if !ok {
			return nil, &SchemaError{Msg: "TableLinkedAxis " + a.LinkedTableID + " does not reference a Table"}
		}
		z, err := t.Z(e)
		if err != nil {
			return nil, err
		}
		// Open Question decision #3: always the first column, regardless
		// of which axis id (x/y) does the linking.
		col := make([]float64, len(z))
		for i, row := range z {
			if len(row) > 0 {
				col[i] = row[0]
			}
		}
		return col, nil
	default:
		return nil, &SchemaError{Msg: "axis kind has no convertible values"}
	}
}
