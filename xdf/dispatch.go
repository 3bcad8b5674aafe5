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
	"fmt"
	"strconv"
	"strings"

	"github.com/tuners/xdfcore/expr"
)

// hexID canonicalizes a numeric unique-id value the way NormalizeHexID
// canonicalizes the definition's textual uniqueid attribute, so a THAT(id;
// ...) call's numeric literal resolves against the same index key.
func hexID(v int64) string { return fmt.Sprintf("0x%X", v) }

// NormalizeHexID canonicalizes a definition's uniqueid/linkobjid hex string
// (with or without a "0x" prefix) to the form every Document index key and
// every THAT(id; ...) literal is compared against.
func NormalizeHexID(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.TrimPrefix(s, "0X")
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return strings.ToUpper(s)
	}
	return hexID(n)
}

// linkedValue is the generalized "current value of the linked parameter"
// spec.md §4.4 step 2 asks for: behavior dispatch by pattern match over
// the Parameter sum type (design notes §9), not an interface method, since
// each kind's natural value has a different shape.
func linkedValue(e *Engine, p Parameter) (expr.Value, error) {
	switch t := p.(type) {
	case *Scalar:
		v, err := t.Value(e)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.Scalar(v), nil
	case *Flag:
		v, err := t.Value(e)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.Bool(v), nil
	case *Function:
		y, err := t.Interpolated(e)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.Vector(y), nil
	case *Table:
		z, err := t.Z(e)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.Matrix(flatten(z), len(z), cols(z)), nil
	default:
		return expr.Value{}, &SchemaError{Msg: "parameter kind " + p.Kind().String() + " has no linked value"}
	}
}

// thatValue implements the supplemented THAT(id; row; col; precalc)
// built-in: a Table's Z cell, a Function's interpolated Y at an index, or
// a Scalar's value, chosen by the referenced parameter's kind.
func thatValue(e *Engine, p Parameter, row, col int, precalc bool) (float64, error) {
	switch t := p.(type) {
	case *Scalar:
		if precalc {
			return t.Raw(e)
		}
		return t.Value(e)
	case *Function:
		y, err := t.Interpolated(e)
		if err != nil {
			return 0, err
		}
		if row < 0 || row >= len(y) {
			return 0, &expr.TypeError{Op: "THAT", Msg: "index out of range"}
		}
		return y[row], nil
	case *Table:
		z, err := t.Z(e)
		if err != nil {
			return 0, err
		}
		if row < 0 || row >= len(z) || col < 0 || col >= len(z[row]) {
			return 0, &expr.TypeError{Op: "THAT", Msg: "index out of range"}
		}
		return z[row][col], nil
	default:
		return 0, &SchemaError{Msg: "THAT: unsupported parameter kind " + p.Kind().String()}
	}
}

func flatten(z [][]float64) []float64 {
	if len(z) == 0 {
		return nil
	}
	out := make([]float64, 0, len(z)*len(z[0]))
	for _, row := range z {
		out = append(out, row...)
	}
	return out
}

func cols(z [][]float64) int {
	if len(z) == 0 {
		return 0
	}
	return len(z[0])
}
