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
	"strings"
)

// ErrorKind names a class of validator error that callers may choose to
// tolerate via WithTolerated when opening a Document for edit-only use.
type ErrorKind int

const (
	KindMathCycle ErrorKind = iota
	KindAxisCycle
	KindCellEquationError
)

// CycleError is the shared shape of MathCycle and AxisCycle: a cycle found
// in one of the two reference graphs built at load time.
type CycleError struct {
	kind    ErrorKind
	Members []string // uniqueids (Math graph) or parameter ids (Axis graph), in cycle order
	Via     string   // the linking variable/axis name that closed the cycle
	Doc     string   // owning Document path
}

func (e *CycleError) Error() string {
	name := "MathCycle"
	if e.kind == KindAxisCycle {
		name = "AxisCycle"
	}
	return fmt.Sprintf("%s: %s (via %q) in %s", name, strings.Join(e.Members, " -> "), e.Via, e.Doc)
}

// Kind reports which of MathCycle/AxisCycle this error represents.
func (e *CycleError) Kind() ErrorKind { return e.kind }

// CellEquationError reports a Math with more than one live (precalc=false)
// CELL(...) call, which has no well-defined fixed point.
type CellEquationError struct {
	MathSource string
	Count      int
}

func (e *CellEquationError) Error() string {
	return fmt.Sprintf("xdf: equation %q has %d live CELL references, at most 1 is allowed", e.MathSource, e.Count)
}

// UnpatchableError reports a PatchEntry.Remove with no basedata to restore.
type UnpatchableError struct {
	Address int64
}

func (e *UnpatchableError) Error() string {
	return fmt.Sprintf("xdf: patch entry at 0x%X cannot be removed: no basedata recorded", e.Address)
}

// SchemaError reports a structural precondition of the definition document
// (spec §6) that was not met.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "xdf: schema: " + e.Msg }
