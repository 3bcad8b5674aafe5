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
	"math"

	"github.com/pkg/errors"

	"github.com/tuners/xdfcore/binview"
	"github.com/tuners/xdfcore/expr"
)

// Engine compiles a Math's IR into a callable against a Document's
// resolved parameters and ROM (spec.md §4.4).
type Engine struct {
	doc        *Document
	reg        *expr.Registry
	strictCell bool
}

// NewEngine builds an Engine bound to doc. strictCell selects the
// CELL(i;false) initial-array policy (Open Question decision #1);
// strictTrunc selects the bitwise/shift truncation policy (decision #4).
func NewEngine(doc *Document, strictCell, strictTrunc bool) *Engine {
	return &Engine{
		doc:        doc,
		reg:        expr.NewEvaluationRegistry(expr.StrictTruncation(strictTrunc)),
		strictCell: strictCell,
	}
}

// Registry exposes the built-in table, for callers (e.g. the graph
// builder) that need to Parse/Lift a Math without evaluating it.
func (e *Engine) Registry() map[string]expr.Callable { return e.reg.Funcs }

// Doc returns the owning Document.
func (e *Engine) Doc() *Document { return e.doc }

// Gen returns the cache-invalidation generation counter: a cached
// converted value computed at generation g is stale once Gen() != g.
func (e *Engine) Gen() int { return e.doc.cacheGen }

// Invalidate bumps the generation counter after any ROM write.
func (e *Engine) Invalidate() { e.doc.invalidateCache() }

// EvalContext supplies the context contextual built-ins resolve against.
type EvalContext struct {
	Raw         []float64 // raw memory-mapped values at this host, for CELL(i; true)
	Accumulator []float64 // in-progress converted array; non-nil only inside the Table Kernel
	Rows, Cols  int        // table shape; Cols == 0 for a plain axis/scalar host
}

// Evaluate runs m against x (the bound variable's current value, length N)
// within ctx, returning the converted Value. The result always has length
// N once N > 1: a Math whose output doesn't vary by position (no X/INDEX/
// ROW/COL reference) evaluates to a scalar, which is replicated across the
// host so every caller can index it uniformly.
func (e *Engine) Evaluate(m *Math, x []float64, ctx EvalContext) (expr.Value, error) {
	if m.cycleErr != nil {
		return expr.Value{}, m.cycleErr
	}
	if m.liveErr != nil {
		return expr.Value{}, m.liveErr
	}
	ir, err := m.Parse(e.reg.Funcs)
	if err != nil {
		return expr.Value{}, err
	}
	env := e.buildEnv(m, x, ctx)
	bound := expr.Replace(ir, env)
	n := len(x)

	if idx, ok := expr.LiveCellIndex(bound); ok {
		v, err := e.evaluateCellRewrite(m, bound, idx, n, ctx)
		if err != nil {
			return expr.Value{}, err
		}
		return v, nil
	}

	v, err := expr.Evaluate(bound)
	if err != nil {
		return expr.Value{}, errors.Wrapf(err, "evaluating math %q", m.Source)
	}
	return broadcastToLength(v, n), nil
}

// evaluateCellRewrite implements spec.md's cell-rewriting fixed point for a
// Math with exactly one live CELL(idx; false) reference (CheckLiveCell
// rejects anything with more than one before this is ever reached):
// evaluate once with idx's placeholder seeded from the in-progress array
// (the Table Kernel's accumulator inside a table, the initial fill
// elsewhere), harden the fill to the value observed at idx, then evaluate
// once more so every other position picks up the corrected value. Index
// idx itself keeps the first pass's result — the "mask" that ensures
// further writes to it are ignored. When the Math doesn't vary by position
// at all (no X/INDEX/ROW/COL term), the first pass already is the fixed
// point and is returned broadcast to host length without a second
// evaluation.
func (e *Engine) evaluateCellRewrite(m *Math, bound expr.IRNode, idx, n int, ctx EvalContext) (expr.Value, error) {
	if idx < 0 || idx >= n {
		return expr.Value{}, &expr.TypeError{Op: "CELL", Msg: "index out of range"}
	}
	initialFill := currentArray(ctx, e.initialArray(n))[idx]
	pass1, err := expr.Evaluate(expr.UnbindCell(bound, initialFill))
	if err != nil {
		return expr.Value{}, errors.Wrapf(err, "evaluating math %q", m.Source)
	}
	if pass1.IsScalar() {
		return broadcastToLength(pass1, n), nil
	}
	fill := pass1.Data[idx]
	pass2, err := expr.Evaluate(expr.UnbindCell(bound, fill))
	if err != nil {
		return expr.Value{}, errors.Wrapf(err, "evaluating math %q", m.Source)
	}
	return mergeFrozenIndex(pass1, pass2, idx, n), nil
}

// broadcastToLength replicates a scalar Value to length n, leaving vectors
// (and length-1 hosts) untouched.
func broadcastToLength(v expr.Value, n int) expr.Value {
	if !v.IsScalar() || n <= 1 {
		return v
	}
	out := make([]float64, n)
	f := v.Float()
	for i := range out {
		out[i] = f
	}
	return expr.Vector(out)
}

// mergeFrozenIndex builds the final host-length array for a cell-rewritten
// Math: index idx keeps pass1's value, every other index takes pass2's.
func mergeFrozenIndex(pass1, pass2 expr.Value, idx, n int) expr.Value {
	out := make([]float64, n)
	for i := range out {
		if i == idx {
			out[i] = pass1.Data[idx]
		} else if pass2.IsScalar() {
			out[i] = pass2.Float()
		} else {
			out[i] = pass2.Data[i]
		}
	}
	return expr.Vector(out)
}

func (e *Engine) initialArray(n int) []float64 {
	out := make([]float64, n)
	if e.strictCell {
		for i := range out {
			out[i] = math.NaN()
		}
	}
	return out
}

func (e *Engine) buildEnv(m *Math, x []float64, ctx EvalContext) expr.Env {
	n := len(x)
	values := make(map[string]expr.Value, len(m.Vars))
	for _, v := range m.Vars {
		switch v.Kind {
		case VarBound:
			values[v.Name] = expr.Vector(append([]float64(nil), x...))
		case VarLinked:
			if p, ok := e.doc.Lookup(v.LinkedParamID); ok {
				if lv, err := linkedValue(e, p); err == nil {
					values[v.Name] = lv
				}
			}
		case VarAddress:
			values[v.Name] = expr.Scalar(e.readAddressVar(v))
		}
	}

	initial := e.initialArray(n)
	funcs := map[string]expr.Callable{
		"INDEX": {
			Name: "INDEX", Arity: 0,
			Apply: func([]expr.Value) (expr.Value, error) {
				return expr.Vector(indexRange(n)), nil
			},
		},
		"INDEXES": {
			Name: "INDEXES", Arity: 0,
			Apply: func([]expr.Value) (expr.Value, error) { return expr.Scalar(float64(n)), nil },
		},
		"THIS": {
			Name: "THIS", Arity: 0,
			Apply: func([]expr.Value) (expr.Value, error) {
				return expr.Vector(append([]float64(nil), currentArray(ctx, initial)...)), nil
			},
		},
		"CELL":    e.cellCallable(ctx, initial, n),
		"THAT":    e.thatCallable(),
		"ADDRESS": e.addressCallable(),
	}
	if ctx.Cols > 0 {
		rowIdx, colIdx := gridIndexes(ctx.Rows, ctx.Cols)
		funcs["ROW"] = constVector("ROW", rowIdx)
		funcs["COL"] = constVector("COL", colIdx)
		funcs["ROWS"] = constScalar("ROWS", float64(ctx.Rows))
		funcs["COLS"] = constScalar("COLS", float64(ctx.Cols))
	}
	return expr.Env{Values: values, Funcs: funcs}
}

func currentArray(ctx EvalContext, initial []float64) []float64 {
	if ctx.Accumulator != nil {
		return ctx.Accumulator
	}
	return initial
}

func (e *Engine) cellCallable(ctx EvalContext, initial []float64, n int) expr.Callable {
	return expr.Callable{
		Name: "CELL", Arity: 2,
		Apply: func(args []expr.Value) (expr.Value, error) {
			idx := int(args[0].Float())
			if idx < 0 || idx >= n {
				return expr.Value{}, &expr.TypeError{Op: "CELL", Msg: "index out of range"}
			}
			if args[1].Truthy() {
				if ctx.Raw == nil {
					return expr.Value{}, &SchemaError{Msg: "CELL(i; true) used where no raw array is available"}
				}
				return expr.Scalar(ctx.Raw[idx]), nil
			}
			return expr.Scalar(currentArray(ctx, initial)[idx]), nil
		},
	}
}

func (e *Engine) thatCallable() expr.Callable {
	return expr.Callable{
		Name: "THAT", Arity: 4,
		Apply: func(args []expr.Value) (expr.Value, error) {
			id := hexID(int64(args[0].Float()))
			row := int(args[1].Float())
			col := int(args[2].Float())
			precalc := args[3].Truthy()
			p, ok := e.doc.Lookup(id)
			if !ok {
				return expr.Value{}, &expr.UndefinedName{Name: id}
			}
			v, err := thatValue(e, p, row, col, precalc)
			return expr.Scalar(v), err
		},
	}
}

func (e *Engine) addressCallable() expr.Callable {
	return expr.Callable{
		Name: "ADDRESS", Arity: 4,
		Apply: func(args []expr.Value) (expr.Value, error) {
			addr := int64(args[0].Float())
			bits := int(args[1].Float())
			lsbFirst := args[2].Truthy()
			signed := args[3].Truthy()
			v, err := e.readAbsolute(addr, bits, lsbFirst, signed)
			if err != nil {
				return expr.Value{}, err
			}
			return expr.Scalar(v), nil
		},
	}
}

func (e *Engine) readAddressVar(v Var) float64 {
	bits := v.AddressBits
	if bits == 0 {
		bits = 8
	}
	val, _ := e.readAbsolute(v.AddressOffset, bits, v.AddressLSBFirst, v.AddressSigned)
	return val
}

func (e *Engine) readAbsolute(addr int64, bits int, lsbFirst, signed bool) (float64, error) {
	var flags uint32
	if lsbFirst {
		flags |= binview.FlagLittleEndian
	}
	if signed {
		flags |= binview.FlagSigned
	}
	dtype := binview.NewDType(bits, flags)
	view, err := binview.NewView(e.doc.rom, int(e.doc.BaseOffset()+addr), dtype, 1, 0, 0, 0, false)
	if err != nil {
		return 0, err
	}
	return view.ReadAt(0, 0), nil
}

func indexRange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func gridIndexes(rows, cols int) (row, col []float64) {
	row = make([]float64, rows*cols)
	col = make([]float64, rows*cols)
	k := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			row[k] = float64(r)
			col[k] = float64(c)
			k++
		}
	}
	return row, col
}

func constVector(name string, data []float64) expr.Callable {
	return expr.Callable{Name: name, Arity: 0, Apply: func([]expr.Value) (expr.Value, error) {
		return expr.Vector(append([]float64(nil), data...)), nil
	}}
}

func constScalar(name string, v float64) expr.Callable {
	return expr.Callable{Name: name, Arity: 0, Apply: func([]expr.Value) (expr.Value, error) {
		return expr.Scalar(v), nil
	}}
}
