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

package expr

// Env binds free Name tokens to already-known values, and unresolved Func
// heads (contextual XDF names) to callables. Both maps may be nil.
type Env struct {
	Values map[string]Value
	Funcs  map[string]Callable
}

// Replace substitutes every Name node present in env.Values with its value,
// and binds the Head of every still-unresolved Func node whose name is
// present in env.Funcs. Names/Funcs absent from the environment are left
// untouched, to be caught by Evaluate as UndefinedName.
func Replace(n IRNode, env Env) IRNode {
	switch t := n.(type) {
	case *Name:
		if v, ok := env.Values[t.Token]; ok {
			return &Literal{Value: v}
		}
		return t
	case *Literal:
		return t
	case *Func:
		newArgs := make([]IRNode, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = Replace(a, env)
		}
		head := t.Head
		if head.Fn == nil {
			if fn, ok := env.Funcs[head.Name]; ok {
				head = Head{Name: head.Name, Fn: &fn}
			}
		}
		return &Func{Head: head, Args: newArgs, Pos: t.Pos}
	default:
		return n
	}
}

// Evaluate walks the tree bottom-up, applying each Func's resolved callable.
// Every Name node still present is an UndefinedName error; every Func with
// an unresolved Head is also an UndefinedName error (a contextual name with
// no environment binding, e.g. CELL used outside a table/axis context).
func Evaluate(n IRNode) (Value, error) {
	switch t := n.(type) {
	case *Literal:
		return t.Value, nil
	case *Name:
		return Value{}, &UndefinedName{Name: t.Token}
	case *Func:
		if t.Head.Fn == nil {
			return Value{}, &UndefinedName{Name: t.Head.Name}
		}
		args := make([]Value, len(t.Args))
		for i, a := range t.Args {
			v, err := Evaluate(a)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		if t.Head.Fn.Arity >= 0 && len(args) != t.Head.Fn.Arity {
			return Value{}, &TypeError{Op: t.Head.Name, Msg: "wrong number of arguments"}
		}
		return t.Head.Fn.Apply(args)
	default:
		return Value{}, &TypeError{Op: "?", Msg: "unrecognized IR node"}
	}
}

// Count returns the number of Func nodes in the tree whose head name equals
// name (case-sensitive; callers normalize beforehand).
func Count(n IRNode, name string) int {
	switch t := n.(type) {
	case *Func:
		c := 0
		if t.Head.Name == name {
			c++
		}
		for _, a := range t.Args {
			c += Count(a, name)
		}
		return c
	default:
		return 0
	}
}

// CountLiveCell counts CELL(...) calls whose second argument is the literal
// boolean FALSE (a "live" cell reference per spec.md §4.2/§4.6 — precalc is
// always a literal in practice, never itself an expression involving other
// CELL calls). A non-literal second argument is treated as live
// (conservatively: anything that isn't statically TRUE precalc); calls
// with fewer than two arguments are not counted.
func CountLiveCell(n IRNode) int {
	switch t := n.(type) {
	case *Func:
		c := 0
		if t.Head.Name == "CELL" && len(t.Args) >= 2 && !isStaticTrue(t.Args[1]) {
			c++
		}
		for _, a := range t.Args {
			c += CountLiveCell(a)
		}
		return c
	default:
		return 0
	}
}

func isStaticTrue(n IRNode) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Value.IsScalar() && lit.Value.Truthy()
}

// UnbindCell rewrites the tree's live CELL(idx; false) call, if any, into a
// Literal holding fill (spec.md §4.2's UnbindCell, detailed in §4.4's cell
// rewriting). The spec's "masked-array placeholder carrying initial, with
// only index i marked as writable fill" collapses to a single frozen
// number here because CheckLiveCell already rejects any Math with more
// than one live CELL call, so there is never more than one node to
// rewrite. Calls with a statically-TRUE precalc argument (raw reads) are
// left untouched.
func UnbindCell(n IRNode, fill float64) IRNode {
	switch t := n.(type) {
	case *Func:
		if t.Head.Name == "CELL" && len(t.Args) >= 2 && !isStaticTrue(t.Args[1]) {
			return &Literal{Value: Scalar(fill)}
		}
		newArgs := make([]IRNode, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = UnbindCell(a, fill)
		}
		return &Func{Head: t.Head, Args: newArgs, Pos: t.Pos}
	default:
		return n
	}
}

// LiveCellIndex returns the literal index argument of the tree's live
// CELL(idx; false) call, if one exists with a literal index (the only form
// spec.md's grammar produces in practice). ok is false when there is no
// live call, or its index is not a literal (e.g. computed via INDEX()),
// in which case the caller falls back to resolving CELL at evaluation time
// instead of applying the two-pass freeze.
func LiveCellIndex(n IRNode) (idx int, ok bool) {
	switch t := n.(type) {
	case *Func:
		if t.Head.Name == "CELL" && len(t.Args) >= 2 && !isStaticTrue(t.Args[1]) {
			if lit, isLit := t.Args[0].(*Literal); isLit && lit.Value.IsScalar() {
				return int(lit.Value.Float()), true
			}
		}
		for _, a := range t.Args {
			if i, found := LiveCellIndex(a); found {
				return i, true
			}
		}
	}
	return 0, false
}
