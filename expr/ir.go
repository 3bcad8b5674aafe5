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

import "text/scanner"

// IRNode is a node of the post-parse function-application tree (spec.md
// §4.2): every interior node is a Func, every leaf is a Name or a Literal.
type IRNode interface {
	ir()
}

// Func is an n-ary application of a typed callable to its argument subtrees.
// Head.Fn is nil until the callable is resolved: global built-ins and
// operators are resolved eagerly by Lift, contextual names (CELL, ROW, ...)
// are resolved later by Replace against a per-Math environment.
type Func struct {
	Head Head
	Args []IRNode
	Pos  scanner.Position
}

// Head names a callable and, once resolved, carries it.
type Head struct {
	Name string
	Fn   *Callable
}

// Name is an unresolved identifier: a bound variable, a linked/address
// variable, or (transiently, inside a Func's Head) a contextual built-in
// name awaiting resolution.
type Name struct {
	Token string
	Pos   scanner.Position
}

// Literal is a concrete, already-known value. IsBool only affects printing
// (TRUE/FALSE vs 1/0); evaluation treats both identically.
type Literal struct {
	Value  Value
	IsBool bool
}

func (*Func) ir()    {}
func (*Name) ir()    {}
func (*Literal) ir() {}

// Lift turns a raw parse tree into IR: operator nodes become Func(op, args)
// with the operator eagerly resolved from the global registry, unary minus
// becomes Func(NEG, [x]), and runs of "+"/"-" are flattened into a single
// n-ary SUM node with subtracted terms wrapped in NEG — matching the
// reference implementation's `arithmetic` transformer.
func Lift(n Node, reg map[string]Callable) (IRNode, error) {
	switch t := n.(type) {
	case *NumberLit:
		return &Literal{Value: Scalar(t.Value)}, nil
	case *BoolLit:
		return &Literal{Value: Bool(t.Value), IsBool: true}, nil
	case *Ident:
		return &Name{Token: t.Name, Pos: t.Pos}, nil
	case *UnaryExpr:
		x, err := Lift(t.X, reg)
		if err != nil {
			return nil, err
		}
		fn := reg["NEG"]
		return &Func{Head: Head{Name: "NEG", Fn: &fn}, Args: []IRNode{x}, Pos: t.Pos}, nil
	case *CallExpr:
		args := make([]IRNode, len(t.Args))
		for i, a := range t.Args {
			lifted, err := Lift(a, reg)
			if err != nil {
				return nil, err
			}
			args[i] = lifted
		}
		if fn, ok := reg[t.Name]; ok {
			return &Func{Head: Head{Name: t.Name, Fn: &fn}, Args: args, Pos: t.Pos}, nil
		}
		// Contextual XDF name (or an as-yet-unknown name): left unresolved
		// for Replace to bind against the evaluation environment.
		return &Func{Head: Head{Name: t.Name}, Args: args, Pos: t.Pos}, nil
	case *BinaryExpr:
		return liftBinary(t, reg)
	default:
		return nil, &SyntaxError{Pos: n.Position(), Msg: "unrecognized node in Lift"}
	}
}

// liftBinary flattens chains of "+"/"-" into one SUM node and otherwise
// lifts a binary operator into a plain two-arg Func.
func liftBinary(n *BinaryExpr, reg map[string]Callable) (IRNode, error) {
	if n.Op == "+" || n.Op == "-" {
		terms, negate, err := flattenSum(n, reg)
		if err != nil {
			return nil, err
		}
		args := make([]IRNode, len(terms))
		for i, t := range terms {
			if negate[i] {
				fn := reg["NEG"]
				args[i] = &Func{Head: Head{Name: "NEG", Fn: &fn}, Args: []IRNode{t}, Pos: n.Pos}
			} else {
				args[i] = t
			}
		}
		fn := reg["SUM"]
		return &Func{Head: Head{Name: "SUM", Fn: &fn}, Args: args, Pos: n.Pos}, nil
	}
	x, err := Lift(n.X, reg)
	if err != nil {
		return nil, err
	}
	y, err := Lift(n.Y, reg)
	if err != nil {
		return nil, err
	}
	fn, ok := reg[n.Op]
	if !ok {
		return nil, &SyntaxError{Pos: n.Pos, Msg: "unknown operator " + n.Op}
	}
	return &Func{Head: Head{Name: n.Op, Fn: &fn}, Args: []IRNode{x, y}, Pos: n.Pos}, nil
}

// flattenSum walks a left-leaning chain of +/- BinaryExpr nodes (as produced
// by parseArith's iterative loop) into a flat list of lifted terms plus a
// parallel "should this term be negated" slice.
func flattenSum(n *BinaryExpr, reg map[string]Callable) ([]IRNode, []bool, error) {
	var terms []IRNode
	var negate []bool
	var walk func(node Node, neg bool) error
	walk = func(node Node, neg bool) error {
		if b, ok := node.(*BinaryExpr); ok && (b.Op == "+" || b.Op == "-") {
			if err := walk(b.X, neg); err != nil {
				return err
			}
			rightNeg := neg
			if b.Op == "-" {
				rightNeg = !neg
			}
			return walk(b.Y, rightNeg)
		}
		lifted, err := Lift(node, reg)
		if err != nil {
			return err
		}
		terms = append(terms, lifted)
		negate = append(negate, neg)
		return nil
	}
	if err := walk(n, false); err != nil {
		return nil, nil, err
	}
	return terms, negate, nil
}
