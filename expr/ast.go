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

// Node is a raw parse-tree node, produced by Parse and consumed by Lift.
// Keeping the parse tree distinct from the IR lets the grammar's surface
// shape (infix operators, unary minus) differ from the function-application
// form the rest of the pipeline operates on.
type Node interface {
	node()
	Position() scanner.Position
}

// BinaryExpr is any two-operand infix expression: arithmetic, comparison,
// logical, shift or bitwise.
type BinaryExpr struct {
	Op   string
	X, Y Node
	Pos  scanner.Position
}

// UnaryExpr is unary minus, the grammar's only prefix operator.
type UnaryExpr struct {
	Op  string
	X   Node
	Pos scanner.Position
}

// CallExpr is NAME "(" args ")", covering both math built-ins (ABS, POW, ...)
// and XDF contextual names (CELL, ROW, THIS, ...). Disambiguating the two is
// Lift's job, not the parser's.
type CallExpr struct {
	Name string
	Args []Node
	Pos  scanner.Position
}

// Ident is a bare identifier: the bound variable, a linked/address variable
// name, or (pre-Lift) a zero-arg contextual name written without parens —
// the grammar requires parens for those, so in practice this is always a
// variable reference.
type Ident struct {
	Name string
	Pos  scanner.Position
}

// NumberLit is a decimal or hex numeric literal.
type NumberLit struct {
	Value float64
	Pos   scanner.Position
}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	Value bool
	Pos   scanner.Position
}

func (*BinaryExpr) node() {}
func (*UnaryExpr) node()  {}
func (*CallExpr) node()   {}
func (*Ident) node()      {}
func (*NumberLit) node()  {}
func (*BoolLit) node()    {}

func (n *BinaryExpr) Position() scanner.Position { return n.Pos }
func (n *UnaryExpr) Position() scanner.Position  { return n.Pos }
func (n *CallExpr) Position() scanner.Position   { return n.Pos }
func (n *Ident) Position() scanner.Position      { return n.Pos }
func (n *NumberLit) Position() scanner.Position  { return n.Pos }
func (n *BoolLit) Position() scanner.Position    { return n.Pos }
