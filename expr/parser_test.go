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

import (
	"testing"

	"github.com/pkg/errors"
)

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	n, err := Parse(t.Name(), src)
	if err != nil {
		t.Fatalf("%+v", errors.Wrapf(err, "parsing %q", src))
	}
	return n
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"42", 42},
		{"0x2A", 42},
		{"3.5", 3.5},
		{"1e2", 100},
	}
	for _, c := range cases {
		n := mustParse(t, c.src)
		lit, ok := n.(*NumberLit)
		if !ok {
			t.Fatalf("%q: expected NumberLit, got %T", c.src, n)
		}
		if lit.Value != c.want {
			t.Errorf("%q: got %v, want %v", c.src, lit.Value, c.want)
		}
	}
}

func TestParseBoolLiterals(t *testing.T) {
	n := mustParse(t, "TRUE")
	if b, ok := n.(*BoolLit); !ok || !b.Value {
		t.Fatalf("expected BoolLit(true), got %#v", n)
	}
	n = mustParse(t, "false")
	if b, ok := n.(*BoolLit); !ok || b.Value {
		t.Fatalf("expected BoolLit(false), got %#v", n)
	}
}

func TestParseArithAssociativity(t *testing.T) {
	// x - 1 + 2 should parse as (x - 1) + 2, i.e. left-associative.
	n := mustParse(t, "x-1+2")
	top, ok := n.(*BinaryExpr)
	if !ok || top.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", n)
	}
	left, ok := top.X.(*BinaryExpr)
	if !ok || left.Op != "-" {
		t.Fatalf("expected left child '-', got %#v", top.X)
	}
}

func TestParseCallSemicolonArgs(t *testing.T) {
	n := mustParse(t, "CELL(1;FALSE)")
	call, ok := n.(*CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %#v", n)
	}
	if call.Name != "CELL" || len(call.Args) != 2 {
		t.Fatalf("got %#v", call)
	}
}

func TestParseCaseInsensitiveFuncName(t *testing.T) {
	n := mustParse(t, "abs(x)")
	call, ok := n.(*CallExpr)
	if !ok || call.Name != "ABS" {
		t.Fatalf("expected uppercased call name, got %#v", n)
	}
}

func TestParseCommaIsNotArgSeparator(t *testing.T) {
	_, err := Parse(t.Name(), "CELL(1,FALSE)")
	if err == nil {
		t.Fatal("expected SyntaxError for comma-separated args")
	}
}

func TestParseNandNor(t *testing.T) {
	n := mustParse(t, "a!&b")
	bin, ok := n.(*BinaryExpr)
	if !ok || bin.Op != "!&" {
		t.Fatalf("got %#v", n)
	}
	n = mustParse(t, "a!|b")
	bin, ok = n.(*BinaryExpr)
	if !ok || bin.Op != "!|" {
		t.Fatalf("got %#v", n)
	}
}

func TestParseSyntaxErrorPosition(t *testing.T) {
	_, err := Parse(t.Name(), "1 + + 2")
	if err == nil {
		t.Fatal("expected error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Pos.Column == 0 {
		t.Errorf("expected a position to be set")
	}
}
