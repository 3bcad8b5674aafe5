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

import "testing"

func mustEval(t *testing.T, src string, env Env) Value {
	t.Helper()
	n, err := Parse(t.Name(), src)
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	reg := NewRegistry(false)
	ir, err := Lift(n, reg)
	if err != nil {
		t.Fatalf("lift: %+v", err)
	}
	ir = Replace(ir, env)
	v, err := Evaluate(ir)
	if err != nil {
		t.Fatalf("evaluate %q: %+v", src, err)
	}
	return v
}

func TestEvaluateArith(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-2-3", 5},
		{"2^3", 1}, // XOR, not exponent
		{"1<<4", 16},
		{"ABS(-5)", 5},
		{"POW(2;10)", 1024},
		{"IF(1;10;20)", 10},
		{"IF(0;10;20)", 20},
		{"MIN(3;1;2)", 1},
		{"MAX(3;1;2)", 3},
	}
	for _, c := range cases {
		v := mustEval(t, c.src, Env{})
		if !v.IsScalar() || v.Float() != c.want {
			t.Errorf("%q: got %v, want %v", c.src, v, c.want)
		}
	}
}

func TestEvaluateFreeVariable(t *testing.T) {
	env := Env{Values: map[string]Value{"x": Scalar(5)}}
	v := mustEval(t, "x*2+1", env)
	if v.Float() != 11 {
		t.Errorf("got %v, want 11", v)
	}
}

func TestEvaluateUndefinedName(t *testing.T) {
	n, err := Parse(t.Name(), "x+1")
	if err != nil {
		t.Fatal(err)
	}
	ir, err := Lift(n, NewRegistry(false))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Evaluate(ir)
	if _, ok := err.(*UndefinedName); !ok {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
}

func TestEvaluateNandNor(t *testing.T) {
	v := mustEval(t, "6!&3", Env{})
	// ^(6 & 3) = ^2 = -3
	if v.Float() != -3 {
		t.Errorf("6!&3 = %v, want -3", v.Float())
	}
}

func TestPrintRoundTrip(t *testing.T) {
	srcs := []string{"2+3*4", "x-1+2", "ABS(-5)", "CELL(1;FALSE)", "TRUE", "a&&b"}
	reg := NewRegistry(false)
	for _, src := range srcs {
		n, err := Parse(t.Name(), src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		ir, err := Lift(n, reg)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		printed := Print(ir)
		n2, err := Parse(t.Name(), printed)
		if err != nil {
			t.Fatalf("%q printed as %q, failed to reparse: %v", src, printed, err)
		}
		ir2, err := Lift(n2, reg)
		if err != nil {
			t.Fatalf("%q: relift: %v", src, err)
		}
		printed2 := Print(ir2)
		if printed != printed2 {
			t.Errorf("%q: not stable under print/reparse/print: %q vs %q", src, printed, printed2)
		}
	}
}

func TestCountLiveCell(t *testing.T) {
	n, err := Parse(t.Name(), "CELL(1;FALSE)+CELL(2;TRUE)+CELL(3;FALSE)")
	if err != nil {
		t.Fatal(err)
	}
	ir, err := Lift(n, NewRegistry(false))
	if err != nil {
		t.Fatal(err)
	}
	if got := CountLiveCell(ir); got != 2 {
		t.Errorf("CountLiveCell = %d, want 2", got)
	}
}
