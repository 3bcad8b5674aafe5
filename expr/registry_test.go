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

func TestBitwiseStrictTruncation(t *testing.T) {
	reg := NewRegistry(true)
	_, err := reg["&"].Apply([]Value{Scalar(2.5), Scalar(1)})
	if _, ok := err.(*RoundingError); !ok {
		t.Fatalf("expected RoundingError, got %v", err)
	}
}

func TestBitwiseLenientTruncation(t *testing.T) {
	reg := NewRegistry(false)
	v, err := reg["&"].Apply([]Value{Scalar(2.5), Scalar(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// truncate(2.5) = 2, 2 & 3 = 2
	if v.Float() != 2 {
		t.Errorf("got %v, want 2", v.Float())
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		x, d, want float64
	}{
		{0.5, 0, 1},
		{-0.5, 0, -1},
		{1.25, 1, 1.3},
		{1.45, 1, 1.5},
	}
	for _, c := range cases {
		got := roundHalfAwayFromZero(c.x, c.d)
		if got != c.want {
			t.Errorf("round(%v, %v) = %v, want %v", c.x, c.d, got, c.want)
		}
	}
}

func TestBroadcastScalarAgainstVector(t *testing.T) {
	reg := NewRegistry(false)
	v, err := reg["+"].Apply([]Value{Scalar(1), Vector([]float64{1, 2, 3})})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 3, 4}
	for i, x := range want {
		if v.Data[i] != x {
			t.Errorf("index %d: got %v, want %v", i, v.Data[i], x)
		}
	}
}

func TestBroadcastMismatchedShapesErrors(t *testing.T) {
	reg := NewRegistry(false)
	_, err := reg["+"].Apply([]Value{Vector([]float64{1, 2}), Vector([]float64{1, 2, 3})})
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected TypeError, got %v", err)
	}
}
