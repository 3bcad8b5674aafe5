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

import "math"

// Value is the runtime representation flowing through an evaluated
// expression tree: a scalar or a 1-D/2-D array of float64. Booleans are
// represented as 0/1 the way the TunerPro dialect and its numpy-backed
// reference implementation do.
type Value struct {
	Data  []float64
	Shape []int // nil or empty: scalar; len 1: vector; len 2: rows, cols
}

// Scalar builds a single-number Value.
func Scalar(f float64) Value { return Value{Data: []float64{f}} }

// Bool builds a scalar Value from a boolean, 1.0 for true and 0.0 for false.
func Bool(b bool) Value {
	if b {
		return Scalar(1)
	}
	return Scalar(0)
}

// Vector builds a 1-D Value from data, copying nothing.
func Vector(data []float64) Value { return Value{Data: data, Shape: []int{len(data)}} }

// Matrix builds a 2-D row-major Value.
func Matrix(data []float64, rows, cols int) Value {
	return Value{Data: data, Shape: []int{rows, cols}}
}

// IsScalar reports whether v is a scalar (empty Shape). A length-1 vector
// is not a scalar.
func (v Value) IsScalar() bool { return len(v.Shape) == 0 }

// Float returns the first element, panicking on an empty Value. Used after
// IsScalar (or when the caller otherwise knows v holds one element).
func (v Value) Float() float64 {
	return v.Data[0]
}

// Truthy reports whether the first element of v is non-zero.
func (v Value) Truthy() bool { return v.Data[0] != 0 }

// Rows returns the row count, 1 for scalars and vectors.
func (v Value) Rows() int {
	if len(v.Shape) == 2 {
		return v.Shape[0]
	}
	return 1
}

// Cols returns the column count: vector length for 1-D, column count for 2-D,
// 1 for scalars.
func (v Value) Cols() int {
	switch len(v.Shape) {
	case 1:
		return v.Shape[0]
	case 2:
		return v.Shape[1]
	default:
		return 1
	}
}

// broadcast aligns a and b for an elementwise binary op: if either is a
// scalar it is repeated to match the other's shape; otherwise both must hold
// the same number of elements (a's shape is kept, or b's if a has none).
// Returns the two flat slices and the result shape.
func broadcast(op string, a, b Value) ([]float64, []float64, []int, error) {
	switch {
	case a.IsScalar() && b.IsScalar():
		return a.Data, b.Data, nil, nil
	case a.IsScalar():
		out := make([]float64, len(b.Data))
		for i := range out {
			out[i] = a.Data[0]
		}
		return out, b.Data, b.Shape, nil
	case b.IsScalar():
		out := make([]float64, len(a.Data))
		for i := range out {
			out[i] = b.Data[0]
		}
		return a.Data, out, a.Shape, nil
	case len(a.Data) == len(b.Data):
		shape := a.Shape
		if shape == nil {
			shape = b.Shape
		}
		return a.Data, b.Data, shape, nil
	default:
		return nil, nil, nil, &TypeError{Op: op, Msg: "operand shapes do not match and neither is a scalar"}
	}
}

func elementwise1(op string, f func(float64) float64) Callable {
	return Callable{
		Name:  op,
		Arity: 1,
		Apply: func(args []Value) (Value, error) {
			a := args[0]
			out := make([]float64, len(a.Data))
			for i, x := range a.Data {
				out[i] = f(x)
			}
			return Value{Data: out, Shape: a.Shape}, nil
		},
	}
}

func elementwise2(op string, f func(a, b float64) float64) Callable {
	return Callable{
		Name:  op,
		Arity: 2,
		Apply: func(args []Value) (Value, error) {
			ad, bd, shape, err := broadcast(op, args[0], args[1])
			if err != nil {
				return Value{}, err
			}
			out := make([]float64, len(ad))
			for i := range out {
				out[i] = f(ad[i], bd[i])
			}
			return Value{Data: out, Shape: shape}, nil
		},
	}
}

func boolOf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// truncate rounds x toward zero, used by bitwise/shift operators which only
// operate on integers.
func truncate(x float64) int64 { return int64(math.Trunc(x)) }
