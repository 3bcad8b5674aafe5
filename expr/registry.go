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

// Callable is the typed head of a Func IR node: either a named built-in from
// the registry or a lifted numeric operator. Name is kept even after
// resolution so Count and error messages can refer to it.
type Callable struct {
	Name  string
	Arity int // -1 for variadic
	Apply func(args []Value) (Value, error)
}

func reduceN(op string, f func(acc, x float64) float64, seed func(first float64) float64) Callable {
	return Callable{
		Name:  op,
		Arity: -1,
		Apply: func(args []Value) (Value, error) {
			if len(args) == 0 {
				return Value{}, &TypeError{Op: op, Msg: "requires at least one argument"}
			}
			shape := args[0].Shape
			n := len(args[0].Data)
			for _, a := range args[1:] {
				if !a.IsScalar() && len(a.Data) != n {
					if n == 1 {
						n = len(a.Data)
						shape = a.Shape
					} else {
						return Value{}, &TypeError{Op: op, Msg: "argument shapes do not match"}
					}
				}
			}
			out := make([]float64, n)
			for i := range out {
				acc := elemAt(args[0], i)
				acc = seed(acc)
				for _, a := range args[1:] {
					acc = f(acc, elemAt(a, i))
				}
				out[i] = acc
			}
			return Value{Data: out, Shape: shape}, nil
		},
	}
}

func elemAt(v Value, i int) float64 {
	if v.IsScalar() {
		return v.Data[0]
	}
	return v.Data[i]
}

func sumArgs(op string) Callable {
	return Callable{
		Name:  op,
		Arity: -1,
		Apply: func(args []Value) (Value, error) {
			if len(args) == 0 {
				return Scalar(0), nil
			}
			n := 1
			var shape []int
			for _, a := range args {
				if !a.IsScalar() {
					n = len(a.Data)
					shape = a.Shape
					break
				}
			}
			out := make([]float64, n)
			for _, a := range args {
				for i := range out {
					out[i] += elemAt(a, i)
				}
			}
			return Value{Data: out, Shape: shape}, nil
		},
	}
}

func avgArgs(op string) Callable {
	sum := sumArgs(op)
	return Callable{
		Name:  op,
		Arity: -1,
		Apply: func(args []Value) (Value, error) {
			v, err := sum.Apply(args)
			if err != nil {
				return Value{}, err
			}
			n := float64(len(args))
			out := make([]float64, len(v.Data))
			for i, x := range v.Data {
				out[i] = x / n
			}
			return Value{Data: out, Shape: v.Shape}, nil
		},
	}
}

func roundHalfAwayFromZero(x float64, decimals float64) float64 {
	mult := math.Pow(10, decimals)
	scaled := x * mult
	if scaled >= 0 {
		return math.Floor(scaled+0.5) / mult
	}
	return math.Ceil(scaled-0.5) / mult
}

// bitwiseOperand truncates x to an integer per the active truncation policy.
// strict mode raises RoundingError when truncation is lossy.
func bitwiseOperand(op string, x float64, strict bool) (int64, error) {
	n := truncate(x)
	if strict && float64(n) != x {
		return 0, &RoundingError{Op: op, Value: x}
	}
	return n, nil
}

func bitwise2(op string, f func(a, b int64) int64, strict bool) Callable {
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
				a, err := bitwiseOperand(op, ad[i], strict)
				if err != nil {
					return Value{}, err
				}
				b, err := bitwiseOperand(op, bd[i], strict)
				if err != nil {
					return Value{}, err
				}
				out[i] = float64(f(a, b))
			}
			return Value{Data: out, Shape: shape}, nil
		},
	}
}

// NewRegistry builds the built-in function/operator table described in
// spec.md §4.3. strictTruncation controls whether bitwise/shift operators
// raise RoundingError on lossy truncation (default: silent truncation).
func NewRegistry(strictTruncation bool) map[string]Callable {
	reg := map[string]Callable{
		"ABS":     elementwise1("ABS", math.Abs),
		"EXP":     elementwise1("EXP", math.Exp),
		"LOG":     elementwise1("LOG", math.Log),
		"LOG10":   elementwise1("LOG10", math.Log10),
		"SQR":     elementwise1("SQR", math.Sqrt),
		"SIN":     elementwise1("SIN", math.Sin),
		"COS":     elementwise1("COS", math.Cos),
		"TAN":     elementwise1("TAN", math.Tan),
		"SINH":    elementwise1("SINH", math.Sinh),
		"COSH":    elementwise1("COSH", math.Cosh),
		"TANH":    elementwise1("TANH", math.Tanh),
		"ASIN":    elementwise1("ASIN", math.Asin),
		"ACOS":    elementwise1("ACOS", math.Acos),
		"ATAN":    elementwise1("ATAN", math.Atan),
		"ASINH":   elementwise1("ASINH", math.Asinh),
		"ACOSH":   elementwise1("ACOSH", math.Acosh),
		"ATANH":   elementwise1("ATANH", math.Atanh),
		"RADIANS": elementwise1("RADIANS", func(x float64) float64 { return x * math.Pi / 180 }),
		"DEGREES": elementwise1("DEGREES", func(x float64) float64 { return x * 180 / math.Pi }),
		"FLOOR":   elementwise1("FLOOR", math.Floor),
		"CEIL":    elementwise1("CEIL", math.Ceil),

		"POW":    elementwise2("POW", math.Pow),
		"ROUND":  elementwise2("ROUND", roundHalfAwayFromZero),
		"MROUND": elementwise2("MROUND", func(a, b float64) float64 { return math.Floor(a / b) }),

		"AVG": avgArgs("AVG"),
		"SUM": sumArgs("SUM"),
		"MIN": reduceN("MIN", math.Min, func(f float64) float64 { return f }),
		"MAX": reduceN("MAX", math.Max, func(f float64) float64 { return f }),

		"IF": {
			Name:  "IF",
			Arity: 3,
			Apply: func(args []Value) (Value, error) {
				cond, tv, fv := args[0], args[1], args[2]
				n := len(cond.Data)
				shape := cond.Shape
				if !tv.IsScalar() && len(tv.Data) > n {
					n, shape = len(tv.Data), tv.Shape
				}
				if !fv.IsScalar() && len(fv.Data) > n {
					n, shape = len(fv.Data), fv.Shape
				}
				out := make([]float64, n)
				for i := range out {
					if elemAt(cond, i) != 0 {
						out[i] = elemAt(tv, i)
					} else {
						out[i] = elemAt(fv, i)
					}
				}
				return Value{Data: out, Shape: shape}, nil
			},
		},

		"NEG": elementwise1("NEG", func(x float64) float64 { return -x }),

		"+": elementwise2("+", func(a, b float64) float64 { return a + b }),
		"-": elementwise2("-", func(a, b float64) float64 { return a - b }),
		"*": elementwise2("*", func(a, b float64) float64 { return a * b }),
		"/": elementwise2("/", func(a, b float64) float64 { return a / b }),
		"%": elementwise2("%", math.Mod),

		"<":  elementwise2("<", func(a, b float64) float64 { return boolOf(a < b) }),
		">":  elementwise2(">", func(a, b float64) float64 { return boolOf(a > b) }),
		"<=": elementwise2("<=", func(a, b float64) float64 { return boolOf(a <= b) }),
		">=": elementwise2(">=", func(a, b float64) float64 { return boolOf(a >= b) }),
		"==": elementwise2("==", func(a, b float64) float64 { return boolOf(a == b) }),
		"!=": elementwise2("!=", func(a, b float64) float64 { return boolOf(a != b) }),
		"&&": elementwise2("&&", func(a, b float64) float64 { return boolOf(a != 0 && b != 0) }),
		"||": elementwise2("||", func(a, b float64) float64 { return boolOf(a != 0 || b != 0) }),

		"<<": bitwise2("<<", func(a, b int64) int64 { return a << uint(b) }, strictTruncation),
		">>": bitwise2(">>", func(a, b int64) int64 { return a >> uint(b) }, strictTruncation),
		"&":  bitwise2("&", func(a, b int64) int64 { return a & b }, strictTruncation),
		"|":  bitwise2("|", func(a, b int64) int64 { return a | b }, strictTruncation),
		"^":  bitwise2("^", func(a, b int64) int64 { return a ^ b }, strictTruncation),
		"!&": bitwise2("!&", func(a, b int64) int64 { return ^(a & b) }, strictTruncation),
		"!|": bitwise2("!|", func(a, b int64) int64 { return ^(a | b) }, strictTruncation),
	}
	return reg
}

// contextualNames lists the XDF-specific identifiers that are always calls
// and are never resolved from the global registry: their Callable comes
// from a per-Math environment built by the conversion engine.
var contextualNames = map[string]bool{
	"INDEX": true, "INDEXES": true,
	"ROW": true, "COL": true, "ROWS": true, "COLS": true,
	"CELL": true, "THIS": true, "THAT": true, "ADDRESS": true,
}
