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
	"fmt"
	"strconv"
	"strings"
)

// infixOps lists the binary heads that Print renders as "(x OP y)" rather
// than as a plain call "OP(x; y)". NEG and SUM — the two synthetic heads
// Lift introduces — are rendered specially so printed output re-parses to a
// structurally equivalent tree.
var infixOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"&&": true, "||": true, "<<": true, ">>": true,
	"|": true, "!|": true, "^": true, "&": true, "!&": true,
}

// Print renders an IR tree back into TunerPro math syntax. Every binary
// operator application is fully parenthesized, which is enough to guarantee
// Parse(Print(x)) reparses to a structurally equivalent tree (spec.md §8's
// round-trip property is stated "modulo explicit parentheses").
func Print(n IRNode) string {
	var b strings.Builder
	print1(n, &b)
	return b.String()
}

func print1(n IRNode, b *strings.Builder) {
	switch t := n.(type) {
	case *Literal:
		if t.IsBool {
			if t.Value.Truthy() {
				b.WriteString("TRUE")
			} else {
				b.WriteString("FALSE")
			}
			return
		}
		b.WriteString(strconv.FormatFloat(t.Value.Float(), 'g', -1, 64))
	case *Name:
		b.WriteString(t.Token)
	case *Func:
		printFunc(t, b)
	default:
		b.WriteString(fmt.Sprintf("<?%T>", n))
	}
}

func printFunc(f *Func, b *strings.Builder) {
	switch {
	case f.Head.Name == "NEG" && len(f.Args) == 1:
		b.WriteString("-")
		print1(f.Args[0], b)
	case f.Head.Name == "SUM":
		b.WriteString("(")
		for i, a := range f.Args {
			if i > 0 {
				b.WriteString("+")
			}
			print1(a, b)
		}
		b.WriteString(")")
	case infixOps[f.Head.Name] && len(f.Args) == 2:
		b.WriteString("(")
		print1(f.Args[0], b)
		b.WriteString(f.Head.Name)
		print1(f.Args[1], b)
		b.WriteString(")")
	default:
		b.WriteString(f.Head.Name)
		b.WriteString("(")
		for i, a := range f.Args {
			if i > 0 {
				b.WriteString(";")
			}
			print1(a, b)
		}
		b.WriteString(")")
	}
}
