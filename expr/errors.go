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
	"text/scanner"
)

// SyntaxError reports a malformed expression at a source position.
type SyntaxError struct {
	Pos scanner.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// UndefinedName is returned when Evaluate walks into a Name node that was
// never substituted by Replace.
type UndefinedName struct {
	Name string
}

func (e *UndefinedName) Error() string {
	return fmt.Sprintf("undefined name %q", e.Name)
}

// TypeError reports an operator applied to an incompatible kind of value,
// such as mismatched array shapes with no scalar to broadcast.
type TypeError struct {
	Op  string
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: %s", e.Op, e.Msg)
}

// RoundingError is raised in strict-truncation mode when a bitwise or shift
// operand is not an exact integer.
type RoundingError struct {
	Op    string
	Value float64
}

func (e *RoundingError) Error() string {
	return fmt.Sprintf("%s: operand %v is not an integer", e.Op, e.Value)
}
