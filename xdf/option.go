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

package xdf

// Option configures a Document at construction time, following the same
// functional-options idiom used by expr.Option and (in the teacher) by
// vm.Option.
type Option func(*Document)

// WithTolerated downgrades the named validator error kinds to warnings: a
// Document with a cycle or a CellEquationError of a tolerated kind still
// opens successfully, but any access to a value that depends on the
// offending Math/axis surfaces the same error again.
func WithTolerated(kinds ...ErrorKind) Option {
	return func(d *Document) {
		if d.tolerated == nil {
			d.tolerated = make(map[ErrorKind]bool, len(kinds))
		}
		for _, k := range kinds {
			d.tolerated[k] = true
		}
	}
}

// StrictCell selects the strict-mode CELL(i; false) initial-array policy:
// NaN-fill instead of the default all-zero TunerPro-compatible fill, for a
// single-equation (non-table) host. See SPEC_FULL.md's Open Question #1.
func StrictCell(strict bool) Option {
	return func(d *Document) { d.engineStrictCell = strict }
}

// StrictTruncation selects strict bitwise/shift truncation (RoundingError
// on a lossy operand) instead of the default silent truncation.
func StrictTruncation(strict bool) Option {
	return func(d *Document) { d.engineStrictTrunc = strict }
}
