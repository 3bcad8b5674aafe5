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

// Registry bundles a built-in table with the evaluation-mode flags that
// shaped it, so callers don't have to thread strictTruncation separately.
type Registry struct {
	Funcs            map[string]Callable
	StrictTruncation bool
}

// Option configures a Registry, following the functional-options idiom used
// throughout this module (mirrored from vm.Option in the retrieved corpus).
type Option func(*Registry)

// StrictTruncation makes bitwise/shift operators raise RoundingError when an
// operand is not an exact integer, instead of silently truncating it.
func StrictTruncation(strict bool) Option {
	return func(r *Registry) { r.StrictTruncation = strict }
}

// NewEvaluationRegistry builds a Registry with the given options applied.
func NewEvaluationRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	r.Funcs = NewRegistry(r.StrictTruncation)
	return r
}
