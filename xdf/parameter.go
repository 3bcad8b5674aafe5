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

// ParamKind tags the Parameter sum type (spec.md §3, design notes §9:
// "tagged sum types ... Behavior dispatch uses pattern match, not
// inheritance").
type ParamKind int

const (
	KindScalar ParamKind = iota
	KindTable
	KindFunction
	KindFlag
	KindPatch
)

func (k ParamKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindTable:
		return "table"
	case KindFunction:
		return "function"
	case KindFlag:
		return "flag"
	case KindPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// Meta carries the fields every Parameter variant shares regardless of
// kind: the Quantified/Formatted/Categorized "mixins" of the original
// become plain data here (design notes §9), not embedded behavior.
type Meta struct {
	UniqueID        string
	Title           string
	Description     string
	VisLevel        int
	CategoryIndexes []int // indices into Document.Categories
}

// Parameter is the common facade every parameter kind satisfies. Kind-
// specific operations (.value, .value=, apply, remove) live on the
// concrete *Scalar/*Table/*Function/*Flag/*Patch types themselves; callers
// that need to dispatch generically type-switch on Kind().
type Parameter interface {
	Meta() *Meta
	Kind() ParamKind
}
