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

import "github.com/tuners/xdfcore/binview"

// Header carries the definition document's root metadata (spec.md §6): one
// REGION size and one BASEOFFSET (magnitude + subtract flag).
type Header struct {
	RegionSize          int64
	BaseOffsetMagnitude int64
	BaseOffsetSubtract  bool
}

// BaseOffset returns the signed offset every absolute address in the
// definition is rebased against.
func (h Header) BaseOffset() int64 {
	if h.BaseOffsetSubtract {
		return -h.BaseOffsetMagnitude
	}
	return h.BaseOffsetMagnitude
}

// Category is a named grouping that Parameters reference by index.
type Category struct {
	Name string
}

// Document is the root entity: header metadata, categories, parameters,
// and the single open ROM handle they all read and write through (spec.md
// §3). Cross-links between parameters are resolved through a central
// index keyed by unique id (design notes §9), not by holding direct Go
// pointers to other Parameters at construction time, so the loader can
// build parameters in any order.
type Document struct {
	Path        string
	Title       string
	Description string
	Author      string
	Header      Header
	Categories  []Category
	Parameters  []Parameter

	rom       *binview.ROM
	engine    *Engine
	index     map[string]int
	tolerated map[ErrorKind]bool

	engineStrictCell  bool
	engineStrictTrunc bool

	cacheGen int
}

// invalidateCache bumps the generation counter every cached converted
// value is checked against (spec.md §5: "a write invalidates dependent
// caches transitively (conservative: drop all cached converted values)").
func (d *Document) invalidateCache() { d.cacheGen++ }

// NewDocument builds an empty Document bound to rom, ready for a loader
// (xdfxml.Load, or a test) to populate Header/Categories/Parameters before
// calling Open.
func NewDocument(rom *binview.ROM, opts ...Option) *Document {
	d := &Document{rom: rom}
	for _, opt := range opts {
		opt(d)
	}
	d.engine = NewEngine(d, d.engineStrictCell, d.engineStrictTrunc)
	return d
}

// AddParameter appends p to the document's parameter list. Must be called
// before Open.
func (d *Document) AddParameter(p Parameter) {
	d.Parameters = append(d.Parameters, p)
}

// Open builds the unique-id index and runs the dependency validator
// (spec.md §4.6). Validator errors whose kind is in the tolerated set
// (WithTolerated) do not fail Open; the affected parameters remain
// constructible but raise the same error again on first value access.
func (d *Document) Open() error {
	d.index = make(map[string]int, len(d.Parameters))
	for i, p := range d.Parameters {
		d.index[p.Meta().UniqueID] = i
	}
	return d.validate()
}

// Lookup resolves a unique id to its Parameter.
func (d *Document) Lookup(id string) (Parameter, bool) {
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.Parameters[i], true
}

// Engine returns the Document's conversion Engine, for callers (loaders,
// CLIs) that need to evaluate a Parameter's value outside this package.
func (d *Document) Engine() *Engine { return d.engine }

// BaseOffset is a shorthand for Header.BaseOffset().
func (d *Document) BaseOffset() int64 { return d.Header.BaseOffset() }

// ROM returns the document's backing byte image.
func (d *Document) ROM() *binview.ROM { return d.rom }

// Save flushes the ROM image to fileName.
func (d *Document) Save(fileName string) error { return d.rom.Save(fileName) }

func (d *Document) tolerates(k ErrorKind) bool { return d.tolerated != nil && d.tolerated[k] }
