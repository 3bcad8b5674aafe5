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

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// PatchEntry is one addressed byte-range replacement within a Patch
// (spec.md §4.9).
type PatchEntry struct {
	Address   int64
	Size      int
	PatchData []byte
	BaseData  []byte // nil if the definition supplied no basedata
}

func (p *PatchEntry) slice(e *Engine) []byte {
	addr := e.Doc().BaseOffset() + p.Address
	rom := e.Doc().ROM()
	return rom.Data[addr : addr+int64(p.Size)]
}

// Applied reports whether the ROM slice currently equals PatchData.
func (p *PatchEntry) Applied(e *Engine) bool {
	return bytes.Equal(p.slice(e), p.PatchData)
}

// Apply overwrites the ROM slice with PatchData.
func (p *PatchEntry) Apply(e *Engine) error {
	copy(p.slice(e), p.PatchData)
	e.Invalidate()
	return nil
}

// Remove overwrites the ROM slice with BaseData. Fails with
// *UnpatchableError if no basedata was recorded for this entry.
func (p *PatchEntry) Remove(e *Engine) error {
	if p.BaseData == nil {
		return &UnpatchableError{Address: p.Address}
	}
	copy(p.slice(e), p.BaseData)
	e.Invalidate()
	return nil
}

// HexDump renders the entry's current ROM bytes as space-separated hex
// pairs, for status reporting (supplemented from the original's map_hex).
func (p *PatchEntry) HexDump(e *Engine) string {
	b := p.slice(e)
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{c}))
	}
	return strings.Join(parts, " ")
}

// Patch is an ordered list of PatchEntry (spec.md §4.9).
type Patch struct {
	Info    Meta
	Entries []*PatchEntry
}

func (p *Patch) Meta() *Meta     { return &p.Info }
func (p *Patch) Kind() ParamKind { return KindPatch }

// ApplyAll applies every entry in order, stopping at the first error.
func (p *Patch) ApplyAll(e *Engine) error {
	for _, entry := range p.Entries {
		if err := entry.Apply(e); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll removes every entry in order, stopping at the first error.
func (p *Patch) RemoveAll(e *Engine) error {
	for _, entry := range p.Entries {
		if err := entry.Remove(e); err != nil {
			return err
		}
	}
	return nil
}
