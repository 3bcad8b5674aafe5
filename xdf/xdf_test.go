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
	"testing"

	"github.com/tuners/xdfcore/binview"
)

func boundVar(name string) []Var { return []Var{{Name: name, Kind: VarBound}} }

func TestScalarIdentity(t *testing.T) {
	rom := &binview.ROM{Data: []byte{42}}
	doc := NewDocument(rom)
	s := &Scalar{
		Info: Meta{UniqueID: "0x1"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1},
		Math: &Math{Source: "X", Vars: boundVar("X")},
	}
	doc.AddParameter(s)
	if err := doc.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	v, err := s.Value(doc.engine)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 42 {
		t.Fatalf("want 42, got %v", v)
	}
}

func TestScalarWriteBoundsViolation(t *testing.T) {
	rom := &binview.ROM{Data: []byte{0}}
	doc := NewDocument(rom)
	s := &Scalar{
		Info: Meta{UniqueID: "0x1"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1}, // unsigned 8-bit, raw range [0,255]
		Math: &Math{Source: "X*0.5", Vars: boundVar("X")},
	}
	doc.AddParameter(s)
	if err := doc.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	err := s.SetValue(doc.engine, 200)
	be, ok := err.(*binview.BoundsError)
	if !ok {
		t.Fatalf("want *binview.BoundsError, got %T (%v)", err, err)
	}
	if be.Hi != 127.5 {
		t.Fatalf("want Hi=127.5, got %v", be.Hi)
	}
	if rom.Data[0] != 0 {
		t.Fatalf("rejected write must not mutate ROM, got %v", rom.Data[0])
	}
}

func TestCellSelfReference(t *testing.T) {
	rom := &binview.ROM{Data: []byte{10, 20, 30, 40}}
	doc := NewDocument(rom)
	axis := &Axis{
		ID:   "x",
		Kind: AxisEmbedded,
		Data: &EmbeddedData{ElementBits: 8, Rows: 4},
		Math: &Math{Source: "CELL(1;FALSE)+2", Vars: boundVar("X")},
	}
	fn := &Function{
		Info: Meta{UniqueID: "0x1"},
		X:    axis,
		Y:    &Axis{ID: "y", Kind: AxisEmbedded, Data: &EmbeddedData{ElementBits: 8, Rows: 4}, Math: &Math{Source: "X", Vars: boundVar("X")}},
	}
	doc.AddParameter(fn)
	if err := doc.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := axis.ConvertedValues(doc.engine)
	if err != nil {
		t.Fatalf("ConvertedValues: %v", err)
	}
	want := []float64{2, 2, 2, 2}
	if len(got) != len(want) {
		t.Fatalf("want length %d, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d: want %v, got %v", i, w, got[i])
		}
	}
}

func TestLiveCellEquationRejected(t *testing.T) {
	rom := &binview.ROM{Data: []byte{0}}
	doc := NewDocument(rom)
	s := &Scalar{
		Info: Meta{UniqueID: "0x1"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1},
		Math: &Math{Source: "CELL(0;FALSE)+CELL(0;FALSE)", Vars: boundVar("X")},
	}
	doc.AddParameter(s)
	err := doc.Open()
	ce, ok := err.(*CellEquationError)
	if !ok {
		t.Fatalf("want *CellEquationError, got %T (%v)", err, err)
	}
	if ce.Count != 2 {
		t.Fatalf("want Count=2, got %d", ce.Count)
	}
}

func TestMathGraphCycleRejected(t *testing.T) {
	rom := &binview.ROM{Data: make([]byte, 2)}
	doc := NewDocument(rom)
	a := &Scalar{
		Info: Meta{UniqueID: "0xA"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1, OffsetOrigin: 0},
		Math: &Math{Source: "B", Vars: []Var{{Name: "B", Kind: VarLinked, LinkedParamID: "0xB"}}},
	}
	b := &Scalar{
		Info: Meta{UniqueID: "0xB"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1, OffsetOrigin: 1},
		Math: &Math{Source: "A", Vars: []Var{{Name: "A", Kind: VarLinked, LinkedParamID: "0xA"}}},
	}
	doc.AddParameter(a)
	doc.AddParameter(b)
	err := doc.Open()
	cyc, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("want *CycleError, got %T (%v)", err, err)
	}
	if cyc.Kind() != KindMathCycle {
		t.Fatalf("want KindMathCycle, got %v", cyc.Kind())
	}
}

func TestMathGraphCycleTolerated(t *testing.T) {
	rom := &binview.ROM{Data: make([]byte, 2)}
	doc := NewDocument(rom, WithTolerated(KindMathCycle))
	a := &Scalar{
		Info: Meta{UniqueID: "0xA"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1, OffsetOrigin: 0},
		Math: &Math{Source: "B", Vars: []Var{{Name: "B", Kind: VarLinked, LinkedParamID: "0xB"}}},
	}
	b := &Scalar{
		Info: Meta{UniqueID: "0xB"},
		Data: &EmbeddedData{ElementBits: 8, Rows: 1, OffsetOrigin: 1},
		Math: &Math{Source: "A", Vars: []Var{{Name: "A", Kind: VarLinked, LinkedParamID: "0xA"}}},
	}
	doc.AddParameter(a)
	doc.AddParameter(b)
	if err := doc.Open(); err != nil {
		t.Fatalf("Open should tolerate the cycle, got %v", err)
	}
	if _, err := a.Value(doc.engine); err == nil {
		t.Fatalf("Value should still surface the tolerated cycle on access")
	}
}

func TestTableMaskPriority(t *testing.T) {
	rom := &binview.ROM{Data: []byte{1, 2, 3, 4}}
	doc := NewDocument(rom)
	z := &Axis{
		Kind: AxisZ,
		Data: &EmbeddedData{ElementBits: 8, Rows: 2, Cols: 2},
		ZMaths: []*Math{
			{Source: "X*1", Tag: TagGlobal, Vars: boundVar("X")},
			{Source: "X*10", Tag: TagRow, Row: 1, Vars: boundVar("X")},
			{Source: "X*100", Tag: TagColumn, Col: 1, Vars: boundVar("X")},
			{Source: "X*1000", Tag: TagCell, Row: 1, Col: 1, Vars: boundVar("X")},
		},
	}
	table := &Table{Info: Meta{UniqueID: "0x1"}, ZAxis: z}
	doc.AddParameter(table)
	if err := doc.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := table.Z(doc.engine)
	if err != nil {
		t.Fatalf("Z: %v", err)
	}
	want := [][]float64{{1, 200}, {30, 4000}}
	for r := range want {
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Fatalf("Z[%d][%d] = %v, want %v (full: %v)", r, c, got[r][c], want[r][c], got)
			}
		}
	}
}

func TestPatchRemoveWithoutBaseDataFails(t *testing.T) {
	rom := &binview.ROM{Data: []byte{0xFF}}
	doc := NewDocument(rom)
	entry := &PatchEntry{Address: 0, Size: 1, PatchData: []byte{0x00}, BaseData: nil}
	err := entry.Remove(doc.engine)
	ue, ok := err.(*UnpatchableError)
	if !ok {
		t.Fatalf("want *UnpatchableError, got %T (%v)", err, err)
	}
	if ue.Address != 0 {
		t.Fatalf("want Address=0, got %d", ue.Address)
	}
}

func TestPatchApplyThenRemove(t *testing.T) {
	rom := &binview.ROM{Data: []byte{0x00}}
	doc := NewDocument(rom)
	entry := &PatchEntry{Address: 0, Size: 1, PatchData: []byte{0xFF}, BaseData: []byte{0x00}}
	if err := entry.Apply(doc.engine); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rom.Data[0] != 0xFF {
		t.Fatalf("Apply did not write PatchData")
	}
	if !entry.Applied(doc.engine) {
		t.Fatalf("Applied should report true")
	}
	if err := entry.Remove(doc.engine); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if rom.Data[0] != 0x00 {
		t.Fatalf("Remove did not restore BaseData")
	}
}

func TestFlagRoundTrip(t *testing.T) {
	rom := &binview.ROM{Data: []byte{0x00}}
	doc := NewDocument(rom)
	f := &Flag{Info: Meta{UniqueID: "0x1"}, Address: 0, ElementBytes: 1, Mask: 0x04}
	on, err := f.Value(doc.engine)
	if err != nil || on {
		t.Fatalf("want false initially, got %v, err=%v", on, err)
	}
	if err := f.SetValue(doc.engine, true); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if rom.Data[0] != 0x04 {
		t.Fatalf("want 0x04, got 0x%X", rom.Data[0])
	}
	on, err = f.Value(doc.engine)
	if err != nil || !on {
		t.Fatalf("want true after set, got %v, err=%v", on, err)
	}
}
