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

package xdfxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tuners/xdfcore/xdf"
)

const sampleDef = `<?xml version="1.0" encoding="UTF-8"?>
<XDFFORMAT>
  <XDFHEADER>
    <deftitle>Sample Tune</deftitle>
    <description>a small definition for testing</description>
    <author>nobody</author>
    <REGION size="0x1000"/>
    <BASEOFFSET offset="0x0" subtract="0"/>
    <CATEGORY index="1" name="Fuel"/>
  </XDFHEADER>
  <XDFCONSTANT uniqueid="0x1" vislevel="1">
    <title>Idle RPM</title>
    <CATEGORYMEM index="1"/>
    <MATH equation="X*10"/>
    <EMBEDDEDDATA mmedaddress="0x0" mmedelementsizebits="8" mmedrowcount="1" mmedcolcount="0" mmedtypeflags="0x00"/>
  </XDFCONSTANT>
  <XDFTABLE uniqueid="0x2">
    <title>Fuel Map</title>
    <XDFAXIS id="x" indexcount="2">
      <LABEL index="0" value="0"/>
      <LABEL index="1" value="1"/>
    </XDFAXIS>
    <XDFAXIS id="y" indexcount="2">
      <LABEL index="0" value="0"/>
      <LABEL index="1" value="1"/>
    </XDFAXIS>
    <XDFAXIS id="z" indexcount="4">
      <MATH equation="X"/>
      <EMBEDDEDDATA mmedaddress="0x1" mmedelementsizebits="8" mmedrowcount="2" mmedcolcount="2" mmedtypeflags="0x00"/>
    </XDFAXIS>
  </XDFTABLE>
</XDFFORMAT>`

func TestLoadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	defPath := filepath.Join(dir, "def.xdf")
	romPath := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(defPath, []byte(sampleDef), 0o644); err != nil {
		t.Fatal(err)
	}
	rom := make([]byte, 16)
	rom[0] = 5          // constant 0x1 raw value
	rom[1], rom[2], rom[3], rom[4] = 1, 2, 3, 4 // table 0x2 z raw values
	if err := os.WriteFile(romPath, rom, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(defPath, romPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Title != "Sample Tune" {
		t.Fatalf("Title = %q", doc.Title)
	}
	if len(doc.Parameters) != 2 {
		t.Fatalf("want 2 parameters, got %d", len(doc.Parameters))
	}

	p, ok := doc.Lookup("0x1")
	if !ok {
		t.Fatal("lookup 0x1 failed")
	}
	scalar, ok := p.(*xdf.Scalar)
	if !ok {
		t.Fatalf("0x1 is a %T, want *xdf.Scalar", p)
	}
	v, err := scalar.Value(doc.Engine())
	if err != nil {
		t.Fatalf("scalar value: %v", err)
	}
	if v != 50 {
		t.Fatalf("scalar value = %v, want 50", v)
	}

	tp, ok := doc.Lookup("0x2")
	if !ok {
		t.Fatal("lookup 0x2 failed")
	}
	table, ok := tp.(*xdf.Table)
	if !ok {
		t.Fatalf("0x2 is a %T, want *xdf.Table", tp)
	}
	z, err := table.Z(doc.Engine())
	if err != nil {
		t.Fatalf("table z: %v", err)
	}
	want := [][]float64{{1, 2}, {3, 4}}
	for r := range want {
		for c := range want[r] {
			if z[r][c] != want[r][c] {
				t.Fatalf("z[%d][%d] = %v, want %v", r, c, z[r][c], want[r][c])
			}
		}
	}
}
