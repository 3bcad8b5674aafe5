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
	"encoding/xml"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tuners/xdfcore/binview"
	"github.com/tuners/xdfcore/xdf"
)

// Load reads the definition document at defPath and the ROM image at
// romPath, and returns a fully validated *xdf.Document (spec.md §6).
// Definition parse errors and ROM IO errors are wrapped with
// github.com/pkg/errors, matching vm/mem.go's boundary-wrapping pattern;
// validator errors from Document.Open propagate unwrapped, since they are
// already the typed errors spec.md §7 names.
func Load(defPath, romPath string, opts ...xdf.Option) (*xdf.Document, error) {
	raw, err := os.ReadFile(defPath)
	if err != nil {
		return nil, errors.Wrap(err, "read definition document")
	}
	var parsed xdfFormat
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "parse definition document")
	}
	rom, err := binview.Load(romPath)
	if err != nil {
		return nil, errors.Wrap(err, "load rom image")
	}

	d := xdf.NewDocument(rom, opts...)
	d.Path = defPath
	d.Title = parsed.Header.Title
	d.Description = parsed.Header.Description
	d.Author = parsed.Header.Author
	d.Header = xdf.Header{
		RegionSize:          parseHexInt64(parsed.Header.Region.Size),
		BaseOffsetMagnitude: parseHexInt64(parsed.Header.BaseOffset.Offset),
		BaseOffsetSubtract:  parseBool01(parsed.Header.BaseOffset.Subtract),
	}
	d.Categories = buildCategories(parsed.Header.Categories)

	for _, c := range parsed.Constants {
		d.AddParameter(buildScalar(c))
	}
	for _, tb := range parsed.Tables {
		t, err := buildTable(tb)
		if err != nil {
			return nil, err
		}
		d.AddParameter(t)
	}
	for _, fn := range parsed.Functions {
		f, err := buildFunction(fn)
		if err != nil {
			return nil, err
		}
		d.AddParameter(f)
	}
	for _, fl := range parsed.Flags {
		d.AddParameter(buildFlag(fl))
	}
	for _, p := range parsed.Patches {
		d.AddParameter(buildPatch(p))
	}

	if err := d.Open(); err != nil {
		return nil, err
	}
	return d, nil
}

func buildCategories(cats []categoryXML) []xdf.Category {
	maxIdx := 0
	for _, c := range cats {
		if c.Index > maxIdx {
			maxIdx = c.Index
		}
	}
	out := make([]xdf.Category, maxIdx)
	for _, c := range cats {
		if c.Index >= 1 && c.Index <= maxIdx {
			out[c.Index-1] = xdf.Category{Name: c.Name}
		}
	}
	return out
}

func buildMeta(m metaXML) xdf.Meta {
	idx := make([]int, 0, len(m.Categories))
	for _, cm := range m.Categories {
		idx = append(idx, cm.Index-1)
	}
	return xdf.Meta{
		UniqueID:        xdf.NormalizeHexID(m.UniqueID),
		Title:           m.Title,
		Description:     m.Description,
		VisLevel:        parseInt(m.VisLevel),
		CategoryIndexes: idx,
	}
}

func buildVars(vs []varXML) []xdf.Var {
	out := []xdf.Var{{Name: "X", Kind: xdf.VarBound}}
	for _, v := range vs {
		switch {
		case v.LinkID != "":
			out = append(out, xdf.Var{
				Name: v.Name, Kind: xdf.VarLinked,
				LinkedParamID: xdf.NormalizeHexID(v.LinkID),
			})
		case v.Address != "":
			bits := parseInt(v.Bits)
			if bits == 0 {
				bits = 8
			}
			out = append(out, xdf.Var{
				Name: v.Name, Kind: xdf.VarAddress,
				AddressOffset:   parseHexInt64(v.Address),
				AddressBits:     bits,
				AddressLSBFirst: parseBool01(v.LSBFirst),
				AddressSigned:   parseBool01(v.Signed),
			})
		default:
			out = append(out, xdf.Var{Name: v.Name, Kind: xdf.VarFree})
		}
	}
	return out
}

func buildMath(m mathXML) *xdf.Math {
	return &xdf.Math{Source: m.Equation, Tag: xdf.TagGlobal, Vars: buildVars(m.Vars)}
}

// buildZMath infers a ZAxis Math's mask tag from which of row/col the
// definition supplied (spec.md §4.5).
func buildZMath(m mathXML) *xdf.Math {
	tag, row, col := xdf.TagGlobal, 0, 0
	hasRow, hasCol := m.Row != "", m.Col != ""
	switch {
	case hasRow && hasCol:
		tag, row, col = xdf.TagCell, parseInt(m.Row), parseInt(m.Col)
	case hasRow:
		tag, row = xdf.TagRow, parseInt(m.Row)
	case hasCol:
		tag, col = xdf.TagColumn, parseInt(m.Col)
	}
	return &xdf.Math{Source: m.Equation, Tag: tag, Row: row, Col: col, Vars: buildVars(m.Vars)}
}

func buildEmbeddedData(e embeddedDataXML) *xdf.EmbeddedData {
	addr := parseHexInt64(e.Address)
	rows := parseInt(e.RowCount)
	if rows == 0 {
		rows = 1
	}
	return &xdf.EmbeddedData{
		Address:         &addr,
		ElementBits:     parseInt(e.ElementSizeBits),
		Rows:            rows,
		Cols:            parseInt(e.ColCount),
		TypeFlags:       parseHexUint32(e.TypeFlags),
		MajorStrideBits: parseInt(e.MajorStrideBits),
		MinorStrideBits: parseInt(e.MinorStrideBits),
	}
}

func parseFloatAttr(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// buildAxis dispatches on embedinfo.type/LABEL presence (spec.md §6) for a
// plain axis, or always builds an AxisZ when isZ is set — a table's z axis
// is embedded by definition and aggregates every MATH child instead of
// exactly one.
func buildAxis(a axisXML, isZ bool) *xdf.Axis {
	axis := &xdf.Axis{ID: a.ID, IndexCount: parseInt(a.IndexCount)}
	if isZ {
		axis.Kind = xdf.AxisZ
		axis.Data = buildEmbeddedData(a.Data)
		for _, m := range a.Maths {
			axis.ZMaths = append(axis.ZMaths, buildZMath(m))
		}
		if a.Min != "" {
			v := parseFloatAttr(a.Min)
			axis.Min = &v
		}
		if a.Max != "" {
			v := parseFloatAttr(a.Max)
			axis.Max = &v
		}
		return axis
	}
	switch {
	case a.EmbedInfo != nil && a.EmbedInfo.Type == "2":
		axis.Kind = xdf.AxisFunctionLinked
		axis.LinkedFunctionID = xdf.NormalizeHexID(a.EmbedInfo.LinkObjID)
	case a.EmbedInfo != nil && a.EmbedInfo.Type == "3":
		axis.Kind = xdf.AxisTableLinked
		axis.LinkedTableID = xdf.NormalizeHexID(a.EmbedInfo.LinkObjID)
	case len(a.Labels) > 0:
		axis.Kind = xdf.AxisLabel
		axis.Labels = make([]string, len(a.Labels))
		for i, l := range a.Labels {
			axis.Labels[i] = l.Value
		}
	default:
		axis.Kind = xdf.AxisEmbedded
		axis.Data = buildEmbeddedData(a.Data)
		if len(a.Maths) > 0 {
			axis.Math = buildMath(a.Maths[0])
		}
	}
	return axis
}

func findAxis(axes []axisXML, id string) (axisXML, bool) {
	for _, a := range axes {
		if a.ID == id {
			return a, true
		}
	}
	return axisXML{}, false
}

func buildScalar(c constantXML) *xdf.Scalar {
	return &xdf.Scalar{Info: buildMeta(c.metaXML), Data: buildEmbeddedData(c.Data), Math: buildMath(c.Math)}
}

func buildTable(tb tableXML) (*xdf.Table, error) {
	t := &xdf.Table{Info: buildMeta(tb.metaXML)}
	if x, ok := findAxis(tb.Axes, "x"); ok {
		t.XAxis = buildAxis(x, false)
	}
	if y, ok := findAxis(tb.Axes, "y"); ok {
		t.YAxis = buildAxis(y, false)
	}
	z, ok := findAxis(tb.Axes, "z")
	if !ok {
		return nil, &xdf.SchemaError{Msg: "table " + t.Info.UniqueID + " has no z axis"}
	}
	t.ZAxis = buildAxis(z, true)
	return t, nil
}

func buildFunction(fn functionXML) (*xdf.Function, error) {
	f := &xdf.Function{Info: buildMeta(fn.metaXML)}
	x, ok := findAxis(fn.Axes, "x")
	if !ok {
		return nil, &xdf.SchemaError{Msg: "function " + f.Info.UniqueID + " has no x axis"}
	}
	y, ok := findAxis(fn.Axes, "y")
	if !ok {
		return nil, &xdf.SchemaError{Msg: "function " + f.Info.UniqueID + " has no y axis"}
	}
	f.X = buildAxis(x, false)
	f.Y = buildAxis(y, false)
	return f, nil
}

func buildFlag(fl flagXML) *xdf.Flag {
	elemBytes := parseInt(fl.ElementBytes)
	if elemBytes == 0 {
		elemBytes = 1
	}
	return &xdf.Flag{
		Info:         buildMeta(fl.metaXML),
		Address:      parseHexInt64(fl.Address),
		ElementBytes: elemBytes,
		Mask:         uint64(parseHexInt64(fl.Mask)),
		LittleEndian: parseBool01(fl.LittleEndian),
	}
}

func buildPatch(p patchXML) *xdf.Patch {
	entries := make([]*xdf.PatchEntry, 0, len(p.Entries))
	for _, e := range p.Entries {
		var base []byte
		if e.BaseData != "" {
			base = ParseHexTolerant(e.BaseData)
		}
		entries = append(entries, &xdf.PatchEntry{
			Address:   parseHexInt64(e.Address),
			Size:      parseInt(e.Size),
			PatchData: ParseHexTolerant(e.PatchData),
			BaseData:  base,
		})
	}
	return &xdf.Patch{Info: buildMeta(p.metaXML), Entries: entries}
}
