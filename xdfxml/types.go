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

// Package xdfxml ingests an XDF-shaped definition document (spec.md §6:
// "structural requirements the core depends on, not the literal XML
// shape") into an *xdf.Document, using the stdlib encoding/xml exclusively
// (grounded on the retrieved pack's only XML consumer, xmile.go, which
// does the same).
package xdfxml

import "encoding/xml"

type xdfFormat struct {
	XMLName   xml.Name      `xml:"XDFFORMAT"`
	Header    headerXML     `xml:"XDFHEADER"`
	Constants []constantXML `xml:"XDFCONSTANT"`
	Tables    []tableXML    `xml:"XDFTABLE"`
	Functions []functionXML `xml:"XDFFUNCTION"`
	Flags     []flagXML     `xml:"XDFFLAG"`
	Patches   []patchXML    `xml:"XDFPATCH"`
}

type headerXML struct {
	Title       string        `xml:"deftitle"`
	Description string        `xml:"description"`
	Author      string        `xml:"author"`
	Region      regionXML     `xml:"REGION"`
	BaseOffset  baseOffsetXML `xml:"BASEOFFSET"`
	Categories  []categoryXML `xml:"CATEGORY"`
}

type regionXML struct {
	Size string `xml:"size,attr"` // hex
}

type baseOffsetXML struct {
	Offset   string `xml:"offset,attr"`   // hex
	Subtract string `xml:"subtract,attr"` // "0" or "1"
}

type categoryXML struct {
	Index int    `xml:"index,attr"`
	Name  string `xml:"name,attr"`
}

type categoryMemXML struct {
	Index int `xml:"index,attr"` // 1-indexed into header.Categories
}

// metaXML carries the attributes every parameter kind shares (spec.md §6).
type metaXML struct {
	UniqueID    string           `xml:"uniqueid,attr"`
	Title       string           `xml:"title"`
	Description string           `xml:"description"`
	VisLevel    string           `xml:"vislevel,attr"`
	Flags       string           `xml:"flags,attr"`
	Categories  []categoryMemXML `xml:"CATEGORYMEM"`
}

// varXML declares one VarLinked or VarAddress entry referenced by name from
// a MATH's equation text (supplemented from original_source's explicit
// BoundVar/LinkedVar/AddressVar class hierarchy — the literal TunerPro
// grammar has no such declaration, but the engine's named-variable model
// requires one, so the loader gets it from the definition explicitly
// rather than guessing from free-identifier heuristics).
type varXML struct {
	Name     string `xml:"name,attr"`
	LinkID   string `xml:"linkid,attr"`
	Address  string `xml:"address,attr"`
	Bits     string `xml:"bits,attr"`
	LSBFirst string `xml:"lsbfirst,attr"`
	Signed   string `xml:"signed,attr"`
}

// mathXML is one MATH(equation[,row][,col]) entry. Row/Col presence
// determines the ZAxis mask tag when the MATH belongs to a table's z axis;
// elsewhere both are always absent.
type mathXML struct {
	Equation string   `xml:"equation,attr"`
	Row      string   `xml:"row,attr"`
	Col      string   `xml:"col,attr"`
	Vars     []varXML `xml:"VAR"`
}

type labelXML struct {
	Index string `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type embedInfoXML struct {
	Type      string `xml:"type,attr"`
	LinkObjID string `xml:"linkobjid,attr"`
}

type embeddedDataXML struct {
	Address         string `xml:"mmedaddress,attr"`
	ElementSizeBits string `xml:"mmedelementsizebits,attr"`
	RowCount        string `xml:"mmedrowcount,attr"`
	ColCount        string `xml:"mmedcolcount,attr"`
	MajorStrideBits string `xml:"mmedmajorstridebits,attr"`
	MinorStrideBits string `xml:"mmedminorstridebits,attr"`
	TypeFlags       string `xml:"mmedtypeflags,attr"`
}

// axisXML is one XDFAXIS node; its Kind is inferred by the loader from
// EmbedInfo/Labels/LinkObjID presence (spec.md §6: "embedinfo.type: 1 =
// embedded, 2 = linked to Function, 3 = linked to Table. Absence +
// presence of LABELs = label axis.").
type axisXML struct {
	ID         string          `xml:"id,attr"`
	IndexCount string          `xml:"indexcount,attr"`
	EmbedInfo  *embedInfoXML   `xml:"embedinfo"`
	Labels     []labelXML      `xml:"LABEL"`
	Maths      []mathXML       `xml:"MATH"`
	Data       embeddedDataXML `xml:"EMBEDDEDDATA"`
	Min        string          `xml:"min,attr"`
	Max        string          `xml:"max,attr"`
}

type constantXML struct {
	metaXML
	Math mathXML `xml:"MATH"`
	Data embeddedDataXML `xml:"EMBEDDEDDATA"`
}

type functionXML struct {
	metaXML
	Axes []axisXML `xml:"XDFAXIS"` // expected exactly 2, id="x" and id="y"
}

type tableXML struct {
	metaXML
	Axes []axisXML `xml:"XDFAXIS"`
}

type flagXML struct {
	metaXML
	Address      string `xml:"address,attr"`
	ElementBytes string `xml:"elementbytes,attr"`
	Mask         string `xml:"mask,attr"`
	LittleEndian string `xml:"lsb,attr"`
}

type patchEntryXML struct {
	Address   string `xml:"address,attr"`
	Size      string `xml:"size,attr"`
	PatchData string `xml:"patchdata,attr"`
	BaseData  string `xml:"basedata,attr"`
}

type patchXML struct {
	metaXML
	Entries []patchEntryXML `xml:"PATCHENTRY"`
}
