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

// EmbeddedData is the immutable descriptor locating and shaping bytes in
// ROM for a value (spec.md §3). Address is a pointer because it is
// optional: a nil Address means "use OffsetOrigin directly", matching
// definitions that only ever specify an address relative to the header's
// BASEOFFSET.
type EmbeddedData struct {
	Address      *int64
	ElementBits  int
	Rows, Cols   int
	TypeFlags    uint32
	// MajorStrideBits/MinorStrideBits mirror the XML attributes
	// mmedmajorstridebits/mmedminorstridebits: major is the outer (slower
	// varying) dimension, minor the inner one, and which physical
	// dimension (row or column) is "major" depends on the column-major
	// type-flag bit, resolved here rather than by the caller.
	MajorStrideBits int
	MinorStrideBits int
	OffsetOrigin    int64
}

// View constructs the binview.View this descriptor addresses, rebasing
// OffsetOrigin/Address against the Document's header base offset.
func (d *EmbeddedData) View(rom *binview.ROM, baseOffset int64) (*binview.View, error) {
	addr := baseOffset + d.OffsetOrigin
	if d.Address != nil {
		addr = baseOffset + *d.Address
	}
	dtype := binview.NewDType(d.ElementBits, d.TypeFlags)
	columnMajor := d.TypeFlags&binview.FlagColumnMajor != 0
	majorBytes := d.MajorStrideBits / 8
	minorBytes := d.MinorStrideBits / 8
	var rowStride, colStride int
	if columnMajor {
		rowStride, colStride = minorBytes, majorBytes
	} else {
		rowStride, colStride = majorBytes, minorBytes
	}
	return binview.NewView(rom, int(addr), dtype, d.Rows, d.Cols, rowStride, colStride, columnMajor)
}
