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

package binview

// axis describes one dimension's addressing: a stride magnitude in bytes and
// whether that dimension is walked in reverse (TunerPro "backwards stride").
// A zero-length axis (Count == 0) means "this dimension doesn't exist" —
// used to represent scalars and 1-D vectors uniformly with 2-D tables.
type axis struct {
	Count   int
	Stride  int // bytes, always >= 0; sign is carried by Reverse
	Reverse bool
}

// offset returns the byte offset contributed by index i along this axis.
func (a axis) offset(i int) int {
	if a.Count == 0 {
		return 0
	}
	if a.Reverse {
		return (a.Count - 1 - i) * a.Stride
	}
	return i * a.Stride
}

// View is a typed, shaped, strided projection of a ROM's bytes, as described
// by an EmbeddedData descriptor: the central binary primitive every scalar,
// axis, and table conversion reads and writes through.
type View struct {
	rom     *ROM
	Address int
	DType   DType
	Rows    axis
	Cols    axis
}

// NewView constructs a view over rom starting at byte address. rows/cols are
// element counts (cols == 0 for a plain scalar or a 1-D vector addressed
// entirely by rows). rowStrideBytes/colStrideBytes may be negative, per the
// "backwards stride" convention: the magnitude is the step size and a
// negative sign means "iterate that dimension in reverse", never a literal
// negative address delta. A zero stride means "derive the natural
// contiguous stride from shape and columnMajor".
func NewView(rom *ROM, address int, dtype DType, rows, cols int, rowStrideBytes, colStrideBytes int, columnMajor bool) (*View, error) {
	if rows < 0 || cols < 0 {
		return nil, &ShapeError{Msg: "negative dimension count"}
	}
	if rows == 0 {
		rows = 1
	}
	elemSize := dtype.ByteWidth
	naturalRow, naturalCol := elemSize, elemSize
	if cols > 0 {
		if columnMajor {
			naturalRow = elemSize
			naturalCol = rows * elemSize
		} else {
			naturalRow = cols * elemSize
			naturalCol = elemSize
		}
	}
	rStride, rRev := resolveStride(rowStrideBytes, naturalRow)
	cStride, cRev := resolveStride(colStrideBytes, naturalCol)
	v := &View{
		rom:     rom,
		Address: address,
		DType:   dtype,
		Rows:    axis{Count: rows, Stride: rStride, Reverse: rRev},
	}
	if cols > 0 {
		v.Cols = axis{Count: cols, Stride: cStride, Reverse: cRev}
	}
	if err := v.checkRange(); err != nil {
		return nil, err
	}
	return v, nil
}

func resolveStride(requested, natural int) (stride int, reverse bool) {
	if requested == 0 {
		return natural, false
	}
	if requested < 0 {
		return -requested, true
	}
	return requested, false
}

// NumCols reports the column count, 1 for scalars and plain vectors.
func (v *View) NumCols() int {
	if v.Cols.Count == 0 {
		return 1
	}
	return v.Cols.Count
}

// NumRows reports the row count.
func (v *View) NumRows() int { return v.Rows.Count }

// Len reports the total element count.
func (v *View) Len() int { return v.NumRows() * v.NumCols() }

func (v *View) elemOffset(row, col int) int {
	return v.Address + v.Rows.offset(row) + v.Cols.offset(col)
}

func (v *View) checkRange() error {
	lo, hi := v.Address, v.Address
	for _, r := range []int{0, v.Rows.Count - 1} {
		for _, c := range []int{0, v.NumCols() - 1} {
			off := v.elemOffset(r, c)
			if off < lo {
				lo = off
			}
			if off+v.DType.ByteWidth > hi {
				hi = off + v.DType.ByteWidth
			}
		}
	}
	if lo < 0 || hi > v.rom.Size() {
		return &RangeError{Offset: lo, Length: hi - lo, RomSize: v.rom.Size()}
	}
	return nil
}

// Read decodes every element of the view, in row-major order, into a flat
// slice of raw (pre-conversion) float64 values.
func (v *View) Read() []float64 {
	out := make([]float64, 0, v.Len())
	for r := 0; r < v.NumRows(); r++ {
		for c := 0; c < v.NumCols(); c++ {
			off := v.elemOffset(r, c)
			out = append(out, v.DType.decode(v.rom.Data[off:off+v.DType.ByteWidth]))
		}
	}
	return out
}

// ReadAt decodes the single element at (row, col). col is ignored for
// scalars/vectors (pass 0).
func (v *View) ReadAt(row, col int) float64 {
	off := v.elemOffset(row, col)
	return v.DType.decode(v.rom.Data[off : off+v.DType.ByteWidth])
}

// WriteRaw encodes data (row-major, len(data) == v.Len()) back into the ROM.
// Every value is checked against the storage dtype's representable range
// first; if any value is out of range, NO bytes are written and a
// *BoundsError* is returned carrying a per-element violation mask so the
// caller can report exactly which cells to correct.
func (v *View) WriteRaw(data []float64) error {
	if len(data) != v.Len() {
		return &ShapeError{Msg: "data length does not match view shape"}
	}
	lo, hi := v.DType.Bounds()
	mask := make([]bool, len(data))
	violated := false
	for i, x := range data {
		if x < lo || x > hi {
			mask[i] = true
			violated = true
		}
	}
	if violated {
		return &BoundsError{Lo: lo, Hi: hi, Values: append([]float64(nil), data...), Mask: mask}
	}
	i := 0
	for r := 0; r < v.NumRows(); r++ {
		for c := 0; c < v.NumCols(); c++ {
			off := v.elemOffset(r, c)
			v.DType.encode(v.rom.Data[off:off+v.DType.ByteWidth], data[i])
			i++
		}
	}
	return nil
}

// WriteAtRaw encodes a single raw value at (row, col), bypassing the
// whole-view bounds check (callers that already validated logical bounds
// through a Math's forward function, e.g. a table cell write, use this).
func (v *View) WriteAtRaw(row, col int, x float64) error {
	lo, hi := v.DType.Bounds()
	if x < lo || x > hi {
		return &BoundsError{Lo: lo, Hi: hi, Values: []float64{x}, Mask: []bool{true}}
	}
	off := v.elemOffset(row, col)
	v.DType.encode(v.rom.Data[off:off+v.DType.ByteWidth], x)
	return nil
}
