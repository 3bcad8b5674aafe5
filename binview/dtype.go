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

import "math"

// Type-flag bits as carried by an EMBEDDEDDATA's mmedtypeflags attribute.
const (
	FlagSigned       uint32 = 0x01
	FlagLittleEndian uint32 = 0x02
	FlagColumnMajor  uint32 = 0x04
	FlagFloat        uint32 = 0x10000
)

// DType describes how a fixed-width element is laid out and interpreted: its
// byte width and whether it is signed, little-endian, or IEEE-754 floating
// point. It has no notion of shape; View pairs a DType with a shape and
// strides.
type DType struct {
	ByteWidth    int
	Signed       bool
	LittleEndian bool
	Float        bool
}

// NewDType derives a DType from an element bit width and the type-flag bits
// defined above. Bit widths are required to be byte-aligned.
func NewDType(bitWidth int, flags uint32) DType {
	return DType{
		ByteWidth:    bitWidth / 8,
		Signed:       flags&FlagSigned != 0,
		LittleEndian: flags&FlagLittleEndian != 0,
		Float:        flags&FlagFloat != 0,
	}
}

// Bounds returns the representable [lo, hi] range of raw values this dtype
// can hold, prior to any conversion expression being applied. Floating-point
// dtypes are treated as unbounded for write-checking purposes.
func (d DType) Bounds() (lo, hi float64) {
	if d.Float {
		return math.Inf(-1), math.Inf(1)
	}
	bits := uint(d.ByteWidth * 8)
	if d.Signed {
		hi = float64(int64(1)<<(bits-1) - 1)
		lo = -float64(int64(1) << (bits - 1))
		return lo, hi
	}
	return 0, float64(uint64(1)<<bits - 1)
}

// decode reads one element from b (exactly d.ByteWidth bytes) and returns its
// raw numeric value, before any conversion expression is applied.
func (d DType) decode(b []byte) float64 {
	order := d.byteOrder(b)
	if d.Float {
		switch d.ByteWidth {
		case 4:
			return float64(math.Float32frombits(uint32(order)))
		case 8:
			return math.Float64frombits(order)
		}
	}
	if d.Signed {
		return float64(signExtend(order, d.ByteWidth))
	}
	return float64(order)
}

// encode writes v's raw numeric value into b (exactly d.ByteWidth bytes).
func (d DType) encode(b []byte, v float64) {
	var bits uint64
	if d.Float {
		switch d.ByteWidth {
		case 4:
			bits = uint64(math.Float32bits(float32(v)))
		case 8:
			bits = math.Float64bits(v)
		}
	} else {
		bits = uint64(int64(v))
	}
	d.putByteOrder(b, bits)
}

// byteOrder assembles b's bytes into a uint64 honoring LittleEndian.
func (d DType) byteOrder(b []byte) uint64 {
	var v uint64
	if d.LittleEndian {
		for i := d.ByteWidth - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
	} else {
		for i := 0; i < d.ByteWidth; i++ {
			v = v<<8 | uint64(b[i])
		}
	}
	return v
}

func (d DType) putByteOrder(b []byte, v uint64) {
	if d.LittleEndian {
		for i := 0; i < d.ByteWidth; i++ {
			b[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := d.ByteWidth - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func signExtend(v uint64, byteWidth int) int64 {
	bits := uint(byteWidth * 8)
	shift := 64 - bits
	return int64(v<<shift) >> shift
}
