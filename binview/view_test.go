package binview

import "testing"

func romOf(b ...byte) *ROM { return &ROM{Data: b} }

func TestScalarSignedRead(t *testing.T) {
	rom := romOf(0x00, 0x2A, 0x00) // 0x2A = 42
	v, err := NewView(rom, 1, NewDType(8, FlagSigned), 1, 0, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.ReadAt(0, 0); got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestScalarSignedWriteNegative(t *testing.T) {
	rom := romOf(0x00, 0x2A, 0x00)
	v, err := NewView(rom, 1, NewDType(8, FlagSigned), 1, 0, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.WriteRaw([]float64{-5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rom.Data[1] != 0xFB {
		t.Errorf("got byte 0x%02X, want 0xFB", rom.Data[1])
	}
}

func TestLittleEndianVsBigEndian(t *testing.T) {
	rom := romOf(0x01, 0x00) // little-endian: 1; big-endian: 256
	le, _ := NewView(rom, 0, NewDType(16, FlagLittleEndian), 1, 0, 0, 0, false)
	be, _ := NewView(rom, 0, NewDType(16, 0), 1, 0, 0, 0, false)
	if got := le.ReadAt(0, 0); got != 1 {
		t.Errorf("little-endian: got %v, want 1", got)
	}
	if got := be.ReadAt(0, 0); got != 256 {
		t.Errorf("big-endian: got %v, want 256", got)
	}
}

func TestUnsignedBoundsViolation(t *testing.T) {
	rom := romOf(0x00)
	v, err := NewView(rom, 0, NewDType(8, 0), 1, 0, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	err = v.WriteRaw([]float64{400})
	be, ok := err.(*BoundsError)
	if !ok {
		t.Fatalf("expected BoundsError, got %v", err)
	}
	if be.Hi != 255 || !be.Mask[0] {
		t.Errorf("got %#v", be)
	}
	// rejected write must not have mutated the ROM.
	if rom.Data[0] != 0 {
		t.Errorf("ROM mutated on a rejected write: %#v", rom.Data)
	}
}

func TestRowMajorVsColumnMajorNaturalStride(t *testing.T) {
	// 2x3 matrix of bytes 0..5, row-major means row stride 3*1, col stride 1.
	data := []byte{0, 1, 2, 3, 4, 5}
	rowMajor, err := NewView(romOf(data...), 0, NewDType(8, 0), 2, 3, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	got := rowMajor.Read()
	want := []float64{0, 1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row-major: got %v, want %v", got, want)
		}
	}

	// Same bytes interpreted column-major: natural col stride becomes
	// rows*elemSize, row stride elemSize — element (r,c) sits at c*rows+r.
	colMajor, err := NewView(romOf(data...), 0, NewDType(8, 0), 2, 3, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if v := colMajor.ReadAt(0, 1); v != 2 {
		t.Errorf("column-major (0,1): got %v, want 2", v)
	}
	if v := colMajor.ReadAt(1, 0); v != 1 {
		t.Errorf("column-major (1,0): got %v, want 1", v)
	}
}

func TestNegativeStrideIsExplicitReverse(t *testing.T) {
	// 4-element vector [10, 20, 30, 40]; negative row stride should read it
	// back to front: base + (N-1-i)*|s|.
	rom := &ROM{Data: []byte{10, 20, 30, 40}}
	v, err := NewView(rom, 0, NewDType(8, 0), 4, 0, -1, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	got := v.Read()
	want := []float64{40, 30, 20, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestOutOfRangeAddressRejected(t *testing.T) {
	rom := romOf(0, 1, 2)
	_, err := NewView(rom, 2, NewDType(16, 0), 1, 0, 0, 0, false)
	if _, ok := err.(*RangeError); !ok {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	rom := &ROM{Data: make([]byte, 4)}
	v, err := NewView(rom, 0, NewDType(32, FlagFloat|FlagLittleEndian), 1, 0, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.WriteRaw([]float64{3.5}); err != nil {
		t.Fatal(err)
	}
	if got := v.ReadAt(0, 0); got != 3.5 {
		t.Errorf("got %v, want 3.5", got)
	}
}
