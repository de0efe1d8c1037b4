package classfile

import (
	"errors"
	"testing"
)

func TestReaderBigEndian(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F})

	if v, err := r.U1(); err != nil || v != 0x01 {
		t.Errorf("U1() = %#x, %v", v, err)
	}
	if v, err := r.U2(); err != nil || v != 0x0203 {
		t.Errorf("U2() = %#x, %v", v, err)
	}
	if v, err := r.U4(); err != nil || v != 0x04050607 {
		t.Errorf("U4() = %#x, %v", v, err)
	}
	if v, err := r.U8(); err != nil || v != 0x08090A0B0C0D0E0F {
		t.Errorf("U8() = %#x, %v", v, err)
	}
	if r.Remaining() != 0 || r.Offset() != r.Len() {
		t.Errorf("Offset() = %d, Remaining() = %d", r.Offset(), r.Remaining())
	}
}

func TestReaderFailedReadDoesNotAdvance(t *testing.T) {
	r := newReader([]byte{0xAA, 0xBB, 0xCC})
	if _, err := r.U1(); err != nil {
		t.Fatal(err)
	}

	reads := map[string]func() error{
		"U4":    func() error { _, err := r.U4(); return err },
		"U8":    func() error { _, err := r.U8(); return err },
		"Bytes": func() error { _, err := r.Bytes(3); return err },
		"u2s":   func() error { _, err := r.u2s(2); return err },
	}
	for name, read := range reads {
		err := read()
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("%s() error = %v, want ErrOutOfBounds", name, err)
		}
		var de *DecodeError
		if errors.As(err, &de) && de.Offset != 1 {
			t.Errorf("%s() error offset = %d, want 1", name, de.Offset)
		}
		if r.Offset() != 1 {
			t.Fatalf("%s() moved the cursor to %d", name, r.Offset())
		}
	}

	if v, err := r.U2(); err != nil || v != 0xBBCC {
		t.Errorf("U2() = %#x, %v", v, err)
	}
}

func TestReaderBytesIsCapped(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := newReader(data)
	b, err := r.Bytes(2)
	if err != nil {
		t.Fatal(err)
	}
	_ = append(b, 0xFF)
	if data[2] != 3 {
		t.Errorf("append to Bytes() result overwrote input: %v", data)
	}
	if _, err := r.Bytes(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Bytes(-1) error = %v", err)
	}
}
