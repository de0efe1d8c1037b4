package classfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeAttributes(t *testing.T) {
	var data buf
	data.raw(attributeBytes(1, []byte{0xAA, 0xBB}))
	data.raw(attributeBytes(2, nil))
	data.u1(0x99)

	attrs, n, err := decodeAttributes(data, 2)
	if err != nil {
		t.Fatalf("decodeAttributes() error = %v", err)
	}
	if n != 8+6 {
		t.Errorf("consumed = %d, want 14", n)
	}
	want := []AttributeInfo{
		{NameIndex: 1, Length: 2, Info: []byte{0xAA, 0xBB}},
		{NameIndex: 2, Length: 0, Info: []byte{}},
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAttributesOverrun(t *testing.T) {
	var data buf
	data.raw(attributeBytes(1, []byte{0xAA}))
	data.u2(2).u4(10).u1(0)

	_, _, err := decodeAttributes(data, 2)
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("decodeAttributes() error = %v", err)
	}
	if diff := cmp.Diff([]string{"attribute[1]"}, de.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if de.Offset != 7+6 {
		t.Errorf("Offset = %d, want 13", de.Offset)
	}
}

func TestAttributeViews(t *testing.T) {
	t.Run("Exceptions", func(t *testing.T) {
		var p buf
		p.u2(2, 7, 9)
		got, err := (&AttributeInfo{Info: p}).AsExceptions()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]uint16{7, 9}, got.ExceptionIndexTable); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("LineNumberTable", func(t *testing.T) {
		var p buf
		p.u2(2, 0, 10, 4, 11)
		got, err := (&AttributeInfo{Info: p}).AsLineNumberTable()
		if err != nil {
			t.Fatal(err)
		}
		want := []LineNumberEntry{{StartPC: 0, LineNumber: 10}, {StartPC: 4, LineNumber: 11}}
		if diff := cmp.Diff(want, got.LineNumberTable); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("LocalVariableTable", func(t *testing.T) {
		var p buf
		p.u2(1, 0, 5, 3, 4, 0)
		got, err := (&AttributeInfo{Info: p}).AsLocalVariableTable()
		if err != nil {
			t.Fatal(err)
		}
		want := []LocalVariableEntry{{StartPC: 0, Length: 5, NameIndex: 3, DescriptorIndex: 4, Index: 0}}
		if diff := cmp.Diff(want, got.LocalVariableTable); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("InnerClasses", func(t *testing.T) {
		var p buf
		p.u2(1, 2, 3, 4, uint16(AccPublic|AccStatic))
		got, err := (&AttributeInfo{Info: p}).AsInnerClasses()
		if err != nil {
			t.Fatal(err)
		}
		want := []InnerClassEntry{{InnerClassInfoIndex: 2, OuterClassInfoIndex: 3, InnerNameIndex: 4, InnerClassAccessFlags: AccPublic | AccStatic}}
		if diff := cmp.Diff(want, got.Classes); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("BootstrapMethods", func(t *testing.T) {
		var p buf
		p.u2(2, 5, 2, 6, 7, 8, 0)
		got, err := (&AttributeInfo{Info: p}).AsBootstrapMethods()
		if err != nil {
			t.Fatal(err)
		}
		want := []BootstrapMethod{
			{BootstrapMethodRef: 5, BootstrapArguments: []uint16{6, 7}},
			{BootstrapMethodRef: 8, BootstrapArguments: []uint16{}},
		}
		if diff := cmp.Diff(want, got.BootstrapMethods); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		var p buf
		p.u2(3, 0, 10)
		_, err := (&AttributeInfo{Info: p}).AsLineNumberTable()
		var de *DecodeError
		if !errors.As(err, &de) || !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("AsLineNumberTable() error = %v", err)
		}
		if diff := cmp.Diff([]string{"LineNumberTable", "entry[1]"}, de.Path); diff != "" {
			t.Errorf("Path mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDecodeCode(t *testing.T) {
	handlers := []ExceptionTableEntry{{StartPC: 0, EndPC: 4, HandlerPC: 5, CatchType: 3}}
	var lnt buf
	lnt.u2(1, 0, 42)
	payload := codePayload(3, 2, []byte{0x03, 0x3C, 0xB1, 0x00}, handlers, attributeBytes(9, lnt))
	payload = append(payload, 0x00, 0x00)

	code, err := DecodeCode(payload)
	if err != nil {
		t.Fatalf("DecodeCode() error = %v", err)
	}
	if code.MaxStack != 3 || code.MaxLocals != 2 || len(code.Code) != 4 {
		t.Errorf("header = %d/%d/%d", code.MaxStack, code.MaxLocals, len(code.Code))
	}
	if diff := cmp.Diff(handlers, code.ExceptionTable); diff != "" {
		t.Errorf("ExceptionTable mismatch (-want +got):\n%s", diff)
	}
	if len(code.Attributes) != 1 || code.Attributes[0].NameIndex != 9 {
		t.Fatalf("Attributes = %+v", code.Attributes)
	}
	if code.Unused != 2 {
		t.Errorf("Unused = %d, want 2", code.Unused)
	}

	lines, err := code.Attributes[0].AsLineNumberTable()
	if err != nil {
		t.Fatal(err)
	}
	if lines.LineNumberTable[0].LineNumber != 42 {
		t.Errorf("LineNumber = %d, want 42", lines.LineNumberTable[0].LineNumber)
	}
}

func TestDecodeCodeExceptionTableTruncated(t *testing.T) {
	var p buf
	p.u2(1, 1).u4(1).u1(0xB1).u2(2).u2(0, 1, 2, 0)

	_, err := DecodeCode(p)
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("DecodeCode() error = %v", err)
	}
	if diff := cmp.Diff([]string{"exception_table[1]"}, de.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if de.Offset != 19 {
		t.Errorf("Offset = %d, want 19", de.Offset)
	}
}
