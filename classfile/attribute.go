package classfile

import "fmt"

// AttributeInfo is an attribute as it appears in the file: a name index and
// an opaque payload of exactly Length bytes. The payload is not interpreted
// while decoding; the typed views below decode it on demand.
type AttributeInfo struct {
	NameIndex uint16
	Length    uint32
	Info      []byte
}

func (a *AttributeInfo) Name(cp ConstantPool) string {
	return cp.Utf8(a.NameIndex)
}

// decodeAttribute decodes one attribute starting at data[0] and returns the
// number of bytes it occupies (6 + Length).
func decodeAttribute(data []byte) (AttributeInfo, int, error) {
	r := newReader(data)
	nameIndex, err := r.U2()
	if err != nil {
		return AttributeInfo{}, 0, err
	}
	length, err := r.U4()
	if err != nil {
		return AttributeInfo{}, 0, err
	}
	if uint64(length) > uint64(r.Remaining()) {
		return AttributeInfo{}, 0, &DecodeError{
			Offset: r.Offset(),
			Detail: fmt.Sprintf("attribute length %d exceeds %d remaining bytes", length, r.Remaining()),
			Err:    ErrOutOfBounds,
		}
	}
	info, err := r.Bytes(int(length))
	if err != nil {
		return AttributeInfo{}, 0, err
	}
	return AttributeInfo{NameIndex: nameIndex, Length: length, Info: info}, r.Offset(), nil
}

// decodeAttributes decodes exactly count attributes laid out back to back.
func decodeAttributes(data []byte, count uint16) ([]AttributeInfo, int, error) {
	attrs := make([]AttributeInfo, count)
	off := 0
	for i := range attrs {
		attr, n, err := decodeAttribute(data[off:])
		if err != nil {
			return nil, 0, within(err, "", off, fmt.Sprintf("attribute[%d]", i))
		}
		attrs[i] = attr
		off += n
	}
	return attrs, off, nil
}

// findAttribute returns the first attribute whose name resolves to name.
func findAttribute(attrs []AttributeInfo, cp ConstantPool, name string) *AttributeInfo {
	for i := range attrs {
		if cp.IsUtf8(attrs[i].NameIndex, name) {
			return &attrs[i]
		}
	}
	return nil
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type BootstrapMethodsAttribute struct {
	BootstrapMethods []BootstrapMethod
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

// view decodes a typed attribute payload and reports errors relative to it.
func view[T any](a *AttributeInfo, kind string, decode func(r *reader) (T, error)) (T, error) {
	v, err := decode(newReader(a.Info))
	if err != nil {
		var zero T
		return zero, within(err, "", 0, kind)
	}
	return v, nil
}

func (a *AttributeInfo) AsSourceFile() (*SourceFileAttribute, error) {
	return view(a, "SourceFile", func(r *reader) (*SourceFileAttribute, error) {
		idx, err := r.U2()
		return &SourceFileAttribute{SourceFileIndex: idx}, err
	})
}

func (a *AttributeInfo) AsConstantValue() (*ConstantValueAttribute, error) {
	return view(a, "ConstantValue", func(r *reader) (*ConstantValueAttribute, error) {
		idx, err := r.U2()
		return &ConstantValueAttribute{ConstantValueIndex: idx}, err
	})
}

func (a *AttributeInfo) AsSignature() (*SignatureAttribute, error) {
	return view(a, "Signature", func(r *reader) (*SignatureAttribute, error) {
		idx, err := r.U2()
		return &SignatureAttribute{SignatureIndex: idx}, err
	})
}

func (a *AttributeInfo) AsExceptions() (*ExceptionsAttribute, error) {
	return view(a, "Exceptions", func(r *reader) (*ExceptionsAttribute, error) {
		count, err := r.U2()
		if err != nil {
			return nil, err
		}
		table, err := r.u2s(count)
		if err != nil {
			return nil, err
		}
		return &ExceptionsAttribute{ExceptionIndexTable: table}, nil
	})
}

func (a *AttributeInfo) AsLineNumberTable() (*LineNumberTableAttribute, error) {
	return view(a, "LineNumberTable", func(r *reader) (*LineNumberTableAttribute, error) {
		count, err := r.U2()
		if err != nil {
			return nil, err
		}
		lnt := &LineNumberTableAttribute{LineNumberTable: make([]LineNumberEntry, count)}
		for i := range lnt.LineNumberTable {
			pc, line, err := readPair(r)
			if err != nil {
				return nil, within(err, "", 0, fmt.Sprintf("entry[%d]", i))
			}
			lnt.LineNumberTable[i] = LineNumberEntry{StartPC: pc, LineNumber: line}
		}
		return lnt, nil
	})
}

func (a *AttributeInfo) AsLocalVariableTable() (*LocalVariableTableAttribute, error) {
	return view(a, "LocalVariableTable", func(r *reader) (*LocalVariableTableAttribute, error) {
		count, err := r.U2()
		if err != nil {
			return nil, err
		}
		lvt := &LocalVariableTableAttribute{LocalVariableTable: make([]LocalVariableEntry, count)}
		for i := range lvt.LocalVariableTable {
			raw, err := r.u2s(5)
			if err != nil {
				return nil, within(err, "", 0, fmt.Sprintf("entry[%d]", i))
			}
			lvt.LocalVariableTable[i] = LocalVariableEntry{
				StartPC:         raw[0],
				Length:          raw[1],
				NameIndex:       raw[2],
				DescriptorIndex: raw[3],
				Index:           raw[4],
			}
		}
		return lvt, nil
	})
}

func (a *AttributeInfo) AsInnerClasses() (*InnerClassesAttribute, error) {
	return view(a, "InnerClasses", func(r *reader) (*InnerClassesAttribute, error) {
		count, err := r.U2()
		if err != nil {
			return nil, err
		}
		ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, count)}
		for i := range ic.Classes {
			raw, err := r.u2s(4)
			if err != nil {
				return nil, within(err, "", 0, fmt.Sprintf("class[%d]", i))
			}
			ic.Classes[i] = InnerClassEntry{
				InnerClassInfoIndex:   raw[0],
				OuterClassInfoIndex:   raw[1],
				InnerNameIndex:        raw[2],
				InnerClassAccessFlags: AccessFlags(raw[3]),
			}
		}
		return ic, nil
	})
}

func (a *AttributeInfo) AsBootstrapMethods() (*BootstrapMethodsAttribute, error) {
	return view(a, "BootstrapMethods", func(r *reader) (*BootstrapMethodsAttribute, error) {
		count, err := r.U2()
		if err != nil {
			return nil, err
		}
		bm := &BootstrapMethodsAttribute{BootstrapMethods: make([]BootstrapMethod, count)}
		for i := range bm.BootstrapMethods {
			ref, nargs, err := readPair(r)
			if err != nil {
				return nil, within(err, "", 0, fmt.Sprintf("method[%d]", i))
			}
			args, err := r.u2s(nargs)
			if err != nil {
				return nil, within(err, "", 0, fmt.Sprintf("method[%d]", i))
			}
			bm.BootstrapMethods[i] = BootstrapMethod{BootstrapMethodRef: ref, BootstrapArguments: args}
		}
		return bm, nil
	})
}
