package classfile

import (
	"fmt"
	"math"
)

// ConstantPoolEntry is one slot of the constant pool. The set of
// implementations is closed: every kind lives in this file.
type ConstantPoolEntry interface {
	Tag() ConstantTag
	constant()
}

type ConstantUtf8Info struct {
	Length uint16
	Bytes  []byte
	Value  string
}

type ConstantIntegerInfo struct {
	Value int32
}

type ConstantFloatInfo struct {
	Value float32
}

type ConstantLongInfo struct {
	Value int64
}

type ConstantDoubleInfo struct {
	Value float64
}

type ConstantClassInfo struct {
	NameIndex uint16
}

type ConstantStringInfo struct {
	StringIndex uint16
}

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantModuleInfo struct {
	NameIndex uint16
}

type ConstantPackageInfo struct {
	NameIndex uint16
}

// ConstantPlaceholder is a tag that carries no payload (tags 2, 13 and 14).
type ConstantPlaceholder struct {
	RawTag ConstantTag
}

// ConstantUnusable fills the slot that follows a Long or Double when the
// pool is indexed canonically. It is never read from the file.
type ConstantUnusable struct{}

func (*ConstantUtf8Info) Tag() ConstantTag               { return ConstantUtf8 }
func (*ConstantIntegerInfo) Tag() ConstantTag            { return ConstantInteger }
func (*ConstantFloatInfo) Tag() ConstantTag              { return ConstantFloat }
func (*ConstantLongInfo) Tag() ConstantTag               { return ConstantLong }
func (*ConstantDoubleInfo) Tag() ConstantTag             { return ConstantDouble }
func (*ConstantClassInfo) Tag() ConstantTag              { return ConstantClass }
func (*ConstantStringInfo) Tag() ConstantTag             { return ConstantString }
func (*ConstantFieldrefInfo) Tag() ConstantTag           { return ConstantFieldref }
func (*ConstantMethodrefInfo) Tag() ConstantTag          { return ConstantMethodref }
func (*ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }
func (*ConstantNameAndTypeInfo) Tag() ConstantTag        { return ConstantNameAndType }
func (*ConstantMethodHandleInfo) Tag() ConstantTag       { return ConstantMethodHandle }
func (*ConstantMethodTypeInfo) Tag() ConstantTag         { return ConstantMethodType }
func (*ConstantDynamicInfo) Tag() ConstantTag            { return ConstantDynamic }
func (*ConstantInvokeDynamicInfo) Tag() ConstantTag      { return ConstantInvokeDynamic }
func (*ConstantModuleInfo) Tag() ConstantTag             { return ConstantModule }
func (*ConstantPackageInfo) Tag() ConstantTag            { return ConstantPackage }
func (c *ConstantPlaceholder) Tag() ConstantTag          { return c.RawTag }
func (*ConstantUnusable) Tag() ConstantTag               { return 0 }

func (*ConstantUtf8Info) constant()               {}
func (*ConstantIntegerInfo) constant()            {}
func (*ConstantFloatInfo) constant()              {}
func (*ConstantLongInfo) constant()               {}
func (*ConstantDoubleInfo) constant()             {}
func (*ConstantClassInfo) constant()              {}
func (*ConstantStringInfo) constant()             {}
func (*ConstantFieldrefInfo) constant()           {}
func (*ConstantMethodrefInfo) constant()          {}
func (*ConstantInterfaceMethodrefInfo) constant() {}
func (*ConstantNameAndTypeInfo) constant()        {}
func (*ConstantMethodHandleInfo) constant()       {}
func (*ConstantMethodTypeInfo) constant()         {}
func (*ConstantDynamicInfo) constant()            {}
func (*ConstantInvokeDynamicInfo) constant()      {}
func (*ConstantModuleInfo) constant()             {}
func (*ConstantPackageInfo) constant()            {}
func (*ConstantPlaceholder) constant()            {}
func (*ConstantUnusable) constant()               {}

// wide reports whether the entry reserves the following pool slot.
func wide(e ConstantPoolEntry) bool {
	switch e.(type) {
	case *ConstantLongInfo, *ConstantDoubleInfo:
		return true
	}
	return false
}

// decodeConstant decodes the entry whose tag byte is data[0] and returns it
// together with the number of bytes it occupies, tag included.
func decodeConstant(data []byte) (ConstantPoolEntry, int, error) {
	r := newReader(data)
	b, err := r.U1()
	if err != nil {
		return nil, 0, err
	}
	tag := ConstantTag(b)

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		entry, err = decodeUtf8(r)
	case ConstantInteger:
		var v uint32
		v, err = r.U4()
		entry = &ConstantIntegerInfo{Value: int32(v)}
	case ConstantFloat:
		var v uint32
		v, err = r.U4()
		entry = &ConstantFloatInfo{Value: math.Float32frombits(v)}
	case ConstantLong:
		var v uint64
		v, err = r.U8()
		entry = &ConstantLongInfo{Value: int64(v)}
	case ConstantDouble:
		var v uint64
		v, err = r.U8()
		entry = &ConstantDoubleInfo{Value: math.Float64frombits(v)}
	case ConstantClass:
		var v uint16
		v, err = r.U2()
		entry = &ConstantClassInfo{NameIndex: v}
	case ConstantString:
		var v uint16
		v, err = r.U2()
		entry = &ConstantStringInfo{StringIndex: v}
	case ConstantFieldref:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantFieldrefInfo{ClassIndex: a, NameAndTypeIndex: b}
	case ConstantMethodref:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantMethodrefInfo{ClassIndex: a, NameAndTypeIndex: b}
	case ConstantInterfaceMethodref:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantInterfaceMethodrefInfo{ClassIndex: a, NameAndTypeIndex: b}
	case ConstantNameAndType:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantNameAndTypeInfo{NameIndex: a, DescriptorIndex: b}
	case ConstantMethodHandle:
		var kind uint8
		var index uint16
		if kind, err = r.U1(); err == nil {
			index, err = r.U2()
		}
		entry = &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(kind), ReferenceIndex: index}
	case ConstantMethodType:
		var v uint16
		v, err = r.U2()
		entry = &ConstantMethodTypeInfo{DescriptorIndex: v}
	case ConstantDynamic:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantDynamicInfo{BootstrapMethodAttrIndex: a, NameAndTypeIndex: b}
	case ConstantInvokeDynamic:
		var a, b uint16
		a, b, err = readPair(r)
		entry = &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: a, NameAndTypeIndex: b}
	case ConstantModule:
		var v uint16
		v, err = r.U2()
		entry = &ConstantModuleInfo{NameIndex: v}
	case ConstantPackage:
		var v uint16
		v, err = r.U2()
		entry = &ConstantPackageInfo{NameIndex: v}
	case ConstantReserved2, ConstantReserved13, ConstantReserved14:
		entry = &ConstantPlaceholder{RawTag: tag}
	default:
		return nil, 0, &DecodeError{
			Detail: fmt.Sprintf("tag %d", uint8(tag)),
			Err:    ErrInvalidConstantTag,
		}
	}
	if err != nil {
		return nil, 0, err
	}
	return entry, r.Offset(), nil
}

func decodeUtf8(r *reader) (*ConstantUtf8Info, error) {
	length, err := r.U2()
	if err != nil {
		return nil, err
	}
	data, err := r.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	return &ConstantUtf8Info{Length: length, Bytes: data, Value: decodeModifiedUtf8(data)}, nil
}

func readPair(r *reader) (uint16, uint16, error) {
	a, err := r.U2()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.U2()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// ConstantPool holds the materialized entries. Slot 0 of the file format is
// not stored, so file index i lives at ConstantPool[i-1].
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at the 1-based file index, or nil.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) Utf8(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

// IsUtf8 reports whether index names a Utf8 entry whose text equals s.
func (cp ConstantPool) IsUtf8(index uint16, s string) bool {
	entry, ok := cp.Entry(index).(*ConstantUtf8Info)
	return ok && entry.Value == s
}

func (cp ConstantPool) ClassName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantClassInfo); ok {
		return cp.Utf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantNameAndTypeInfo); ok {
		return cp.Utf8(entry.NameIndex), cp.Utf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) StringValue(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantStringInfo); ok {
		return cp.Utf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) Integer(index uint16) (int32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantIntegerInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Float(index uint16) (float32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantFloatInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Long(index uint16) (int64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantLongInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) Double(index uint16) (float64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantDoubleInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

// MemberRef resolves a Fieldref, Methodref or InterfaceMethodref.
func (cp ConstantPool) MemberRef(index uint16) (className, name, descriptor string) {
	var classIndex, natIndex uint16
	switch entry := cp.Entry(index).(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	default:
		return "", "", ""
	}
	name, descriptor = cp.NameAndType(natIndex)
	return cp.ClassName(classIndex), name, descriptor
}

func (cp ConstantPool) MethodType(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantMethodTypeInfo); ok {
		return cp.Utf8(entry.DescriptorIndex)
	}
	return ""
}

// Describe renders the entry at index the way javap prints constants.
func (cp ConstantPool) Describe(index uint16) string {
	switch entry := cp.Entry(index).(type) {
	case nil:
		return ""
	case *ConstantUtf8Info:
		return entry.Value
	case *ConstantIntegerInfo:
		return fmt.Sprint(entry.Value)
	case *ConstantFloatInfo:
		return fmt.Sprintf("%gf", entry.Value)
	case *ConstantLongInfo:
		return fmt.Sprintf("%dl", entry.Value)
	case *ConstantDoubleInfo:
		return fmt.Sprintf("%gd", entry.Value)
	case *ConstantClassInfo:
		return cp.Utf8(entry.NameIndex)
	case *ConstantStringInfo:
		return cp.Utf8(entry.StringIndex)
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		class, name, desc := cp.MemberRef(index)
		return class + "." + name + ":" + desc
	case *ConstantNameAndTypeInfo:
		name, desc := cp.NameAndType(index)
		return name + ":" + desc
	case *ConstantMethodHandleInfo:
		return entry.ReferenceKind.String() + " " + cp.Describe(entry.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		return cp.Utf8(entry.DescriptorIndex)
	case *ConstantDynamicInfo:
		name, desc := cp.NameAndType(entry.NameAndTypeIndex)
		return fmt.Sprintf("#%d:%s:%s", entry.BootstrapMethodAttrIndex, name, desc)
	case *ConstantInvokeDynamicInfo:
		name, desc := cp.NameAndType(entry.NameAndTypeIndex)
		return fmt.Sprintf("#%d:%s:%s", entry.BootstrapMethodAttrIndex, name, desc)
	case *ConstantModuleInfo:
		return cp.Utf8(entry.NameIndex)
	case *ConstantPackageInfo:
		return cp.Utf8(entry.NameIndex)
	default:
		return ""
	}
}
