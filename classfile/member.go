package classfile

import "fmt"

// member is the record shared by fields and methods. FieldInfo and
// MethodInfo have the same fields so either can be converted from it.
type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// decodeMember decodes one field_info or method_info record and returns the
// number of bytes it occupies.
func decodeMember(data []byte) (member, int, error) {
	r := newReader(data)
	raw, err := r.u2s(4)
	if err != nil {
		return member{}, 0, err
	}
	m := member{
		AccessFlags:     AccessFlags(raw[0]),
		NameIndex:       raw[1],
		DescriptorIndex: raw[2],
	}
	attrs, n, err := decodeAttributes(data[r.Offset():], raw[3])
	if err != nil {
		return member{}, 0, within(err, "", r.Offset(), "")
	}
	m.Attributes = attrs
	return m, r.Offset() + n, nil
}

// decodeMembers decodes count consecutive members, labelling errors with
// kind (e.g. "field").
func decodeMembers(data []byte, count uint16, kind string, t Tracer) ([]member, int, error) {
	members := make([]member, count)
	off := 0
	for i := range members {
		m, n, err := decodeMember(data[off:])
		if err != nil {
			return nil, 0, within(err, "", off, fmt.Sprintf("%s[%d]", kind, i))
		}
		t.Debug("member decoded",
			"kind", kind, "index", i, "offset", off, "length", n,
			"access_flags", m.AccessFlags.String(),
			"name_index", m.NameIndex, "descriptor_index", m.DescriptorIndex,
			"attributes", len(m.Attributes))
		members[i] = m
		off += n
	}
	return members, off, nil
}

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string {
	return cp.Utf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) string {
	return cp.Utf8(f.DescriptorIndex)
}

func (f *FieldInfo) Attribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(f.Attributes, cp, name)
}

func (f *FieldInfo) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfo) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfo) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfo) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfo) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfo) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.Utf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.Utf8(m.DescriptorIndex)
}

func (m *MethodInfo) Attribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(m.Attributes, cp, name)
}

func (m *MethodInfo) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *MethodInfo) IsPrivate() bool   { return m.AccessFlags.IsPrivate() }
func (m *MethodInfo) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MethodInfo) IsAbstract() bool  { return m.AccessFlags.IsAbstract() }
func (m *MethodInfo) IsNative() bool    { return m.AccessFlags.IsNative() }
func (m *MethodInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}
