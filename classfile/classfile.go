package classfile

type ClassFile struct {
	Magic             uint32
	MinorVersion      uint16
	MajorVersion      uint16
	ConstantPoolCount uint16
	ConstantPool      ConstantPool
	AccessFlags       AccessFlags
	ThisClass         uint16
	SuperClass        uint16
	Interfaces        []uint16
	Fields            []FieldInfo
	Methods           []MethodInfo
	Attributes        []AttributeInfo

	// Code holds the resolved Code attribute of every method that has one,
	// in method order.
	Code []MethodCode

	// Overlay is whatever follows the last class attribute. It is nil for a
	// well-formed file.
	Overlay []byte

	// Size is the length of the decoded buffer, overlay included.
	Size int
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.ClassName(idx)
	}
	return names
}

func (cf *ClassFile) JavaVersion() string {
	return JavaVersion(cf.MajorVersion)
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }
func (cf *ClassFile) IsModule() bool     { return cf.AccessFlags.IsModule() }

func (cf *ClassFile) Field(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// Method finds a method by name; an empty descriptor matches any overload.
func (cf *ClassFile) Method(name, descriptor string) *MethodInfo {
	if i := cf.methodIndex(name, descriptor); i >= 0 {
		return &cf.Methods[i]
	}
	return nil
}

func (cf *ClassFile) MethodsNamed(name string) []*MethodInfo {
	var methods []*MethodInfo
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

func (cf *ClassFile) methodIndex(name, descriptor string) int {
	for i := range cf.Methods {
		m := &cf.Methods[i]
		if m.Name(cf.ConstantPool) != name {
			continue
		}
		if descriptor == "" || m.Descriptor(cf.ConstantPool) == descriptor {
			return i
		}
	}
	return -1
}

func (cf *ClassFile) Attribute(name string) *AttributeInfo {
	return findAttribute(cf.Attributes, cf.ConstantPool, name)
}

// CodeFor returns the resolved Code attribute of the method at index i in
// Methods, or nil if it has none.
func (cf *ClassFile) CodeFor(i int) *CodeAttribute {
	for _, mc := range cf.Code {
		if mc.MethodIndex == i {
			return mc.Code
		}
	}
	return nil
}

// MethodCode is CodeFor keyed by name and descriptor.
func (cf *ClassFile) MethodCode(name, descriptor string) *CodeAttribute {
	i := cf.methodIndex(name, descriptor)
	if i < 0 {
		return nil
	}
	return cf.CodeFor(i)
}

// SourceFile returns the name recorded in the SourceFile attribute.
func (cf *ClassFile) SourceFile() string {
	attr := cf.Attribute("SourceFile")
	if attr == nil {
		return ""
	}
	sf, err := attr.AsSourceFile()
	if err != nil {
		return ""
	}
	return cf.ConstantPool.Utf8(sf.SourceFileIndex)
}
