package format

import (
	"io"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// JavaEncoder prints a javap-style declaration of the class: modifiers,
// supertypes and member signatures, without bodies.
type JavaEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class

	if src := cf.SourceFile(); src != "" {
		sb.WriteString("// Compiled from \"")
		sb.WriteString(src)
		sb.WriteString("\"\n")
	}

	name := classfile.InternalToSourceName(cf.ClassName())
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		sb.WriteString("package ")
		sb.WriteString(name[:i])
		sb.WriteString(";\n\n")
	}

	e.writeClassDeclaration(&sb, name)
	sb.WriteString(" {\n")
	e.writeFields(&sb)
	e.writeMethods(&sb, name)
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func simpleName(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}

func (e *JavaEncoder) writeClassDeclaration(sb *strings.Builder, name string) {
	cf := e.class
	flags := cf.AccessFlags

	if flags.IsPublic() {
		sb.WriteString("public ")
	}
	if flags.IsAbstract() && !flags.IsInterface() {
		sb.WriteString("abstract ")
	}
	if flags.IsFinal() && !flags.IsEnum() {
		sb.WriteString("final ")
	}

	switch {
	case cf.IsAnnotation():
		sb.WriteString("@interface ")
	case cf.IsEnum():
		sb.WriteString("enum ")
	case cf.IsInterface():
		sb.WriteString("interface ")
	case cf.IsModule():
		sb.WriteString("module ")
	default:
		sb.WriteString("class ")
	}
	sb.WriteString(simpleName(name))

	if super := cf.SuperClassName(); super != "" && super != "java/lang/Object" && !cf.IsEnum() {
		sb.WriteString(" extends ")
		sb.WriteString(classfile.InternalToSourceName(super))
	}

	if ifaces := cf.InterfaceNames(); len(ifaces) > 0 {
		if cf.IsInterface() {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		for i, iface := range ifaces {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(classfile.InternalToSourceName(iface))
		}
	}
}

func writeVisibility(sb *strings.Builder, flags classfile.AccessFlags) {
	switch {
	case flags.IsPublic():
		sb.WriteString("public ")
	case flags.IsPrivate():
		sb.WriteString("private ")
	case flags.IsProtected():
		sb.WriteString("protected ")
	}
}

func (e *JavaEncoder) writeFields(sb *strings.Builder) {
	cp := e.class.ConstantPool
	written := 0
	for i := range e.class.Fields {
		f := &e.class.Fields[i]
		if f.IsSynthetic() {
			continue
		}
		sb.WriteString("    ")
		writeVisibility(sb, f.AccessFlags)
		if f.IsStatic() {
			sb.WriteString("static ")
		}
		if f.IsFinal() {
			sb.WriteString("final ")
		}
		if f.AccessFlags.IsVolatile() {
			sb.WriteString("volatile ")
		}
		if f.AccessFlags.IsTransient() {
			sb.WriteString("transient ")
		}
		sb.WriteString(fieldType(f.Descriptor(cp)))
		sb.WriteString(" ")
		sb.WriteString(f.Name(cp))
		sb.WriteString(";\n")
		written++
	}
	if written > 0 {
		sb.WriteString("\n")
	}
}

func (e *JavaEncoder) writeMethods(sb *strings.Builder, className string) {
	cf := e.class
	cp := cf.ConstantPool
	for i := range cf.Methods {
		m := &cf.Methods[i]
		if m.IsSynthetic() || m.AccessFlags.IsBridge() {
			continue
		}
		sb.WriteString("    ")
		if m.IsStaticInitializer(cp) {
			sb.WriteString("static {};\n")
			continue
		}

		flags := m.AccessFlags
		writeVisibility(sb, flags)
		if flags.IsStatic() {
			sb.WriteString("static ")
		}
		if flags.IsFinal() {
			sb.WriteString("final ")
		}
		if flags.IsAbstract() && !cf.IsInterface() {
			sb.WriteString("abstract ")
		}
		if flags.IsSynchronized() {
			sb.WriteString("synchronized ")
		}
		if flags.IsNative() {
			sb.WriteString("native ")
		}

		ret, params, _ := methodType(m.Descriptor(cp))
		if m.IsConstructor(cp) {
			sb.WriteString(simpleName(className))
		} else {
			if cf.IsInterface() && !flags.IsAbstract() && !flags.IsStatic() {
				sb.WriteString("default ")
			}
			sb.WriteString(ret)
			sb.WriteString(" ")
			sb.WriteString(m.Name(cp))
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(params, ", "))
		sb.WriteString(")")

		if exc := e.exceptions(m); len(exc) > 0 {
			sb.WriteString(" throws ")
			sb.WriteString(strings.Join(exc, ", "))
		}
		sb.WriteString(";\n")
	}
}

func (e *JavaEncoder) exceptions(m *classfile.MethodInfo) []string {
	cp := e.class.ConstantPool
	attr := m.Attribute(cp, "Exceptions")
	if attr == nil {
		return nil
	}
	view, err := attr.AsExceptions()
	if err != nil {
		return nil
	}
	out := make([]string, len(view.ExceptionIndexTable))
	for i, idx := range view.ExceptionIndexTable {
		out[i] = classfile.InternalToSourceName(cp.ClassName(idx))
	}
	return out
}
