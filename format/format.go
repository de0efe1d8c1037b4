// Package format renders decoded class files as text, JSON or a Java-like
// declaration skeleton.
package format

import (
	"encoding"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

func classKind(cf *classfile.ClassFile) string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsEnum():
		return "enum"
	case cf.IsInterface():
		return "interface"
	case cf.IsModule():
		return "module"
	default:
		return "class"
	}
}

// fieldType renders a field descriptor as a Java type, falling back to the
// raw descriptor when it does not parse.
func fieldType(desc string) string {
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		return desc
	}
	return ft.String()
}

// methodType splits a method descriptor into return type and parameter
// types.
func methodType(desc string) (string, []string, bool) {
	md, err := classfile.ParseMethodDescriptor(desc)
	if err != nil {
		return desc, nil, false
	}
	ret := "void"
	if md.ReturnType != nil {
		ret = md.ReturnType.String()
	}
	params := make([]string, len(md.Parameters))
	for i := range md.Parameters {
		params[i] = md.Parameters[i].String()
	}
	return ret, params, true
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
