package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// LineEncoder writes one tab-separated record per line: the class, then
// its interfaces, fields, methods and attributes.
type LineEncoder struct {
	w      io.Writer
	class  *classfile.ClassFile
	styles Styles
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) WithStyles(s Styles) *LineEncoder {
	e.styles = s
	return e
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class
	cp := cf.ConstantPool
	s := e.styles

	super := cf.SuperClassName()
	if super == "" {
		super = "-"
	}
	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%d.%d\t%s\n",
		s.keyword(classKind(cf)),
		s.name(cf.ClassName()),
		joinOrDash(cf.AccessFlags.ClassNames()),
		super,
		cf.MajorVersion, cf.MinorVersion,
		cf.JavaVersion(),
	)

	for _, iface := range cf.InterfaceNames() {
		fmt.Fprintf(&sb, "%s\t%s\n", s.keyword("implements"), iface)
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
			s.keyword("field"),
			s.name(f.Name(cp)),
			fieldType(f.Descriptor(cp)),
			joinOrDash(f.AccessFlags.FieldNames()),
		)
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		ret, params, _ := methodType(m.Descriptor(cp))
		code := "-"
		if c := cf.CodeFor(i); c != nil {
			code = fmt.Sprintf("code=%d", len(c.Code))
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.keyword("method"),
			s.name(m.Name(cp)),
			ret,
			joinOrDash(params),
			joinOrDash(m.AccessFlags.MethodNames()),
			s.dim(code),
		)
	}

	for i := range cf.Attributes {
		a := &cf.Attributes[i]
		fmt.Fprintf(&sb, "%s\t%s\t%d\n", s.keyword("attribute"), a.Name(cp), a.Length)
	}

	if len(cf.Overlay) > 0 {
		fmt.Fprintf(&sb, "%s\t%d\n", s.warn("overlay"), len(cf.Overlay))
	}

	return []byte(sb.String()), nil
}
