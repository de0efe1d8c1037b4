package format

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// CodeEncoder prints the resolved Code attribute of each method: limits,
// a hex dump of the bytecode, the exception table and nested attributes.
type CodeEncoder struct {
	w      io.Writer
	class  *classfile.ClassFile
	method string
	styles Styles
}

func NewCodeEncoder(w io.Writer) *CodeEncoder {
	return &CodeEncoder{w: w}
}

// Method limits output to methods with this name.
func (e *CodeEncoder) Method(name string) *CodeEncoder {
	e.method = name
	return e
}

func (e *CodeEncoder) WithStyles(s Styles) *CodeEncoder {
	e.styles = s
	return e
}

func (e *CodeEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *CodeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class
	cp := cf.ConstantPool
	s := e.styles

	for _, mc := range cf.Code {
		m := &cf.Methods[mc.MethodIndex]
		name := m.Name(cp)
		if e.method != "" && name != e.method {
			continue
		}
		c := mc.Code

		fmt.Fprintf(&sb, "%s %s%s\n", s.keyword("method"), s.name(name), m.Descriptor(cp))
		fmt.Fprintf(&sb, "  %s\n", s.dim(fmt.Sprintf("max_stack=%d max_locals=%d code_length=%d",
			c.MaxStack, c.MaxLocals, len(c.Code))))
		writeHexDump(&sb, c.Code)

		for _, h := range c.ExceptionTable {
			catch := "any"
			if h.CatchType != 0 {
				catch = classfile.InternalToSourceName(cp.ClassName(h.CatchType))
			}
			fmt.Fprintf(&sb, "  %s [%d, %d) -> %d %s\n", s.keyword("try"), h.StartPC, h.EndPC, h.HandlerPC, catch)
		}
		for i := range c.Attributes {
			fmt.Fprintf(&sb, "  %s %s %d\n", s.keyword("attribute"), c.Attributes[i].Name(cp), c.Attributes[i].Length)
		}
		if c.Unused > 0 {
			fmt.Fprintf(&sb, "  %s %d\n", s.warn("unused"), c.Unused)
		}
	}
	return []byte(sb.String()), nil
}

func writeHexDump(sb *strings.Builder, code []byte) {
	for off := 0; off < len(code); off += 16 {
		end := min(off+16, len(code))
		fmt.Fprintf(sb, "  %04x: %s\n", off, hex.EncodeToString(code[off:end]))
	}
}
