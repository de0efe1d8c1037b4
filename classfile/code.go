package classfile

import "fmt"

// CodeName is the attribute name that marks a method's bytecode.
const CodeName = "Code"

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo

	// Unused counts payload bytes left after the nested attributes.
	Unused int
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// MethodCode ties a resolved Code attribute to the method that owns it.
type MethodCode struct {
	MethodIndex    int
	AttributeIndex int
	Code           *CodeAttribute
}

// DecodeCode decodes the payload of a Code attribute. Offsets in returned
// errors are relative to the payload.
func DecodeCode(payload []byte) (*CodeAttribute, error) {
	r := newReader(payload)

	maxStack, maxLocals, err := readPair(r)
	if err != nil {
		return nil, err
	}
	codeLength, err := r.U4()
	if err != nil {
		return nil, err
	}
	if uint64(codeLength) > uint64(r.Remaining()) {
		return nil, &DecodeError{
			Offset: r.Offset(),
			Detail: fmt.Sprintf("code_length %d exceeds %d remaining bytes", codeLength, r.Remaining()),
			Err:    ErrOutOfBounds,
		}
	}
	code, err := r.Bytes(int(codeLength))
	if err != nil {
		return nil, err
	}

	tableLength, err := r.U2()
	if err != nil {
		return nil, err
	}
	table := make([]ExceptionTableEntry, tableLength)
	for i := range table {
		raw, err := r.u2s(4)
		if err != nil {
			return nil, within(err, "", 0, fmt.Sprintf("exception_table[%d]", i))
		}
		table[i] = ExceptionTableEntry{
			StartPC:   raw[0],
			EndPC:     raw[1],
			HandlerPC: raw[2],
			CatchType: raw[3],
		}
	}

	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	start := r.Offset()
	attrs, n, err := decodeAttributes(payload[start:], count)
	if err != nil {
		return nil, within(err, "", start, "")
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: table,
		Attributes:     attrs,
		Unused:         len(payload) - start - n,
	}, nil
}

// Attribute returns the first nested attribute called name.
func (c *CodeAttribute) Attribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(c.Attributes, cp, name)
}
