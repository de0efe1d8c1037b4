package classfile

import (
	"encoding/binary"
	"math"
)

// buf assembles big-endian test input.
type buf []byte

func (b *buf) u1(vs ...uint8) *buf {
	*b = append(*b, vs...)
	return b
}

func (b *buf) u2(vs ...uint16) *buf {
	for _, v := range vs {
		*b = binary.BigEndian.AppendUint16(*b, v)
	}
	return b
}

func (b *buf) u4(v uint32) *buf {
	*b = binary.BigEndian.AppendUint32(*b, v)
	return b
}

func (b *buf) u8(v uint64) *buf {
	*b = binary.BigEndian.AppendUint64(*b, v)
	return b
}

func (b *buf) raw(p []byte) *buf {
	*b = append(*b, p...)
	return b
}

// classBuilder writes a class file whose pool indices follow the canonical
// numbering: Long and Double take two.
type classBuilder struct {
	magic      uint32
	minor      uint16
	major      uint16
	pool       buf
	next       uint16
	poolCount  int // overrides next when non-zero
	access     uint16
	this       uint16
	super      uint16
	interfaces []uint16
	fields     [][]byte
	methods    [][]byte
	attrs      [][]byte
	trailer    []byte
}

func newClassBuilder() *classBuilder {
	return &classBuilder{magic: Magic, major: 52, next: 1}
}

func (b *classBuilder) add(width uint16, entry func(p *buf)) uint16 {
	idx := b.next
	entry(&b.pool)
	b.next += width
	return idx
}

func (b *classBuilder) utf8(s string) uint16 {
	return b.add(1, func(p *buf) { p.u1(1).u2(uint16(len(s))).raw([]byte(s)) })
}

func (b *classBuilder) class(name string) uint16 {
	n := b.utf8(name)
	return b.add(1, func(p *buf) { p.u1(7).u2(n) })
}

func (b *classBuilder) integer(v int32) uint16 {
	return b.add(1, func(p *buf) { p.u1(3).u4(uint32(v)) })
}

func (b *classBuilder) float(v float32) uint16 {
	return b.add(1, func(p *buf) { p.u1(4).u4(math.Float32bits(v)) })
}

func (b *classBuilder) long(v int64) uint16 {
	return b.add(2, func(p *buf) { p.u1(5).u8(uint64(v)) })
}

func (b *classBuilder) double(v float64) uint16 {
	return b.add(2, func(p *buf) { p.u1(6).u8(math.Float64bits(v)) })
}

func (b *classBuilder) nameAndType(name, desc string) uint16 {
	n, d := b.utf8(name), b.utf8(desc)
	return b.add(1, func(p *buf) { p.u1(12).u2(n, d) })
}

func (b *classBuilder) methodref(class, name, desc string) uint16 {
	c := b.class(class)
	nat := b.nameAndType(name, desc)
	return b.add(1, func(p *buf) { p.u1(10).u2(c, nat) })
}

func (b *classBuilder) field(access uint16, name, desc string, attrs ...[]byte) {
	b.fields = append(b.fields, memberBytes(access, b.utf8(name), b.utf8(desc), attrs))
}

func (b *classBuilder) method(access uint16, name, desc string, attrs ...[]byte) {
	b.methods = append(b.methods, memberBytes(access, b.utf8(name), b.utf8(desc), attrs))
}

func (b *classBuilder) attribute(name string, payload []byte) {
	b.attrs = append(b.attrs, attributeBytes(b.utf8(name), payload))
}

func (b *classBuilder) bytes() []byte {
	var out buf
	count := int(b.next)
	if b.poolCount != 0 {
		count = b.poolCount
	}
	out.u4(b.magic).u2(b.minor, b.major, uint16(count)).raw(b.pool)
	out.u2(b.access, b.this, b.super)
	out.u2(uint16(len(b.interfaces))).u2(b.interfaces...)
	writeList(&out, b.fields)
	writeList(&out, b.methods)
	writeList(&out, b.attrs)
	out.raw(b.trailer)
	return out
}

func writeList(out *buf, items [][]byte) {
	out.u2(uint16(len(items)))
	for _, item := range items {
		out.raw(item)
	}
}

func memberBytes(access, name, desc uint16, attrs [][]byte) []byte {
	var out buf
	out.u2(access, name, desc)
	writeList(&out, attrs)
	return out
}

func attributeBytes(name uint16, payload []byte) []byte {
	var out buf
	out.u2(name).u4(uint32(len(payload))).raw(payload)
	return out
}

func codePayload(maxStack, maxLocals uint16, code []byte, handlers []ExceptionTableEntry, attrs ...[]byte) []byte {
	var out buf
	out.u2(maxStack, maxLocals).u4(uint32(len(code))).raw(code)
	out.u2(uint16(len(handlers)))
	for _, h := range handlers {
		out.u2(h.StartPC, h.EndPC, h.HandlerPC, h.CatchType)
	}
	writeList(&out, attrs)
	return out
}
