package classfile

import (
	"fmt"
	"io"
	"os"
)

// PoolIndexing selects how Long and Double constants are numbered.
type PoolIndexing int

const (
	// PoolIndexCanonical reserves the slot after every Long and Double, as
	// the JVM does, so file indices line up with ConstantPool.Entry.
	PoolIndexCanonical PoolIndexing = iota
	// PoolIndexDense decodes constant_pool_count-1 entries back to back
	// with no reserved slots.
	PoolIndexDense
)

type Option func(*options)

type options struct {
	tracer   Tracer
	indexing PoolIndexing
	noCode   bool
}

func WithTracer(t Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

func WithPoolIndexing(p PoolIndexing) Option {
	return func(o *options) { o.indexing = p }
}

// WithoutCodeResolution skips the pass that decodes Code attributes.
func WithoutCodeResolution() Option {
	return func(o *options) { o.noCode = true }
}

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	return ParseBytes(data, opts...)
}

func Parse(rd io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes decodes a complete class file. data is not modified and the
// returned ClassFile shares its byte slices with it.
func ParseBytes(data []byte, opts ...Option) (*ClassFile, error) {
	o := options{tracer: NopTracer}
	for _, opt := range opts {
		opt(&o)
	}

	d := &decoder{
		data: data,
		r:    newReader(data),
		cf:   &ClassFile{Size: len(data)},
		opts: o,
		t:    o.tracer,
	}

	type step struct {
		phase Phase
		run   func() error
	}
	steps := []step{
		{PhaseMagic, d.magic},
		{PhaseVersion, d.version},
		{PhasePool, d.constantPool},
		{PhaseMetadata, d.metadata},
		{PhaseInterfaces, d.interfaces},
		{PhaseFields, d.fields},
		{PhaseMethods, d.methods},
		{PhaseAttributes, d.attributes},
	}
	if !o.noCode {
		steps = append(steps, step{PhaseResolve, d.resolveCode})
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			err = within(err, s.phase, 0, "")
			d.t.Error("decode failed", "phase", string(s.phase), "error", err.Error())
			return nil, err
		}
	}
	return d.cf, nil
}

type decoder struct {
	data []byte
	r    *reader
	cf   *ClassFile
	opts options
	t    Tracer
}

// rest returns the unread part of the buffer.
func (d *decoder) rest() []byte {
	return d.data[d.r.Offset():]
}

func (d *decoder) magic() error {
	magic, err := d.r.U4()
	if err != nil {
		return err
	}
	d.t.Debug("magic", "value", fmt.Sprintf("0x%08X", magic))
	if magic != Magic {
		return &DecodeError{
			Detail: fmt.Sprintf("0x%08X (expected 0x%08X)", magic, Magic),
			Err:    ErrInvalidMagic,
		}
	}
	d.cf.Magic = magic
	return nil
}

func (d *decoder) version() error {
	minor, major, err := readPair(d.r)
	if err != nil {
		return err
	}
	d.cf.MinorVersion, d.cf.MajorVersion = minor, major
	d.t.Debug("version", "major", major, "minor", minor, "release", JavaVersion(major))
	return nil
}

func (d *decoder) constantPool() error {
	count, err := d.r.U2()
	if err != nil {
		return err
	}
	d.cf.ConstantPoolCount = count
	d.t.Debug("constant pool", "count", count)
	if count == 0 {
		d.t.Warning("constant pool count is zero", "offset", d.r.Offset()-2)
		return nil
	}

	pool := make(ConstantPool, 0, int(count)-1)
	for slot := 1; slot < int(count); slot++ {
		start := d.r.Offset()
		entry, n, err := decodeConstant(d.rest())
		if err != nil {
			return within(err, "", start, fmt.Sprintf("constant[%d]", slot))
		}
		d.r.off += n
		pool = append(pool, entry)
		d.t.Debug("constant", "index", slot, "tag", entry.Tag().String(), "offset", start, "length", n)

		if d.opts.indexing == PoolIndexCanonical && wide(entry) {
			slot++
			if slot < int(count) {
				pool = append(pool, &ConstantUnusable{})
			} else {
				d.t.Warning("wide constant in last pool slot", "index", slot-1)
			}
		}
	}
	d.cf.ConstantPool = pool
	return nil
}

func (d *decoder) metadata() error {
	raw, err := d.r.u2s(3)
	if err != nil {
		return err
	}
	d.cf.AccessFlags = AccessFlags(raw[0])
	d.cf.ThisClass = raw[1]
	d.cf.SuperClass = raw[2]
	d.t.Debug("class",
		"access_flags", d.cf.AccessFlags.String(),
		"this_class", d.cf.ThisClass,
		"super_class", d.cf.SuperClass)
	return nil
}

func (d *decoder) interfaces() error {
	count, err := d.r.U2()
	if err != nil {
		return err
	}
	d.cf.Interfaces, err = d.r.u2s(count)
	if err != nil {
		return err
	}
	d.t.Debug("interfaces", "count", count)
	return nil
}

func (d *decoder) fields() error {
	members, err := d.members("field")
	if err != nil {
		return err
	}
	d.cf.Fields = make([]FieldInfo, len(members))
	for i, m := range members {
		d.cf.Fields[i] = FieldInfo(m)
	}
	return nil
}

func (d *decoder) methods() error {
	members, err := d.members("method")
	if err != nil {
		return err
	}
	d.cf.Methods = make([]MethodInfo, len(members))
	for i, m := range members {
		d.cf.Methods[i] = MethodInfo(m)
	}
	return nil
}

func (d *decoder) members(kind string) ([]member, error) {
	count, err := d.r.U2()
	if err != nil {
		return nil, err
	}
	d.t.Debug(kind+"s", "count", count)
	start := d.r.Offset()
	members, n, err := decodeMembers(d.rest(), count, kind, d.t)
	if err != nil {
		return nil, within(err, "", start, "")
	}
	d.r.off += n
	return members, nil
}

func (d *decoder) attributes() error {
	count, err := d.r.U2()
	if err != nil {
		return err
	}
	d.t.Debug("class attributes", "count", count)
	start := d.r.Offset()
	attrs, n, err := decodeAttributes(d.rest(), count)
	if err != nil {
		return within(err, "", start, "")
	}
	d.r.off += n
	d.cf.Attributes = attrs

	if d.r.Remaining() == 0 {
		d.t.Debug("end of class file", "offset", d.r.Offset())
		return nil
	}
	d.cf.Overlay = d.rest()
	d.t.Warning("overlay data", "offset", d.r.Offset(), "length", len(d.cf.Overlay))
	return nil
}

// resolveCode decodes every method attribute whose name is the Utf8
// constant "Code". It works on the already-decoded methods only.
func (d *decoder) resolveCode() error {
	cp := d.cf.ConstantPool
	for mi := range d.cf.Methods {
		m := &d.cf.Methods[mi]
		for ai := range m.Attributes {
			attr := &m.Attributes[ai]
			if cp.Entry(attr.NameIndex) == nil {
				d.t.Warning("attribute name index outside constant pool",
					"method", mi, "attribute", ai, "name_index", attr.NameIndex)
				continue
			}
			if !cp.IsUtf8(attr.NameIndex, CodeName) {
				continue
			}
			code, err := DecodeCode(attr.Info)
			if err != nil {
				return within(err, "", 0, fmt.Sprintf("method[%d].attribute[%d]", mi, ai))
			}
			if code.Unused > 0 {
				d.t.Warning("unused bytes in Code attribute", "method", mi, "length", code.Unused)
			}
			d.t.Debug("code",
				"method", mi, "name", m.Name(cp),
				"max_stack", code.MaxStack, "max_locals", code.MaxLocals,
				"code_length", len(code.Code), "exception_table", len(code.ExceptionTable),
				"attributes", len(code.Attributes))
			d.cf.Code = append(d.cf.Code, MethodCode{MethodIndex: mi, AttributeIndex: ai, Code: code})
		}
	}
	return nil
}
