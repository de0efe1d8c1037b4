package format

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/dhamidi/jclass/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name         string          `json:"name"`
	SuperClass   string          `json:"superClass,omitempty"`
	Interfaces   []string        `json:"interfaces,omitempty"`
	Kind         string          `json:"kind"`
	AccessFlags  []string        `json:"accessFlags,omitempty"`
	Version      jsonVersion     `json:"version"`
	ConstantPool []jsonConstant  `json:"constantPool"`
	Fields       []jsonMember    `json:"fields,omitempty"`
	Methods      []jsonMember    `json:"methods,omitempty"`
	Attributes   []jsonAttribute `json:"attributes,omitempty"`
	Overlay      int             `json:"overlay,omitempty"`
	Size         int             `json:"size"`
}

type jsonVersion struct {
	Major   uint16 `json:"major"`
	Minor   uint16 `json:"minor"`
	Release string `json:"release"`
}

type jsonConstant struct {
	Index uint16 `json:"index"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

type jsonMember struct {
	Name        string          `json:"name"`
	Descriptor  string          `json:"descriptor"`
	AccessFlags []string        `json:"accessFlags,omitempty"`
	Attributes  []jsonAttribute `json:"attributes,omitempty"`
	Code        *jsonCode       `json:"code,omitempty"`
}

type jsonAttribute struct {
	Name   string `json:"name"`
	Length uint32 `json:"length"`
}

type jsonCode struct {
	MaxStack       uint16          `json:"maxStack"`
	MaxLocals      uint16          `json:"maxLocals"`
	Bytecode       string          `json:"bytecode"`
	ExceptionTable []jsonHandler   `json:"exceptionTable,omitempty"`
	Attributes     []jsonAttribute `json:"attributes,omitempty"`
}

type jsonHandler struct {
	StartPC   uint16 `json:"startPc"`
	EndPC     uint16 `json:"endPc"`
	HandlerPC uint16 `json:"handlerPc"`
	CatchType string `json:"catchType,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	cf := e.class
	return jsonClass{
		Name:        cf.ClassName(),
		SuperClass:  cf.SuperClassName(),
		Interfaces:  cf.InterfaceNames(),
		Kind:        classKind(cf),
		AccessFlags: cf.AccessFlags.ClassNames(),
		Version: jsonVersion{
			Major:   cf.MajorVersion,
			Minor:   cf.MinorVersion,
			Release: cf.JavaVersion(),
		},
		ConstantPool: buildConstants(cf.ConstantPool),
		Fields:       e.buildFields(),
		Methods:      e.buildMethods(),
		Attributes:   buildAttributes(cf.ConstantPool, cf.Attributes),
		Overlay:      len(cf.Overlay),
		Size:         cf.Size,
	}
}

func buildConstants(cp classfile.ConstantPool) []jsonConstant {
	out := make([]jsonConstant, 0, len(cp))
	for i, entry := range cp {
		if _, ok := entry.(*classfile.ConstantUnusable); ok {
			continue
		}
		index := uint16(i + 1)
		out = append(out, jsonConstant{
			Index: index,
			Tag:   entry.Tag().String(),
			Value: cp.Describe(index),
		})
	}
	return out
}

func buildAttributes(cp classfile.ConstantPool, attrs []classfile.AttributeInfo) []jsonAttribute {
	out := make([]jsonAttribute, len(attrs))
	for i := range attrs {
		out[i] = jsonAttribute{Name: attrs[i].Name(cp), Length: attrs[i].Length}
	}
	return out
}

func (e *JSONEncoder) buildFields() []jsonMember {
	cp := e.class.ConstantPool
	out := make([]jsonMember, len(e.class.Fields))
	for i := range e.class.Fields {
		f := &e.class.Fields[i]
		out[i] = jsonMember{
			Name:        f.Name(cp),
			Descriptor:  f.Descriptor(cp),
			AccessFlags: f.AccessFlags.FieldNames(),
			Attributes:  buildAttributes(cp, f.Attributes),
		}
	}
	return out
}

func (e *JSONEncoder) buildMethods() []jsonMember {
	cp := e.class.ConstantPool
	out := make([]jsonMember, len(e.class.Methods))
	for i := range e.class.Methods {
		m := &e.class.Methods[i]
		out[i] = jsonMember{
			Name:        m.Name(cp),
			Descriptor:  m.Descriptor(cp),
			AccessFlags: m.AccessFlags.MethodNames(),
			Attributes:  buildAttributes(cp, m.Attributes),
			Code:        buildCode(cp, e.class.CodeFor(i)),
		}
	}
	return out
}

func buildCode(cp classfile.ConstantPool, c *classfile.CodeAttribute) *jsonCode {
	if c == nil {
		return nil
	}
	out := &jsonCode{
		MaxStack:   c.MaxStack,
		MaxLocals:  c.MaxLocals,
		Bytecode:   hex.EncodeToString(c.Code),
		Attributes: buildAttributes(cp, c.Attributes),
	}
	for _, h := range c.ExceptionTable {
		out.ExceptionTable = append(out.ExceptionTable, jsonHandler{
			StartPC:   h.StartPC,
			EndPC:     h.EndPC,
			HandlerPC: h.HandlerPC,
			CatchType: cp.ClassName(h.CatchType),
		})
	}
	return out
}
