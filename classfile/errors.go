package classfile

import (
	"errors"
	"fmt"
	"strings"
)

// Decoding errors. Every error returned by ParseBytes wraps exactly one of these.
var (
	ErrFileUnavailable    = errors.New("class file unavailable")
	ErrInvalidMagic       = errors.New("invalid class file magic")
	ErrInvalidConstantTag = errors.New("invalid constant pool tag")
	ErrOutOfBounds        = errors.New("read out of bounds")
)

// Phase names the section of the class file being decoded.
type Phase string

const (
	PhaseMagic      Phase = "magic"
	PhaseVersion    Phase = "version"
	PhasePool       Phase = "constant_pool"
	PhaseMetadata   Phase = "class_metadata"
	PhaseInterfaces Phase = "interfaces"
	PhaseFields     Phase = "fields"
	PhaseMethods    Phase = "methods"
	PhaseAttributes Phase = "attributes"
	PhaseResolve    Phase = "resolve_code"
)

// DecodeError describes where a structural violation was found. Offset is
// counted from the start of the class file, except in PhaseResolve where it
// is relative to the Code attribute payload named by Path.
type DecodeError struct {
	Phase  Phase
	Path   []string
	Offset int
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(e.Err.Error())

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	fmt.Fprintf(&b, " (offset 0x%X)", e.Offset)

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// within re-anchors err under a parent structure: the path element is
// prepended and the offset shifted by base. Errors that are not
// *DecodeError are wrapped as-is.
func within(err error, phase Phase, base int, path string) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		out := &DecodeError{Phase: phase, Offset: base, Err: err}
		if path != "" {
			out.Path = []string{path}
		}
		return out
	}
	out := *de
	if out.Phase == "" {
		out.Phase = phase
	}
	out.Offset += base
	if path != "" {
		out.Path = append([]string{path}, de.Path...)
	}
	return &out
}

func outOfBounds(offset, want, have int) error {
	return &DecodeError{
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", want, have),
		Err:    ErrOutOfBounds,
	}
}
