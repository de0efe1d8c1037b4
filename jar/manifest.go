package jar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidManifest = errors.New("invalid manifest")

type Attribute struct {
	Name  string
	Value string
}

// Attributes keeps the order in which the manifest lists them.
type Attributes []Attribute

// Get returns the value of the named attribute. Names are case-insensitive.
func (a Attributes) Get(name string) string {
	for _, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return attr.Value
		}
	}
	return ""
}

// Section is a per-entry section, introduced by a Name attribute.
type Section struct {
	Name       string
	Attributes Attributes
}

type Manifest struct {
	Main     Attributes
	Sections []Section
}

// ParseManifest reads a META-INF/MANIFEST.MF file. Lines may end in CRLF,
// LF or CR; a line starting with a single space continues the previous
// value.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	current := &m.Main
	var section *Section
	inMain := true
	blank := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(scanManifestLines)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()

		if line == "" {
			blank = true
			continue
		}
		if strings.HasPrefix(line, " ") {
			if blank || len(*current) == 0 {
				return nil, fmt.Errorf("%w: line %d: continuation without attribute", ErrInvalidManifest, lineNo)
			}
			(*current)[len(*current)-1].Value += line[1:]
			continue
		}
		if blank {
			blank = false
			if inMain || len(section.Attributes) > 0 {
				m.Sections = append(m.Sections, Section{})
				section = &m.Sections[len(m.Sections)-1]
				current = &section.Attributes
				inMain = false
			}
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsRune(name, ' ') {
			return nil, fmt.Errorf("%w: line %d: %q is not an attribute", ErrInvalidManifest, lineNo, line)
		}
		*current = append(*current, Attribute{Name: name, Value: strings.TrimPrefix(value, " ")})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	for i := range m.Sections {
		m.Sections[i].Name = m.Sections[i].Attributes.Get("Name")
	}
	return m, nil
}

// scanManifestLines splits on CRLF, LF or a lone CR.
func scanManifestLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// String renders the manifest back in its file syntax, without line
// wrapping.
func (m *Manifest) String() string {
	var sb strings.Builder
	writeAttributes(&sb, m.Main)
	for _, s := range m.Sections {
		sb.WriteString("\n")
		writeAttributes(&sb, s.Attributes)
	}
	return sb.String()
}

func writeAttributes(sb *strings.Builder, attrs Attributes) {
	for _, a := range attrs {
		fmt.Fprintf(sb, "%s: %s\n", a.Name, a.Value)
	}
}
