// Package jar reads jar and zip archives and decodes the class files they
// contain.
package jar

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jclass.jar")

const manifestName = "MANIFEST.MF"

type Kind int

const (
	KindClass Kind = iota
	KindManifest
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindManifest:
		return "manifest"
	default:
		return "resource"
	}
}

// Entry is one file of an archive. Directories are not entries.
type Entry struct {
	// Name is the base name, Path the full name inside the archive.
	Name string
	Path string
	Data []byte
	Kind Kind
}

type Archive struct {
	Path      string
	Entries   []Entry
	Manifest  *Manifest
	MainClass string
}

// Open reads every entry of the archive at path into memory.
func Open(path string) (*Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open jar %s: %w", path, err)
	}
	defer r.Close()
	return read(path, &r.Reader)
}

// Read is Open for an archive that is already in memory, such as a jar
// nested inside another archive.
func Read(name string, data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open jar %s as zip: %w", name, err)
	}
	return read(name, r)
}

func read(name string, r *zip.Reader) (*Archive, error) {
	a := &Archive{Path: name}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s in %s: %w", f.Name, name, err)
		}
		entry := Entry{
			Name: path.Base(f.Name),
			Path: f.Name,
			Data: data,
			Kind: classify(f.Name),
		}
		log.Debug("entry", "archive", name, "path", entry.Path, "kind", entry.Kind.String(), "size", len(data))
		a.Entries = append(a.Entries, entry)

		if entry.Kind == KindManifest && a.Manifest == nil {
			m, err := ParseManifest(data)
			if err != nil {
				log.Warning("unreadable manifest", "archive", name, "path", entry.Path, "error", err.Error())
				continue
			}
			a.Manifest = m
			a.MainClass = strings.TrimSpace(m.Main.Get("Main-Class"))
		}
	}
	log.Info("archive read", "archive", name, "entries", len(a.Entries), "main_class", a.MainClass)
	return a, nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func classify(name string) Kind {
	switch {
	case strings.HasSuffix(name, ".class"):
		return KindClass
	case path.Base(name) == manifestName:
		return KindManifest
	default:
		return KindResource
	}
}

func (a *Archive) filter(kind Kind) []*Entry {
	var out []*Entry
	for i := range a.Entries {
		if a.Entries[i].Kind == kind {
			out = append(out, &a.Entries[i])
		}
	}
	return out
}

func (a *Archive) Classes() []*Entry   { return a.filter(KindClass) }
func (a *Archive) Resources() []*Entry { return a.filter(KindResource) }

// Entry looks an entry up by its full path.
func (a *Archive) Entry(path string) *Entry {
	for i := range a.Entries {
		if a.Entries[i].Path == path {
			return &a.Entries[i]
		}
	}
	return nil
}
