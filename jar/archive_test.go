package jar

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// classBytes assembles a class whose this_class is name.
func classBytes(name string) []byte {
	var b []byte
	u2 := func(vs ...uint16) {
		for _, v := range vs {
			b = binary.BigEndian.AppendUint16(b, v)
		}
	}
	b = binary.BigEndian.AppendUint32(b, 0xCAFEBABE)
	u2(0, 52, 3)
	b = append(b, 1)
	u2(uint16(len(name)))
	b = append(b, name...)
	b = append(b, 7)
	u2(1)
	u2(0x0021, 2, 0)
	u2(0, 0, 0, 0)
	return b
}

type zipFile struct {
	name string
	data []byte
}

func zipBytes(t *testing.T, files ...zipFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(f.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeJar(t *testing.T, files ...zipFile) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.jar")
	if err := os.WriteFile(path, zipBytes(t, files...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	path := writeJar(t,
		zipFile{"META-INF/", nil},
		zipFile{"META-INF/MANIFEST.MF", []byte("Manifest-Version: 1.0\r\nMain-Class: com.example.Main\r\n\r\n")},
		zipFile{"com/example/Main.class", classBytes("com/example/Main")},
		zipFile{"com/example/messages.properties", []byte("hello=world\n")},
	)

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	type entry struct {
		Name, Path string
		Kind       Kind
	}
	var got []entry
	for _, e := range a.Entries {
		got = append(got, entry{e.Name, e.Path, e.Kind})
	}
	want := []entry{
		{"MANIFEST.MF", "META-INF/MANIFEST.MF", KindManifest},
		{"Main.class", "com/example/Main.class", KindClass},
		{"messages.properties", "com/example/messages.properties", KindResource},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if a.MainClass != "com.example.Main" {
		t.Errorf("MainClass = %q, want %q", a.MainClass, "com.example.Main")
	}
	if len(a.Classes()) != 1 || len(a.Resources()) != 1 {
		t.Errorf("Classes() = %d, Resources() = %d", len(a.Classes()), len(a.Resources()))
	}
	if e := a.Entry("com/example/messages.properties"); e == nil || string(e.Data) != "hello=world\n" {
		t.Errorf("Entry(messages.properties) = %+v", e)
	}
	if a.Entry("missing") != nil {
		t.Errorf("Entry(missing) != nil")
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.jar")); err == nil {
		t.Errorf("Open(missing) error = nil")
	}

	path := filepath.Join(t.TempDir(), "bad.jar")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Errorf("Open(not a zip) error = nil")
	}
}

func TestReadNested(t *testing.T) {
	inner := zipBytes(t, zipFile{"a/B.class", classBytes("a/B")})
	outer := zipBytes(t, zipFile{"lib/inner.jar", inner})

	a, err := Read("outer.zip", outer)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	e := a.Entry("lib/inner.jar")
	if e == nil || e.Kind != KindResource {
		t.Fatalf("Entry(lib/inner.jar) = %+v", e)
	}

	nested, err := Read(e.Path, e.Data)
	if err != nil {
		t.Fatalf("Read(nested) error = %v", err)
	}
	if len(nested.Classes()) != 1 || nested.Path != "lib/inner.jar" {
		t.Errorf("nested = %+v", nested)
	}
}

func TestBrokenManifestIsNotFatal(t *testing.T) {
	path := writeJar(t, zipFile{"META-INF/MANIFEST.MF", []byte(" dangling\n")})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if a.Manifest != nil || a.MainClass != "" {
		t.Errorf("Manifest = %+v, MainClass = %q", a.Manifest, a.MainClass)
	}
}
