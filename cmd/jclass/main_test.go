package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jclass/jar"
)

// classBytes is the smallest valid class: a public class with no super
// class, members or attributes.
func classBytes(name string) []byte {
	var b []byte
	b = binary.BigEndian.AppendUint32(b, 0xCAFEBABE)
	b = binary.BigEndian.AppendUint16(b, 0)
	b = binary.BigEndian.AppendUint16(b, 52)
	b = binary.BigEndian.AppendUint16(b, 3)
	b = append(b, 1)
	b = binary.BigEndian.AppendUint16(b, uint16(len(name)))
	b = append(b, name...)
	b = append(b, 7, 0, 1)
	for _, v := range []uint16{0x0021, 2, 0, 0, 0, 0, 0} {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func jarBytes(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--color=never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Hello.class", classBytes("com/example/Hello"))

	tests := []struct {
		format string
		want   string
	}{
		{"line", "com/example/Hello"},
		{"json", `"constantPool"`},
		{"java", "class Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "dump", "-f", tt.format, path)
			if err != nil {
				t.Fatalf("dump failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestDumpErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "Hello.class", classBytes("Hello"))
	bad := writeFile(t, dir, "Bad.class", []byte{0xDE, 0xAD, 0xBE, 0xEF})

	if _, err := run(t, "dump", "-f", "yaml", good); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := run(t, "dump", bad); err == nil || !strings.Contains(err.Error(), "magic") {
		t.Errorf("expected magic error, got %v", err)
	}
	if _, err := run(t, "--color=sometimes", "dump", good); err == nil {
		t.Error("expected error for unknown color mode")
	}
}

func TestCodeUnknownMethod(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Hello.class", classBytes("Hello"))
	if _, err := run(t, "code", path, "main"); err == nil {
		t.Error("expected error for missing method")
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.jar", jarBytes(t, map[string][]byte{
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\r\nMain-Class: com.example.Main\r\n\r\n"),
	}))

	out, err := run(t, "manifest", path)
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if !strings.Contains(out, "Main-Class: com.example.Main") {
		t.Errorf("unexpected manifest output:\n%s", out)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/A.class", classBytes("a/A"))
	writeFile(t, dir, "a/Broken.class", []byte{0xCA, 0xFE})
	inner := jarBytes(t, map[string][]byte{"c/C.class": classBytes("c/C")})
	writeFile(t, dir, "lib/app.jar", jarBytes(t, map[string][]byte{
		"META-INF/MANIFEST.MF": []byte("Main-Class: b.B\n"),
		"b/B.class":            classBytes("b/B"),
		"lib/inner.jar":        inner,
	}))

	var out bytes.Buffer
	err := runScan(context.Background(), &out, dir, jar.Options{Workers: 2})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"[OK]",
		"[ERROR]",
		"Main-Class: b.B",
		"c/C",
		"Classes decoded: 3",
		"Errors: 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("scan output does not contain %q:\n%s", want, text)
		}
	}
}

func TestScanSingleClass(t *testing.T) {
	path := writeFile(t, t.TempDir(), "A.class", classBytes("A"))

	var out bytes.Buffer
	if err := runScan(context.Background(), &out, path, jar.Options{}); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(out.String(), "Classes decoded: 1") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestScanUnsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("hi"))
	if err := runScan(context.Background(), &bytes.Buffer{}, path, jar.Options{}); err == nil {
		t.Error("expected error for unsupported file type")
	}
}
