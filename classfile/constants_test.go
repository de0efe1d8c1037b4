package classfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJavaVersion(t *testing.T) {
	tests := map[uint16]string{
		45: "Java 1.1",
		48: "Java 1.4",
		49: "Java 5",
		52: "Java 8",
		65: "Java 21",
		12: "unknown (12)",
	}
	for major, want := range tests {
		if got := JavaVersion(major); got != want {
			t.Errorf("JavaVersion(%d) = %q, want %q", major, got, want)
		}
	}
}

func TestAccessFlagNames(t *testing.T) {
	flags := AccPublic | AccStatic | AccFinal
	if diff := cmp.Diff([]string{"public", "static", "final"}, flags.FieldNames()); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}
	if got := flags.String(); got != "0x0019" {
		t.Errorf("String() = %q, want %q", got, "0x0019")
	}
	if got := RefInvokeVirtual.String(); got != "invokeVirtual" {
		t.Errorf("MethodHandleKind.String() = %q", got)
	}
}
