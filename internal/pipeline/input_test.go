package pipeline

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReadInputs(t *testing.T) {
	t.Parallel()

	got, err := ReadInputs(t.Context(), strings.NewReader("first\r\n\n  spaced  \nlast"), "list.txt")
	if err != nil {
		t.Fatalf("ReadInputs() error = %v", err)
	}
	want := []Input{
		{Source: "list.txt:1", Password: "first"},
		{Source: "list.txt:3", Password: "  spaced  "},
		{Source: "list.txt:4", Password: "last"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ReadInputs() = %+v, want %+v", got, want)
	}
}

func TestReadInputs_KeepsBytes(t *testing.T) {
	t.Parallel()

	got, err := ReadInputs(t.Context(), strings.NewReader("caf\xe9\nok\uFFFDx\n"), "f")
	if err != nil {
		t.Fatalf("ReadInputs() error = %v", err)
	}
	want := []Input{
		{Source: "f:1", Password: "caf\xe9"},
		{Source: "f:2", Password: "ok\uFFFDx"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ReadInputs() = %q, want %q", got, want)
	}
}

func TestReadInputsFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pw.txt")
		if err := os.WriteFile(path, []byte("a\nb\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadInputsFile(t.Context(), path)
		if err != nil {
			t.Fatalf("ReadInputsFile() error = %v", err)
		}
		if len(got) != 2 || got[1].Source != path+":2" {
			t.Errorf("ReadInputsFile() = %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadInputsFile(t.Context(), filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
