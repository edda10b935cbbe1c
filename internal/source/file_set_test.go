package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("trace.log", []byte("note \"a\""), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("trace.log", []byte("note \"b\""), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetByPath("trace.log")
	if !ok {
		t.Fatal("Expected file to exist after Add")
	}
	if latest.ID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latest.ID)
	}
	if string(fs.Get(id1).Content) != "note \"a\"" {
		t.Errorf("first version must stay reachable, got %q", fs.Get(id1).Content)
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"single no newline", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual("v", []byte(tt.content)))
			got := f.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Lines() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i+1, got[i], tt.want[i])
				}
				if gl := f.GetLine(uint32(i + 1)); gl != tt.want[i] {
					t.Errorf("GetLine(%d) = %q, want %q", i+1, gl, tt.want[i])
				}
			}
			if f.GetLine(uint32(len(got)+1)) != "" {
				t.Errorf("GetLine past the end must be empty")
			}
		})
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Line: 3, Start: 4, End: 6}
	b := Span{File: 1, Line: 3, Start: 2, End: 5}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 6 {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 1, Line: 4, Start: 1, End: 9}
	if a.Cover(other) != a {
		t.Errorf("Cover across lines must return receiver")
	}
	if LineSpan(0, 2, 5).Len() != 5 {
		t.Errorf("LineSpan length mismatch")
	}
}
