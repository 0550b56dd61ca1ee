package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirScansArtifacts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.gguf", "b.uqff", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	arts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("artifacts: %d, want 2", len(arts))
	}
	byID := map[string]string{}
	for _, a := range arts {
		byID[a.ID] = a.Format
		if !filepath.IsAbs(a.Path) {
			t.Fatalf("path must be absolute: %q", a.Path)
		}
	}
	if byID["a.gguf"] != "gguf" || byID["b.uqff"] != "uqff" {
		t.Fatalf("formats: %+v", byID)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("missing dir must fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandHome("~/models")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("expanded: %q", got)
	}
	got, err = expandHome("/abs/path")
	if err != nil || got != "/abs/path" {
		t.Fatalf("absolute path must pass through: %q %v", got, err)
	}
}
