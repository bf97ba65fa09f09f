package home

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_ExplicitPath(t *testing.T) {
	d, err := New("/tmp/custom-readlite")
	if err != nil {
		t.Fatal(err)
	}
	if d.Path() != "/tmp/custom-readlite" {
		t.Errorf("Path() = %q", d.Path())
	}
}

func TestNew_DefaultPath(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(d.Path(), DefaultDirName) {
		t.Errorf("default Path() = %q, want suffix %q", d.Path(), DefaultDirName)
	}
}

func TestDirLayout(t *testing.T) {
	d, err := New("/data/rl")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		got  string
		want string
	}{
		{d.BooksPath(), "/data/rl/books"},
		{d.BookTextPath("1342"), "/data/rl/books/1342.txt"},
		{d.AudioPath(), "/data/rl/audio"},
		{d.ChunkAudioPath("1342", "A2", 7), "/data/rl/audio/1342/A2/chunk_0007.mp3"},
		{d.ConfigPath(), "/data/rl/config.yaml"},
		{d.DatabasePath(), "/data/rl/readlite.db"},
	}
	for _, tt := range tests {
		if tt.got != filepath.FromSlash(tt.want) {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "rl")
	d, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	if d.Exists() {
		t.Error("Exists() true before creation")
	}

	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	for _, p := range []string{d.BooksPath(), d.AudioPath()} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", p, err)
		}
	}
	if !d.Exists() {
		t.Error("Exists() false after creation")
	}
	if d.ConfigExists() {
		t.Error("ConfigExists() true with no config written")
	}
}
