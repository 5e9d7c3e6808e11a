package tarball_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/crateworks/ingest/internal/tarball"
	"github.com/crateworks/ingest/internal/tarball/tarballtest"
)

func TestWalkerPathNormalization(t *testing.T) {
	// Directory entries for the root itself and ./-prefixed paths are all
	// inside the package root once cleaned.
	crate := tarballtest.New("foo", "0.0.1").
		AddDir("foo-0.0.1/").
		AddFile("./foo-0.0.1/Cargo.toml", []byte("[package]\nname = \"foo\"\nversion = \"0.0.1\"\n")).
		Build()

	info, err := tarball.Process("foo", "0.0.1", bytes.NewReader(crate), limit)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if info.Manifest.Pkg().Name != "foo" {
		t.Errorf("expected the ./-prefixed manifest to be recognized")
	}
}

func TestWalkerEntryKinds(t *testing.T) {
	crate := tarballtest.New("foo", "0.0.1").
		AddDir("foo-0.0.1/src/").
		AddFile("foo-0.0.1/src/lib.rs", []byte("fn main() {}")).
		Build()

	w, err := tarball.NewWalker(bytes.NewReader(crate), "foo-0.0.1", limit)
	if err != nil {
		t.Fatalf("NewWalker failed: %v", err)
	}

	dir, err := w.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if dir.Kind != tarball.EntryDirectory || dir.Path != "foo-0.0.1/src" {
		t.Errorf("expected directory foo-0.0.1/src, got kind=%v path=%q", dir.Kind, dir.Path)
	}

	file, err := w.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if file.Kind != tarball.EntryRegular || file.Path != "foo-0.0.1/src/lib.rs" {
		t.Errorf("expected regular foo-0.0.1/src/lib.rs, got kind=%v path=%q", file.Kind, file.Path)
	}

	data, err := io.ReadAll(file.Body)
	if err != nil {
		t.Fatalf("reading entry body: %v", err)
	}
	if string(data) != "fn main() {}" {
		t.Errorf("unexpected entry contents: %q", data)
	}

	if _, err := w.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF at end of archive, got %v", err)
	}
}
