package tarball

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/crateworks/ingest/internal/manifest"
)

// Readme is the outcome of the secondary readme lookup pass: the raw readme
// contents together with the manifest fields the downstream renderer needs.
type Readme struct {
	Path       string
	Contents   []byte
	Repository string
}

// ExtractReadme scans an uncompressed tar stream for the package manifest
// and the readme it declares, for re-rendering archives the registry
// accepted long ago. The manifest is parsed leniently, skipping the
// publish-time validation, so legacy archives stay readable. The readme
// entry must appear after the manifest in stream order, which is how
// publishing tools lay archives out.
//
// A manifest readme policy of false yields (nil, nil). Security invariants
// are not re-checked here; the archive passed them on first acceptance.
func ExtractReadme(r io.Reader, pkgRoot string) (*Readme, error) {
	tr := tar.NewReader(r)

	data, err := findFile(tr, pkgRoot+"/Cargo.toml")
	if err != nil {
		return nil, fmt.Errorf("reading Cargo.toml: %w", err)
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	pkg := m.Pkg()
	if pkg == nil {
		return nil, errors.New("manifest has no package table")
	}

	readmePath, ok := pkg.ReadmePath()
	if !ok {
		return nil, nil
	}

	contents, err := findFile(tr, pkgRoot+"/"+readmePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", readmePath, err)
	}

	return &Readme{
		Path:       readmePath,
		Contents:   contents,
		Repository: pkg.Repository.Value,
	}, nil
}

// findFile advances tr until an entry with the given path and returns its
// contents.
func findFile(tr *tar.Reader, want string) ([]byte, error) {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("tarball entry not found: %s", want)
		}
		if err != nil {
			return nil, err
		}
		if path.Clean(hdr.Name) == want {
			return io.ReadAll(tr)
		}
	}
}
