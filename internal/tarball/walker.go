package tarball

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"path"
	"strings"

	"github.com/crateworks/ingest/internal/models"
)

// EntryKind classifies an archive entry after the security checks. Symlinks
// and hard links never reach callers; they abort the walk.
type EntryKind int

const (
	EntryRegular EntryKind = iota
	EntryDirectory
	EntryOther
)

// Entry is one validated archive record. Path is cleaned and
// slash-separated. Body is only readable until the walker advances.
type Entry struct {
	Path string
	Kind EntryKind
	Body io.Reader
}

// Walker iterates a gzip-compressed tar stream in wire order, applying the
// per-entry security policy before content becomes readable: every path must
// live under the package root directory, and link entries are rejected
// outright since they can alias targets outside the extraction root.
type Walker struct {
	tr   *tar.Reader
	root string
}

// NewWalker wraps r with gzip decompression bounded at maxUnpack total
// decompressed bytes. pkgRoot is the "{name}-{version}" directory every
// entry must reside under.
func NewWalker(r io.Reader, pkgRoot string, maxUnpack int64) (*Walker, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, &models.Error{Type: models.ErrMalformed, Err: err}
	}
	return &Walker{
		tr:   tar.NewReader(newLimitReader(gz, maxUnpack)),
		root: pkgRoot,
	}, nil
}

// Next returns the next validated entry, io.EOF once the archive is
// exhausted, or a *models.Error describing why the whole archive must be
// rejected.
func (w *Walker) Next() (*Entry, error) {
	hdr, err := w.tr.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &models.Error{Type: models.ErrMalformed, Err: err}
	}

	// Historically archives were extracted onto a shared filesystem keyed
	// only by convention, so an entry outside "{name}-{version}/" could
	// overwrite another package's files.
	name := path.Clean(hdr.Name)
	if name != w.root && !strings.HasPrefix(name, w.root+"/") {
		return nil, &models.Error{Type: models.ErrInvalidPath, Path: hdr.Name}
	}

	if hdr.Typeflag == tar.TypeSymlink || hdr.Typeflag == tar.TypeLink {
		return nil, &models.Error{Type: models.ErrUnexpectedSymlink, Path: hdr.Name}
	}

	return &Entry{Path: name, Kind: kindOf(hdr.Typeflag), Body: w.tr}, nil
}

func kindOf(typeflag byte) EntryKind {
	switch typeflag {
	case tar.TypeReg:
		return EntryRegular
	case tar.TypeDir:
		return EntryDirectory
	default:
		return EntryOther
	}
}
