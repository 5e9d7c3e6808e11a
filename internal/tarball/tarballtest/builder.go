// Package tarballtest builds package archives in memory for tests, including
// deliberately hostile ones (link entries, out-of-root paths).
package tarballtest

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
)

type entry struct {
	path     string
	typeflag byte
	linkname string
	data     []byte
}

// Builder assembles a package tarball entry by entry, preserving insertion
// order since the pipeline's first-match semantics depend on stream order.
type Builder struct {
	root    string
	entries []entry
}

// New creates a builder for the package root "{name}-{version}".
func New(name, version string) *Builder {
	return &Builder{root: name + "-" + version}
}

// AddFile appends a regular file entry. path is the full in-archive path.
func (b *Builder) AddFile(path string, data []byte) *Builder {
	b.entries = append(b.entries, entry{path: path, typeflag: tar.TypeReg, data: data})
	return b
}

// AddDir appends a directory entry.
func (b *Builder) AddDir(path string) *Builder {
	b.entries = append(b.entries, entry{path: path, typeflag: tar.TypeDir})
	return b
}

// AddRawManifest appends a Cargo.toml at the package root.
func (b *Builder) AddRawManifest(data []byte) *Builder {
	return b.AddFile(b.root+"/Cargo.toml", data)
}

// AddSymlink appends a symbolic link entry.
func (b *Builder) AddSymlink(path, target string) *Builder {
	b.entries = append(b.entries, entry{path: path, typeflag: tar.TypeSymlink, linkname: target})
	return b
}

// AddHardlink appends a hard link entry.
func (b *Builder) AddHardlink(path, target string) *Builder {
	b.entries = append(b.entries, entry{path: path, typeflag: tar.TypeLink, linkname: target})
	return b
}

// BuildUnzipped serializes the archive as a bare tar stream.
func (b *Builder) BuildUnzipped() []byte {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, e := range b.entries {
		hdr := &tar.Header{
			Name:     e.path,
			Mode:     0644,
			Size:     int64(len(e.data)),
			Typeflag: e.typeflag,
			Linkname: e.linkname,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			panic(err)
		}
		if _, err := tw.Write(e.data); err != nil {
			panic(err)
		}
	}

	if err := tw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Build serializes the archive and gzip-compresses it.
func (b *Builder) Build() []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(b.BuildUnzipped()); err != nil {
		panic(err)
	}
	if err := gz.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
