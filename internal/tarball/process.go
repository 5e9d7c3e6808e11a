package tarball

import (
	"errors"
	"io"
	"log/slog"

	"github.com/crateworks/ingest/internal/manifest"
	"github.com/crateworks/ingest/internal/models"
)

// Info is the successful outcome of processing one tarball. VcsInfo is nil
// when the archive carries no (readable) provenance file.
type Info struct {
	Manifest *models.Manifest
	VcsInfo  *models.VcsInfo
}

// entryClass is computed once per entry by exact path comparison against the
// fixed set of recognized files.
type entryClass int

const (
	classIgnored entryClass = iota
	classManifest
	classVcsInfo
)

// Process validates a gzip-compressed package tarball and extracts its
// manifest and optional VCS provenance. name and version are supplied by the
// caller from the upload request, never trusted from archive content; they
// form the "{name}-{version}/" root every entry must live under. maxUnpack
// bounds the total decompressed size.
//
// The archive is walked exactly once. Any structural or policy violation
// aborts the run with a *models.Error; there is no partial success.
func Process(name, version string, r io.Reader, maxUnpack int64) (*Info, error) {
	root := name + "-" + version

	w, err := NewWalker(r, root, maxUnpack)
	if err != nil {
		return nil, err
	}

	var (
		manifestPath      = root + "/Cargo.toml"
		manifestPathLower = root + "/cargo.toml"
		vcsInfoPath       = root + "/.cargo_vcs_info.json"
	)

	var (
		doc     *models.Manifest
		vcs     *models.VcsInfo
		seenVcs bool
	)

	for {
		entry, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var class entryClass
		switch entry.Path {
		case manifestPath, manifestPathLower:
			class = classManifest
		case vcsInfoPath:
			class = classVcsInfo
		default:
			class = classIgnored
		}

		switch class {
		case classManifest:
			if doc != nil {
				return nil, &models.Error{
					Type: models.ErrInvalidManifest,
					Path: entry.Path,
					Err:  errors.New("duplicate manifest entry"),
				}
			}
			data, err := readEntry(entry)
			if err != nil {
				return nil, err
			}
			m, err := manifest.Parse(data)
			if err != nil {
				return nil, &models.Error{Type: models.ErrInvalidManifest, Err: err}
			}
			if err := manifest.Validate(m); err != nil {
				return nil, &models.Error{Type: models.ErrInvalidManifest, Err: err}
			}
			doc = m
		case classVcsInfo:
			if seenVcs {
				continue
			}
			seenVcs = true
			data, err := readEntry(entry)
			if err != nil {
				return nil, err
			}
			vcs = parseVcsInfo(data)
		}
	}

	if doc == nil {
		return nil, &models.Error{Type: models.ErrMissingManifest}
	}

	slog.Debug("tarball processed", "package", root, "vcs_info", vcs != nil)
	return &Info{Manifest: doc, VcsInfo: vcs}, nil
}

// readEntry drains an entry's content, classifying a blown decompression cap
// as a malformed tarball rather than a plain stream failure.
func readEntry(entry *Entry) ([]byte, error) {
	data, err := io.ReadAll(entry.Body)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, &models.Error{Type: models.ErrMalformed, Err: err}
		}
		return nil, &models.Error{Type: models.ErrIO, Err: err}
	}
	return data, nil
}
