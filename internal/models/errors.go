package models

import "fmt"

// ErrorType identifies the category of tarball rejection.
type ErrorType string

const (
	// Decompression or archive-structure corruption, including blowing
	// past the configured decompression cap
	ErrMalformed ErrorType = "malformed"

	// Entry-level security policy
	ErrInvalidPath       ErrorType = "invalid_path"
	ErrUnexpectedSymlink ErrorType = "unexpected_symlink"

	// Manifest extraction
	ErrMissingManifest ErrorType = "missing_manifest"
	ErrInvalidManifest ErrorType = "invalid_manifest"

	// Catch-all stream failure
	ErrIO ErrorType = "io"
)

// Error is the typed rejection produced by the tarball pipeline. Exactly one
// is returned per failed run. Path names the offending entry for entry-level
// violations; Err carries the underlying decode or I/O failure when there is
// one.
type Error struct {
	Type ErrorType
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Type {
	case ErrMalformed:
		return "uploaded tarball is malformed or too large when decompressed"
	case ErrInvalidPath:
		return fmt.Sprintf("invalid path found: %s", e.Path)
	case ErrUnexpectedSymlink:
		return fmt.Sprintf("unexpected symlink or hard link found: %s", e.Path)
	case ErrMissingManifest:
		return "Cargo.toml manifest is missing"
	case ErrInvalidManifest:
		return fmt.Sprintf("Cargo.toml manifest is invalid: %s", e.Err)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Type)
	}
}

func (e *Error) Unwrap() error { return e.Err }
