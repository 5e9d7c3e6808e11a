package models_test

import (
	"errors"
	"testing"

	"github.com/crateworks/ingest/internal/models"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *models.Error
		expected string
	}{
		{
			name:     "malformed",
			err:      &models.Error{Type: models.ErrMalformed, Err: errors.New("bad gzip")},
			expected: "uploaded tarball is malformed or too large when decompressed",
		},
		{
			name:     "invalid path",
			err:      &models.Error{Type: models.ErrInvalidPath, Path: "bar-0.1.0/lib.rs"},
			expected: "invalid path found: bar-0.1.0/lib.rs",
		},
		{
			name:     "unexpected symlink",
			err:      &models.Error{Type: models.ErrUnexpectedSymlink, Path: "foo-0.1.0/link"},
			expected: "unexpected symlink or hard link found: foo-0.1.0/link",
		},
		{
			name:     "missing manifest",
			err:      &models.Error{Type: models.ErrMissingManifest},
			expected: "Cargo.toml manifest is missing",
		},
		{
			name:     "invalid manifest",
			err:      &models.Error{Type: models.ErrInvalidManifest, Err: errors.New("missing field `package`")},
			expected: "Cargo.toml manifest is invalid: missing field `package`",
		},
		{
			name:     "io",
			err:      &models.Error{Type: models.ErrIO, Err: errors.New("read: connection reset")},
			expected: "read: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := &models.Error{Type: models.ErrMalformed, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the underlying cause")
	}
}
