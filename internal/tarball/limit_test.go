package tarball

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestLimitReader(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 100)

	t.Run("under the cap", func(t *testing.T) {
		lr := newLimitReader(bytes.NewReader(data), 101)
		got, err := io.ReadAll(lr)
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		if len(got) != 100 {
			t.Errorf("expected 100 bytes, got %d", len(got))
		}
	})

	t.Run("over the cap", func(t *testing.T) {
		lr := newLimitReader(bytes.NewReader(data), 50)
		got, err := io.ReadAll(lr)
		if !errors.Is(err, errTooLarge) {
			t.Fatalf("expected errTooLarge, got %v", err)
		}
		// Bytes emitted before the cap stay valid.
		if len(got) != 50 {
			t.Errorf("expected 50 bytes before failure, got %d", len(got))
		}
	})

	t.Run("reads past an exhausted budget fail", func(t *testing.T) {
		lr := newLimitReader(bytes.NewReader(data), 100)
		if _, err := io.ReadAll(lr); !errors.Is(err, errTooLarge) {
			t.Fatalf("expected errTooLarge, got %v", err)
		}
	})
}
