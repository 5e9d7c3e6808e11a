package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crateworks/ingest/internal/config"
)

func TestLoadIngestConfig(t *testing.T) {
	ingestYaml := `max_unpack_size: 1G
rerender:
  page_size: 50
  concurrency: 4
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "ingest.yaml")
	if err := os.WriteFile(tmpFile, []byte(ingestYaml), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadIngestConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadIngestConfig failed: %v", err)
	}

	if cfg.MaxUnpackSize != "1G" {
		t.Errorf("expected max_unpack_size 1G, got %s", cfg.MaxUnpackSize)
	}

	n, err := cfg.MaxUnpackBytes()
	if err != nil {
		t.Fatalf("MaxUnpackBytes failed: %v", err)
	}
	if n != 1024*1024*1024 {
		t.Errorf("expected 1 GiB in bytes, got %d", n)
	}

	if cfg.Rerender.PageSize != 50 {
		t.Errorf("expected page_size 50, got %d", cfg.Rerender.PageSize)
	}
	if cfg.Rerender.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Rerender.Concurrency)
	}
}

func TestLoadIngestConfigPartial(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "ingest.yaml")
	if err := os.WriteFile(tmpFile, []byte("rerender:\n  page_size: 10\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadIngestConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadIngestConfig failed: %v", err)
	}

	if cfg.MaxUnpackSize != "512M" {
		t.Errorf("expected default max_unpack_size, got %s", cfg.MaxUnpackSize)
	}
	if cfg.Rerender.PageSize != 10 {
		t.Errorf("expected page_size 10, got %d", cfg.Rerender.PageSize)
	}
	if cfg.Rerender.Concurrency != 8 {
		t.Errorf("expected default concurrency 8, got %d", cfg.Rerender.Concurrency)
	}
}

func TestLoadIngestConfigBadSize(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "ingest.yaml")
	if err := os.WriteFile(tmpFile, []byte("max_unpack_size: lots\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	if _, err := config.LoadIngestConfig(tmpFile); err == nil {
		t.Fatal("expected an error for an unparseable size")
	}
}

func TestDefaultIngestConfig(t *testing.T) {
	cfg := config.DefaultIngestConfig()

	n, err := cfg.MaxUnpackBytes()
	if err != nil {
		t.Fatalf("MaxUnpackBytes failed: %v", err)
	}
	if n != 512*1024*1024 {
		t.Errorf("expected default 512 MiB, got %d", n)
	}
	if cfg.Rerender.PageSize != 25 {
		t.Errorf("expected default page_size 25, got %d", cfg.Rerender.PageSize)
	}
}
