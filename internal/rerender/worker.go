// Package rerender re-extracts and re-renders readmes for archives the
// registry already accepted. Storage, database and markdown rendering are
// external collaborators supplied as interfaces.
package rerender

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/crateworks/ingest/internal/tarball"
)

// VersionRef identifies one published package version.
type VersionRef struct {
	Name    string
	Version string
}

// Store fetches archives and persists rendered readmes, keyed by package
// name and version.
type Store interface {
	GetTarball(ctx context.Context, name, version string) (io.ReadCloser, error)
	PutReadme(ctx context.Context, name, version string, html []byte) error
}

// Renderer turns readme markup into HTML.
type Renderer interface {
	Render(contents []byte, path, repository string) (string, error)
}

// Source lists the versions whose readmes need re-rendering and records that
// a rendering was attempted.
type Source interface {
	ListVersions(ctx context.Context) ([]VersionRef, error)
	RecordRendering(ctx context.Context, ref VersionRef) error
}

// Worker pages through versions and re-renders their readmes, PageSize
// versions at a time with Concurrency extractions in flight per page. A
// failed version is logged and skipped so one broken legacy archive cannot
// stall the whole run.
type Worker struct {
	Store       Store
	Renderer    Renderer
	Source      Source
	PageSize    int
	Concurrency int
}

// Run processes every version reported by the source. It returns an error
// only for failures that invalidate the run as a whole (listing or
// recording); per-version extraction failures are logged and skipped.
func (w *Worker) Run(ctx context.Context) error {
	refs, err := w.Source.ListVersions(ctx)
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	pageSize := w.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	slog.Info("re-rendering readmes", "versions", len(refs), "page_size", pageSize)

	for start := 0; start < len(refs); start += pageSize {
		end := min(start+pageSize, len(refs))
		page := refs[start:end]

		// Record before rendering so a version that keeps failing is not
		// retried on every run.
		for _, ref := range page {
			if err := w.Source.RecordRendering(ctx, ref); err != nil {
				return fmt.Errorf("recording rendering for %s-%s: %w", ref.Name, ref.Version, err)
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(w.Concurrency, 1))

		for _, ref := range page {
			ref := ref
			g.Go(func() error {
				if err := w.renderOne(gctx, ref); err != nil {
					slog.Error("re-render failed", "package", ref.Name, "version", ref.Version, "error", err)
				}
				return gctx.Err()
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

func (w *Worker) renderOne(ctx context.Context, ref VersionRef) error {
	rc, err := w.Store.GetTarball(ctx, ref.Name, ref.Version)
	if err != nil {
		return fmt.Errorf("fetching tarball: %w", err)
	}
	defer rc.Close()

	gz, err := gzip.NewReader(rc)
	if err != nil {
		return fmt.Errorf("decompressing tarball: %w", err)
	}

	readme, err := tarball.ExtractReadme(gz, ref.Name+"-"+ref.Version)
	if err != nil {
		return fmt.Errorf("extracting readme: %w", err)
	}
	if readme == nil {
		return nil
	}

	html, err := w.Renderer.Render(readme.Contents, readme.Path, readme.Repository)
	if err != nil {
		return fmt.Errorf("rendering readme: %w", err)
	}
	if html == "" {
		return nil
	}

	if err := w.Store.PutReadme(ctx, ref.Name, ref.Version, []byte(html)); err != nil {
		return fmt.Errorf("storing rendered readme: %w", err)
	}

	return nil
}
