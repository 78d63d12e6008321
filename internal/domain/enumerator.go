package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"unwrapaudit.dev/pkg/unwrapaudit/internal/adapter"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// Enumerator yields the candidate source files under a scan root. Ordering
// follows the filesystem traversal and is not guaranteed; the aggregator
// owns the final deterministic ordering.
type Enumerator interface {
	Sources(opts m.ScanOptions) ([]m.Path, error)
}

type enumerator struct {
	fs adapter.SourceFSAdapter
}

// NewEnumerator creates an Enumerator backed by the given filesystem
// adapter.
func NewEnumerator(fs adapter.SourceFSAdapter) Enumerator {
	return &enumerator{fs: fs}
}

// Sources walks the root recursively, skipping any subtree whose directory
// name equals the configured exclude dir, and returns the files that carry
// the configured extension without the disabled marker in their name.
// Traversal errors abort the enumeration.
func (e *enumerator) Sources(opts m.ScanOptions) ([]m.Path, error) {
	root := string(opts.Root)

	if _, err := e.fs.FileInfo(opts.Root); err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	var paths []m.Path

	err := e.fs.Walk(opts.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if info.IsDir() {
			if opts.ExcludeDir != "" && path != root && filepath.Base(path) == opts.ExcludeDir {
				slog.Debug("skipping excluded directory", "path", path)
				return filepath.SkipDir
			}

			return nil
		}

		name := filepath.Base(path)
		if !strings.HasSuffix(name, opts.Extension) {
			return nil
		}

		if opts.DisabledMarker != "" && strings.Contains(name, opts.DisabledMarker) {
			slog.Debug("skipping disabled file", "path", path)
			return nil
		}

		paths = append(paths, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("enumerated sources", "root", root, "count", len(paths))

	return paths, nil
}
