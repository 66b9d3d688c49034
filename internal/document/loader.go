package document

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"docmcp/internal/logging"
	"docmcp/pkg/fileops"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSeedGlob matches every file below the seed directory.
const DefaultSeedGlob = "**/*"

// SeedFrontmatter is the optional YAML header of a seed file.
type SeedFrontmatter struct {
	ID string `yaml:"id"`
}

// SeedLoader reads seed documents from a directory tree.
type SeedLoader struct {
	logger      *logging.AppLogger
	glob        string
	maxFileSize int64
}

// NewSeedLoader creates a loader that accepts files matching glob (doublestar
// syntax, relative to the seed root) up to maxFileSize bytes.
func NewSeedLoader(logger *logging.AppLogger, glob string, maxFileSize int64) (*SeedLoader, error) {
	if glob == "" {
		glob = DefaultSeedGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid seed glob %q", glob)
	}
	if maxFileSize <= 0 {
		return nil, fmt.Errorf("invalid max file size: %d", maxFileSize)
	}

	return &SeedLoader{
		logger:      logger,
		glob:        glob,
		maxFileSize: maxFileSize,
	}, nil
}

// LoadDir loads the seed documents below dir.
func (l *SeedLoader) LoadDir(dir string) ([]Document, error) {
	if err := fileops.ValidateSeedDir(dir); err != nil {
		return nil, err
	}
	return l.LoadFS(os.DirFS(fileops.ExpandPath(dir)))
}

// LoadFS loads the seed documents from fsys. Files that fail validation are
// skipped and logged; an empty result is an error. Documents are returned
// sorted by ID so that listing order does not depend on directory order.
func (l *SeedLoader) LoadFS(fsys fs.FS) ([]Document, error) {
	var docs []Document
	seen := make(map[string]string)
	var skippedCount int

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		matched, err := doublestar.Match(l.glob, p)
		if err != nil {
			return fmt.Errorf("match %s: %w", p, err)
		}
		if !matched {
			return nil
		}

		doc, err := l.loadFile(fsys, p, d)
		if err != nil {
			l.logger.Warn("Skipping seed file", "path", p, "reason", err)
			skippedCount++
			return nil
		}

		if prev, dup := seen[doc.ID]; dup {
			l.logger.Warn("Skipping seed file with duplicate document ID", "path", p, "id", doc.ID, "first", prev)
			skippedCount++
			return nil
		}
		seen[doc.ID] = p

		docs = append(docs, *doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk seed directory: %w", err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no seed documents matched %q", l.glob)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	l.logger.Info("Seed documents loaded",
		"documents", len(docs),
		"skipped", skippedCount,
		"glob", l.glob)

	return docs, nil
}

// loadFile validates and parses a single seed file.
func (l *SeedLoader) loadFile(fsys fs.FS, p string, d fs.DirEntry) (*Document, error) {
	if err := fileops.ValidatePathSecurity(p); err != nil {
		return nil, fmt.Errorf("path security check failed: %w", err)
	}
	if err := fileops.ValidateEntry(d); err != nil {
		return nil, fmt.Errorf("file type check failed: %w", err)
	}
	if err := fileops.ValidateFileSizeLimit(fsys, p, l.maxFileSize); err != nil {
		return nil, fmt.Errorf("file size check failed: %w", err)
	}

	content, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var matter SeedFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	id := strings.TrimSpace(matter.ID)
	if id == "" {
		id = p
	}

	l.logger.Debug("Parsed seed file", "path", p, "id", id, "bytes", len(body))

	return &Document{ID: id, Content: string(body)}, nil
}
