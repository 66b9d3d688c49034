package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ValidatePathSecurity performs static validation of a slash-separated path that
// is about to be opened relative to an fs.FS root.
//
// The function rejects:
//   - Empty or whitespace-only paths
//   - Absolute paths (leading "/" or a Windows volume)
//   - Any ".." element, before or after cleaning
//   - Paths that fs.ValidPath refuses
//
// It does not touch the filesystem.
//
// Usage example:
//
//	if err := fileops.ValidatePathSecurity("../../etc/passwd"); err != nil {
//	    return err
//	}
func ValidatePathSecurity(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return fmt.Errorf("absolute paths not allowed")
	}

	for _, elem := range strings.Split(filepath.ToSlash(p), "/") {
		if elem == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	cleaned := path.Clean(filepath.ToSlash(p))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path traversal not allowed")
	}

	if !fs.ValidPath(cleaned) {
		return fmt.Errorf("invalid path: %s", p)
	}

	return nil
}

// ValidateEntry checks that a directory entry produced by fs.WalkDir or
// fs.ReadDir is a regular file. Entry types come from lstat, so symlinks are
// refused even when they point inside the root.
func ValidateEntry(d fs.DirEntry) error {
	mode := d.Type()
	switch {
	case d.IsDir():
		return fmt.Errorf("path is a directory, not a file: %s", d.Name())
	case mode&fs.ModeSymlink != 0:
		return fmt.Errorf("symlinks not allowed: %s", d.Name())
	case !mode.IsRegular():
		return fmt.Errorf("not a regular file: %s", d.Name())
	}
	return nil
}

// ValidateFileSizeLimit checks if a file size is within acceptable limits.
// This keeps a stray large file in the seed directory from being loaded into memory.
//
// Usage example:
//
//	if err := fileops.ValidateFileSizeLimit(fsys, "notes/plan.md", 1<<20); err != nil {
//	    return fmt.Errorf("file too large: %w", err)
//	}
func ValidateFileSizeLimit(fsys fs.FS, name string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file does not exist: %s", path.Base(name))
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", name)
	}

	if info.Size() > maxSize {
		return fmt.Errorf("file size %d bytes exceeds limit %d bytes", info.Size(), maxSize)
	}

	return nil
}

// ExpandPath expands a leading "~/" to the user's home directory.
//
//	expanded := fileops.ExpandPath("~/docs")
//	// Returns something like "/home/user/docs"
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// ValidateSeedDir checks that dir (after ExpandPath) is an existing directory.
func ValidateSeedDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("seed directory cannot be empty")
	}

	info, err := os.Stat(ExpandPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("seed directory does not exist: %s", dir)
		}
		return fmt.Errorf("cannot access seed directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("seed path is not a directory: %s", dir)
	}

	return nil
}
