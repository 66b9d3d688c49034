package fileops

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestValidatePathSecurity(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectError bool
		errorText   string
	}{
		{
			name: "valid simple path",
			path: "simple/path/file.txt",
		},
		{
			name: "valid single file",
			path: "plan.md",
		},
		{
			name:        "empty path",
			path:        "",
			expectError: true,
			errorText:   "path cannot be empty",
		},
		{
			name:        "whitespace only path",
			path:        "   \t\n  ",
			expectError: true,
			errorText:   "path cannot be empty",
		},
		{
			name:        "absolute path",
			path:        "/etc/passwd",
			expectError: true,
			errorText:   "absolute paths not allowed",
		},
		{
			name:        "path traversal with ..",
			path:        "../../../etc/passwd",
			expectError: true,
			errorText:   "path traversal not allowed",
		},
		{
			name:        "path traversal in middle",
			path:        "valid/../../etc/passwd",
			expectError: true,
			errorText:   "path traversal not allowed",
		},
		{
			name: "dots inside a name are fine",
			path: "notes/v1..2.md",
		},
		{
			name:        "trailing slash",
			path:        "notes/",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathSecurity(tt.path)
			if tt.expectError {
				if err == nil {
					t.Fatalf("ValidatePathSecurity(%q) expected error, got nil", tt.path)
				}
				if tt.errorText != "" && !strings.Contains(err.Error(), tt.errorText) {
					t.Errorf("ValidatePathSecurity(%q) error = %q, want it to contain %q", tt.path, err.Error(), tt.errorText)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidatePathSecurity(%q) unexpected error: %v", tt.path, err)
			}
		})
	}
}

func TestValidateFileSizeLimit(t *testing.T) {
	fsys := fstest.MapFS{
		"small.md":     {Data: []byte("tiny")},
		"large.md":     {Data: []byte(strings.Repeat("x", 2048))},
		"dir/inner.md": {Data: []byte("inner")},
	}

	tests := []struct {
		name        string
		file        string
		limit       int64
		expectError bool
		errorText   string
	}{
		{"within limit", "small.md", 1024, false, ""},
		{"exactly at limit", "small.md", 4, false, ""},
		{"over limit", "large.md", 1024, true, "exceeds limit"},
		{"missing file", "missing.md", 1024, true, "does not exist"},
		{"directory", "dir", 1024, true, "is a directory"},
		{"invalid limit", "small.md", 0, true, "invalid size limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileSizeLimit(fsys, tt.file, tt.limit)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorText) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errorText)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plan.md"), []byte("plan"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	symlinkOK := os.Symlink(filepath.Join(dir, "plan.md"), filepath.Join(dir, "link.md")) == nil

	entries, err := fs.ReadDir(os.DirFS(dir), ".")
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}

	for _, entry := range entries {
		err := ValidateEntry(entry)
		switch entry.Name() {
		case "plan.md":
			if err != nil {
				t.Errorf("regular file rejected: %v", err)
			}
		case "sub":
			if err == nil || !strings.Contains(err.Error(), "directory") {
				t.Errorf("directory should be rejected, got %v", err)
			}
		case "link.md":
			if !symlinkOK {
				continue
			}
			if err == nil || !strings.Contains(err.Error(), "symlinks not allowed") {
				t.Errorf("symlink should be rejected, got %v", err)
			}
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	if got := ExpandPath("~/docs"); got != filepath.Join(home, "docs") {
		t.Errorf("ExpandPath(~/docs) = %q, want %q", got, filepath.Join(home, "docs"))
	}
	if got := ExpandPath("/srv/docs"); got != "/srv/docs" {
		t.Errorf("ExpandPath should leave absolute paths alone, got %q", got)
	}
	if got := ExpandPath("docs"); got != "docs" {
		t.Errorf("ExpandPath should leave relative paths alone, got %q", got)
	}
}

func TestValidateSeedDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := ValidateSeedDir(dir); err != nil {
		t.Errorf("existing directory rejected: %v", err)
	}
	if err := ValidateSeedDir(""); err == nil {
		t.Error("empty seed directory should be rejected")
	}
	if err := ValidateSeedDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing seed directory should be rejected")
	}
	if err := ValidateSeedDir(file); err == nil {
		t.Error("file used as seed directory should be rejected")
	}
}
