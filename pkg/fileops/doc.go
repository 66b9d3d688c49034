// Package fileops provides the file validation used when documents are seeded
// from a directory on disk.
//
// Seed files are read through an fs.FS rooted at the configured seed directory,
// so every path handled here is slash-separated and relative to that root.
// Validate in this order before reading a file:
//
//  1. ValidatePathSecurity: rejects empty, absolute and traversing paths
//  2. ValidateEntry: rejects directories, symlinks and devices
//  3. ValidateFileSizeLimit: rejects files larger than the configured limit
//
// # Example
//
//	fsys := os.DirFS(fileops.ExpandPath(dir))
//	if err := fileops.ValidatePathSecurity(name); err != nil {
//	    return fmt.Errorf("path security: %w", err)
//	}
//	if err := fileops.ValidateFileSizeLimit(fsys, name, maxBytes); err != nil {
//	    return fmt.Errorf("file size: %w", err)
//	}
package fileops
