// Package document holds the in-memory document collection served by docmcp and
// the four operations exposed over it.
//
// A Store maps opaque document IDs (they look like file names, but carry no
// filesystem meaning) to mutable text. It is populated once at startup, either
// from DefaultSeed or from a seed directory via SeedLoader.LoadDir (LoadFS for
// an fs.FS), and is only ever changed by Replace. Nothing is persisted.
//
// Operations wraps a Store with the request-level contract used by the MCP
// host binding: ReadDocument, EditDocument, ListDocuments and GetDocumentRaw.
// Domain failures are reported as *Error values that unwrap to ErrNotFound,
// ErrSubstringNotFound or ErrEmptySearch. ReadDocument, EditDocument and
// GetDocumentRaw also return ctx.Err() unchanged when ctx is already done; the
// store is not touched in that case and the error is not an *Error, so the MCP
// binding reports it as a failed request rather than a tool error.
package document
