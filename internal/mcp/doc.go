// Package mcp exposes the document store over the Model Context Protocol using
// mcp-go (github.com/mark3labs/mcp-go).
//
// # Surface
//
// Tools:
//   - read_doc_contents(doc_id): returns the document text
//   - edit_doc(doc_id, old_string, new_string): replaces every occurrence of
//     old_string; success returns an empty result
//
// Resources:
//   - docs://documents: JSON array of document IDs (application/json)
//   - docs://documents/{doc_id}: one document as text/plain
//
// Prompts:
//   - format(doc_id): asks the model to rewrite the document as markdown
//   - summarize(doc_id): asks the model to summarize the document
//
// Store failures on tool calls come back as results with IsError set, so the
// model sees the message. Resource and prompt failures are JSON-RPC errors.
//
// # Architecture
//
// Handlers are collected in a Registry before anything is handed to mcp-go.
// Templated resource URIs are matched by the registry's own compiled
// uritemplate matchers. Server wires the registry into a server.MCPServer and
// runs it over stdio, SSE or streamable HTTP:
//
//	docmcp serve --transport stdio
//
// With stdio the server reads JSON-RPC requests from stdin and writes responses
// to stdout until EOF or cancellation. Logs go to stderr.
package mcp
