// Command docmcp serves a small set of in-memory text documents over the
// Model Context Protocol and offers local commands to inspect them.
//
// Startup sequence:
//
// 1. Load the configuration file (or defaults) and apply flag overrides
// 2. Build the logger at the configured level
// 3. Seed the document store from the built-in set or a seed directory
// 4. Run the requested command: the MCP server, a one-shot query or the browser
package main

func main() {
	Execute()
}
