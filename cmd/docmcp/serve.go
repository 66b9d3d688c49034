package main

import (
	mcpserver "docmcp/internal/mcp"

	"github.com/spf13/cobra"
)

var (
	serveTransport string
	serveAddr      string
	serveBaseURL   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server until interrupted.

With the stdio transport (the default) JSON-RPC flows over stdin and stdout,
which is how MCP clients usually launch docmcp. The sse and http transports
listen on --addr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("transport") {
			cfg.Transport = serveTransport
		}
		if cmd.Flags().Changed("addr") {
			cfg.Address = serveAddr
		}
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = serveBaseURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ops, err := newOperations(cfg, appLogger)
		if err != nil {
			return err
		}

		srv := mcpserver.NewServer(cfg, appLogger, ops)
		return srv.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "Transport: stdio, sse or http")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "Listen address for sse and http")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Public base URL advertised by the sse transport")
}
