package commands

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Run the MCP (Model Context Protocol) server. Requests are read from stdin
and responses written to stdout, one JSON-RPC message per line. Logs go to
stderr.

Configure it in your MCP client as the command "image-to-text serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.converter(),
				server.WithConfig(a.cfg),
				server.WithLogger(a.logger),
				server.WithVersion(a.info.Version),
			)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
