package cli

import (
	"github.com/ether/etherdelta/lib/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.settings.Port, _ = cmd.Flags().GetString("port")
			}
			if cmd.Flags().Changed("dir") {
				a.settings.Store.Dir, _ = cmd.Flags().GetString("dir")
			}
			return a.serve()
		},
	}
	cmd.Flags().String("port", "", "Port to listen on")
	cmd.Flags().String("dir", "", "Directory served by the fs store")
	return cmd
}

func (a *app) serve() error {
	return server.InitServer(a.logger, a.settings)
}
