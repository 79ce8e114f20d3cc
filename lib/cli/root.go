// Package cli holds the etherdelta command tree. Running the binary without a
// subcommand starts the server.
package cli

import (
	"github.com/ether/etherdelta/lib/settings"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	logger   *zap.SugaredLogger
	settings settings.Settings
}

// NewRootCommand builds the command tree around already loaded settings.
func NewRootCommand(logger *zap.SugaredLogger, retrievedSettings settings.Settings) *cobra.Command {
	a := &app{logger: logger, settings: retrievedSettings}

	rootCmd := &cobra.Command{
		Use:   "etherdelta",
		Short: "Serve versioned static assets as full files or deltas.",
		Long: `etherdelta serves versioned static assets and, to clients that ask for it,
the delta from a version they already hold.

Example: etherdelta fetch /react/16.8.1/umd/react.production.min.js`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	rootCmd.AddCommand(
		a.serveCommand(),
		a.fetchCommand(),
		a.importCommand(),
		a.diffCommand(),
		a.cacheCommand(),
		configCommand(),
		versionCommand(),
	)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return rootCmd
}

func Execute(logger *zap.SugaredLogger, retrievedSettings settings.Settings) error {
	return NewRootCommand(logger, retrievedSettings).Execute()
}
