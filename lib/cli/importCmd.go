package cli

import (
	"fmt"

	"github.com/ether/etherdelta/lib/importer"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import a <name>/<version>/<file> tree into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataStore, err := utils.GetDB(a.settings, a.logger)
			if err != nil {
				return fmt.Errorf("error opening store: %w", err)
			}
			defer func() {
				if err := dataStore.Close(); err != nil {
					a.logger.Warnf("Error closing store: %v", err)
				}
			}()

			imported, err := importer.New(dataStore, a.logger).ImportDir(cmd.Context(), afero.NewOsFs(), args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d files from %s\n", imported, args[0])
			return err
		},
	}
}
